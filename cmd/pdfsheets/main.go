// Package main provides the CLI entry point for pdfsheets.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/output"
)

type cliOptions struct {
	outputDir       string
	pages           string
	merge           bool
	split           bool
	maxSheets       string
	zip             bool
	skipFailedPages bool
	logLevel        string
	logFormat       string
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	var o cliOptions

	rootCmd := &cobra.Command{
		Use:   "pdfsheets [input.pdf]",
		Short: "Extract tables from PDF files into Excel workbooks",
		Long: `pdfsheets extracts tables from a PDF file, merges tables that repeat
across pages under the same title and columns, and writes them to xlsx
workbooks, optionally bundled into a zip archive.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], o, logOut)
		},
	}

	bindFlags(rootCmd.Flags(), &o)

	return rootCmd
}

func bindFlags(flags *pflag.FlagSet, o *cliOptions) {
	flags.StringVarP(&o.outputDir, "output-dir", "o", ".", "Directory for the generated files")
	flags.StringVar(&o.pages, "pages", "", "Pages to extract, e.g. 1,3,5-7 (default: all pages)")
	flags.BoolVar(&o.merge, "merge", true, "Merge tables with the same title and column names")
	flags.BoolVar(&o.split, "split", true, "Split into multiple workbooks based on sheet count")
	flags.StringVar(&o.maxSheets, "max-sheets", "25", "Maximum number of sheets per workbook")
	flags.BoolVar(&o.zip, "zip", false, "Always bundle the workbooks into a zip archive")
	flags.BoolVar(&o.skipFailedPages, "skip-failed-pages", false, "Skip pages that fail to extract instead of aborting")
	flags.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&o.logFormat, "log-format", "text", "Log format: text, json")
}

func run(cmd *cobra.Command, inputPath string, o cliOptions, logOut io.Writer) error {
	log, err := newLogger(logOut, o.logLevel, o.logFormat)
	if err != nil {
		return err
	}

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	opts := pdfsheets.DefaultOptions()
	opts.Pages = o.pages
	opts.MergeTables = pdfsheets.Bool(o.merge)
	opts.Split = pdfsheets.Bool(o.split)
	opts.SkipFailedPages = o.skipFailedPages
	opts.Logger = log
	opts.Progress = func(done, total int) {
		log.WithFields(logrus.Fields{"done": done, "total": total}).Debug("progress")
	}

	if o.split {
		maxSheets, err := pdfsheets.ParseMaxSheets(o.maxSheets)
		if err != nil {
			log.WithError(err).Warnf("using default of %d sheets per file", maxSheets)
		}
		opts.MaxSheets = maxSheets
	}

	result, err := pdfsheets.Extract(inputPath, opts)
	if errors.Is(err, pdfsheets.ErrNoTablesFound) {
		log.WithField("file", inputPath).Warn("no tables found in the selected pages")
		return nil
	}
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	files, err := pdfsheets.Files(result)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(o.outputDir, 0755); err != nil {
		return err
	}

	for _, f := range files {
		if err := writeOutput(o.outputDir, f, log); err != nil {
			return err
		}
	}

	if o.zip || len(files) > 1 {
		data, err := output.Pack(files)
		if err != nil {
			return fmt.Errorf("failed to build archive: %w", err)
		}
		archive := output.Entry{Name: output.ArchiveName(result.BaseName), Data: data}
		if err := writeOutput(o.outputDir, archive, log); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d tables from %d pages into %d file(s)\n",
		len(result.Tables), result.PagesWithTables, len(files))
	return nil
}

func writeOutput(dir string, f output.Entry, log logrus.FieldLogger) error {
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.WithFields(logrus.Fields{"file": path, "bytes": len(f.Data)}).Info("wrote file")
	return nil
}

func newLogger(out io.Writer, level, format string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}
	log.SetLevel(lvl)

	switch format {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be text or json)", format)
	}

	return log, nil
}
