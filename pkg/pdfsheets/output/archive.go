package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"
)

// Entry is a named file to bundle into an archive.
type Entry struct {
	Name string
	Data []byte
}

// archiveTime is the modification time of every archive member.
var archiveTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// ArchiveName returns the archive file name for a source base name.
func ArchiveName(baseName string) string {
	return baseName + "_Extracted_Tables.zip"
}

// Pack bundles entries into a zip archive, in input order.
func Pack(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: archiveTime,
		})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("add %s: %w", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("add %s: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
