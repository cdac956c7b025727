package pdfgrid

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/ukaji3/pdfsheets-go/pkg/pdfsheets/models"
)

// Params holds parameters for grid detection. Gaps are expressed as
// multiples of the font size; tolerances are in points.
type Params struct {
	RowTolerance    float64
	ColumnTolerance float64
	SpaceGap        float64
	CellGap         float64
	MinColumns      int
	MinRows         int
}

// DefaultParams returns default grid detection parameters.
func DefaultParams() Params {
	return Params{
		RowTolerance:    2.0,
		ColumnTolerance: 6.0,
		SpaceGap:        0.15,
		CellGap:         1.0,
		MinColumns:      2,
		MinRows:         2,
	}
}

// defaultFontSize is assumed for glyphs that report no size.
const defaultFontSize = 10.0

// segment is a run of text on one line, separated from its neighbours by
// at least the cell gap.
type segment struct {
	x    float64
	end  float64
	text strings.Builder
}

type line struct {
	y        float64
	height   float64
	segments []*segment
}

// DetectTables groups positioned glyphs into lines and cell segments and
// returns a raw table for every run of at least MinRows consecutive lines
// with at least MinColumns segments. A single-segment line directly above
// such a run is kept as the table's first row, as it usually holds a title.
func DetectTables(texts []pdf.Text, params Params) []models.RawTable {
	lines := groupLines(texts, params)

	var tables []models.RawTable
	for i := 0; i < len(lines); {
		if len(lines[i].segments) < params.MinColumns {
			i++
			continue
		}

		j := i
		for j < len(lines) && len(lines[j].segments) >= params.MinColumns {
			j++
		}
		if j-i < params.MinRows {
			i = j
			continue
		}

		start := i
		titled := i > 0 && len(lines[i-1].segments) == 1 && isAdjacent(lines[i-1], lines[i])
		if titled {
			start = i - 1
		}
		if grid := buildGrid(lines[start:j], titled, params); grid != nil {
			tables = append(tables, grid)
		}
		i = j
	}

	return tables
}

// groupLines splits glyphs into lines top to bottom, then each line into
// segments left to right.
func groupLines(texts []pdf.Text, params Params) []*line {
	glyphs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			glyphs = append(glyphs, t)
		}
	}
	// PDF y grows upwards.
	sort.SliceStable(glyphs, func(a, b int) bool {
		return glyphs[a].Y > glyphs[b].Y
	})

	var groups [][]pdf.Text
	lineY := 0.0
	for _, g := range glyphs {
		if len(groups) == 0 || lineY-g.Y > params.RowTolerance {
			groups = append(groups, nil)
			lineY = g.Y
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], g)
	}

	lines := make([]*line, 0, len(groups))
	for _, group := range groups {
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].X < group[b].X
		})
		l := &line{y: group[0].Y}
		for _, g := range group {
			l.add(g, params)
		}
		lines = append(lines, l)
	}
	return lines
}

func (l *line) add(g pdf.Text, params Params) {
	size := g.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	l.height = math.Max(l.height, size)

	if n := len(l.segments); n > 0 {
		last := l.segments[n-1]
		gap := g.X - last.end
		if gap < params.CellGap*size {
			if gap > params.SpaceGap*size {
				last.text.WriteByte(' ')
			}
			last.text.WriteString(g.S)
			last.end = math.Max(last.end, g.X+g.W)
			return
		}
	}

	s := &segment{x: g.X, end: g.X + g.W}
	s.text.WriteString(g.S)
	l.segments = append(l.segments, s)
}

// isAdjacent reports whether two lines are close enough vertically to belong
// to the same table.
func isAdjacent(above, below *line) bool {
	return above.y-below.y <= 2.5*math.Max(above.height, below.height)
}

// buildGrid assigns every segment to the column whose anchor is nearest to
// its start. A title line always lands in the first column, wherever it is
// placed horizontally.
func buildGrid(lines []*line, titled bool, params Params) models.RawTable {
	var starts []float64
	for _, l := range lines {
		if len(l.segments) < params.MinColumns {
			continue
		}
		for _, s := range l.segments {
			starts = append(starts, s.x)
		}
	}
	anchors := clusterValues(starts, params.ColumnTolerance)
	if len(anchors) == 0 {
		return nil
	}

	table := make(models.RawTable, len(lines))
	for r, l := range lines {
		row := make([]*string, len(anchors))
		table[r] = row
		if r == 0 && titled {
			row[0] = models.Text(strings.TrimSpace(l.segments[0].text.String()))
			continue
		}
		for _, s := range l.segments {
			col := nearest(anchors, s.x)
			text := strings.TrimSpace(s.text.String())
			if row[col] != nil {
				text = *row[col] + " " + text
			}
			row[col] = models.Text(text)
		}
	}
	return table
}

// clusterValues groups sorted values lying within tolerance of the previous
// value and returns each group's mean.
func clusterValues(values []float64, tolerance float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var clusters []float64
	sum, n := sorted[0], 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] <= tolerance {
			sum += sorted[i]
			n++
			continue
		}
		clusters = append(clusters, sum/float64(n))
		sum, n = sorted[i], 1
	}
	return append(clusters, sum/float64(n))
}

func nearest(anchors []float64, x float64) int {
	best := 0
	for i, a := range anchors {
		if math.Abs(a-x) < math.Abs(anchors[best]-x) {
			best = i
		}
	}
	return best
}
