package pdfparser

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dslipak/pdf"
)

// NativeExtractor reads the text layer in-process, without external tools.
// Glyphs are regrouped into visual rows by baseline, and wide horizontal
// gaps become column separators.
type NativeExtractor struct{}

// NewNativeExtractor creates a NativeExtractor.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

func (e *NativeExtractor) Name() string { return "native" }

// ExtractText implements PDFExtractor.
func (e *NativeExtractor) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	f, err := os.Open(pdfPath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("error reading PDF size: %w", err)
	}

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("error reading PDF structure: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		texts, err := pageTexts(p, i)
		if err != nil {
			return "", err
		}
		pages = append(pages, strings.Join(layoutRows(texts), "\n"))
	}
	return strings.Join(pages, PageBreak), nil
}

// pageTexts reads the content stream of one page. The reader panics on
// malformed streams; that is reported as an error.
func pageTexts(p pdf.Page, num int) (texts []pdf.Text, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content on page %d: %v", num, r)
		}
	}()
	return p.Content().Text, nil
}

const defaultFontSize = 10.0

// layoutRows groups glyphs into rows, top to bottom, and renders each row
// left to right on a character grid shared by the whole page, so that
// continuation lines keep their indentation relative to the table columns.
func layoutRows(texts []pdf.Text) []string {
	glyphs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S != "" {
			glyphs = append(glyphs, t)
		}
	}
	if len(glyphs) == 0 {
		return nil
	}

	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Y != glyphs[j].Y {
			return glyphs[i].Y > glyphs[j].Y
		}
		return glyphs[i].X < glyphs[j].X
	})

	g := newGrid(glyphs)
	var rows []string
	start := 0
	for i := 1; i <= len(glyphs); i++ {
		if i < len(glyphs) && math.Abs(glyphs[i].Y-glyphs[start].Y) <= rowTolerance(glyphs[start]) {
			continue
		}
		if row := g.render(glyphs[start:i]); row != "" {
			rows = append(rows, row)
		}
		start = i
	}
	return rows
}

func fontSize(t pdf.Text) float64 {
	if t.FontSize <= 0 {
		return defaultFontSize
	}
	return t.FontSize
}

func rowTolerance(t pdf.Text) float64 {
	return fontSize(t) * 0.3
}

// grid maps page x coordinates to character columns. The leftmost glyph
// of the page is column 0 and a column is one average glyph wide.
type grid struct {
	left float64
	cell float64
}

func newGrid(glyphs []pdf.Text) grid {
	g := grid{left: glyphs[0].X}
	var width float64
	var n int
	for _, t := range glyphs {
		g.left = math.Min(g.left, t.X)
		if t.W > 0 {
			width += t.W
			n++
		}
	}
	if n > 0 {
		g.cell = width / float64(n)
	} else {
		g.cell = defaultFontSize * 0.5
	}
	return g
}

func (g grid) column(x float64) int {
	return int(math.Round((x - g.left) / g.cell))
}

// render writes one row. Indentation and column gaps are padded to the
// grid column of the next glyph, with at least two blanks between
// columns; word gaps stay single spaces.
func (g grid) render(row []pdf.Text) string {
	sorted := make([]pdf.Text, len(row))
	copy(sorted, row)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var b strings.Builder
	col := 0
	end := 0.0
	for i, t := range sorted {
		size := fontSize(t)
		gap := t.X - end
		switch {
		case i == 0 || gap > size*1.5:
			target := g.column(t.X)
			if i > 0 {
				target = max(target, col+2)
			}
			if pad := target - col; pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
				col = target
			}
		case gap > size*0.15 && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(t.S, " "):
			b.WriteString(" ")
			col++
		}
		b.WriteString(t.S)
		col += utf8.RuneCountInString(t.S)
		end = t.X + t.W
	}
	return strings.TrimRight(b.String(), " ")
}
