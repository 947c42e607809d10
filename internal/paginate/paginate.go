// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paginate renders line-delimited text as a fixed-layout PDF.
//
// Lines are placed top to bottom in a single column at a fixed horizontal
// offset. A vertical cursor starts at Height-Margin and moves down by
// LineHeight per line; when it falls below Margin a new page begins before
// the next line is drawn. Lines are never wrapped or split: a line wider
// than the page overflows.
package paginate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/doc-assistant/pkg/types"
)

// PaperSize is a named page size in points.
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

var (
	A4     = PaperSize{Name: "A4", Width: 595.28, Height: 841.89}
	Letter = PaperSize{Name: "Letter", Width: 612, Height: 792}
)

// Geometry returns the default layout for the paper size.
func (p PaperSize) Geometry() types.PageGeometry {
	g := types.A4Geometry()
	g.Width = p.Width
	g.Height = p.Height
	return g
}

// Paginator lays out and renders text pages.
type Paginator struct {
	cfg    types.PDFConfig
	logger *slog.Logger
}

// New returns a Paginator for cfg. Zero or negative sizes fall back to A4
// with a 14pt line height and 11pt Helvetica, and an empty font family to
// Helvetica. A zero margin is kept (text runs edge to edge); only a negative
// margin falls back to 40pt.
func New(cfg types.PDFConfig, logger *slog.Logger) (*Paginator, error) {
	def := types.DefaultConfig().PDF
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.LineHeight <= 0 {
		cfg.LineHeight = def.LineHeight
	}
	if cfg.Margin < 0 {
		cfg.Margin = def.Margin
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = def.FontFamily
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = def.FontSize
	}
	if cfg.Height-2*cfg.Margin < 0 {
		return nil, fmt.Errorf("margin %.2f leaves no room on a %.2f high page", cfg.Margin, cfg.Height)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Paginator{cfg: cfg, logger: logger}, nil
}

// Config returns the effective configuration.
func (p *Paginator) Config() types.PDFConfig { return p.cfg }

// Layout assigns every line to a page. Each line's text is trimmed of
// surrounding whitespace. The result always has at least one page.
func (p *Paginator) Layout(lines []string) []types.RenderedPage {
	g := p.cfg.PageGeometry
	pages := []types.RenderedPage{{Number: 1}}
	y := g.Height - g.Margin

	for _, line := range lines {
		if y < g.Margin {
			pages = append(pages, types.RenderedPage{Number: len(pages) + 1})
			y = g.Height - g.Margin
		}
		cur := &pages[len(pages)-1]
		cur.Lines = append(cur.Lines, types.PlacedLine{Text: strings.TrimSpace(line), Y: y})
		y -= g.LineHeight
	}
	return pages
}

// Render writes the laid-out pages as a PDF to w and returns the page count.
func (p *Paginator) Render(w io.Writer, lines []string) (int, error) {
	g := p.cfg.PageGeometry
	pages := p.Layout(lines)

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, page := range pages {
		doc.AddPage()
		doc.SetFont(p.cfg.FontFamily, "", p.cfg.FontSize)
		for _, line := range page.Lines {
			if line.Text == "" {
				continue
			}
			// fpdf measures y from the top edge.
			doc.Text(g.Left, g.Height-line.Y, tr(line.Text))
		}
	}

	if err := doc.Output(w); err != nil {
		return 0, fmt.Errorf("rendering PDF: %w", err)
	}
	return len(pages), nil
}

// RenderFile renders the text file at src to a PDF at dst and returns the
// page count. Read and write failures wrap types.ErrIO.
func (p *Paginator) RenderFile(src, dst string) (int, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w: %w", src, types.ErrIO, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w: %w", dst, types.ErrIO, err)
	}

	n, renderErr := p.Render(f, types.SplitLines(string(data)))
	closeErr := f.Close()
	if renderErr != nil {
		os.Remove(dst)
		return 0, fmt.Errorf("%w: %w", types.ErrIO, renderErr)
	}
	if closeErr != nil {
		os.Remove(dst)
		return 0, fmt.Errorf("closing %s: %w: %w", dst, types.ErrIO, closeErr)
	}

	p.logger.Info("paginate.render", "src", src, "dst", dst, "pages", n)
	return n, nil
}
