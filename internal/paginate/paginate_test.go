// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-assistant/internal/pdfinfo"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %03d", i+1)
	}
	return lines
}

func newPaginator(t *testing.T, g types.PageGeometry) *Paginator {
	t.Helper()
	p, err := New(types.PDFConfig{PageGeometry: g}, nil)
	require.NoError(t, err)
	return p
}

func flatten(pages []types.RenderedPage) []string {
	var out []string
	for _, p := range pages {
		for _, l := range p.Lines {
			out = append(out, l.Text)
		}
	}
	return out
}

func TestLayout_TwoHundredLines(t *testing.T) {
	g := types.PageGeometry{Width: 595, Height: 800, Margin: 40, LineHeight: 14, Left: 40}
	p := newPaginator(t, g)
	lines := numberedLines(200)

	pages := p.Layout(lines)

	perPage := math.Floor((g.Height - 2*g.Margin) / g.LineHeight)
	assert.Len(t, pages, int(math.Ceil(200/perPage)))
	assert.Equal(t, "line 001", pages[0].Lines[0].Text)
	last := pages[len(pages)-1]
	assert.Equal(t, "line 200", last.Lines[len(last.Lines)-1].Text)
	assert.Equal(t, lines, flatten(pages))
}

func TestLayout_CursorAndBreaks(t *testing.T) {
	g := types.PageGeometry{Width: 200, Height: 100, Margin: 10, LineHeight: 20, Left: 5}
	p := newPaginator(t, g)

	pages := p.Layout(numberedLines(6))

	// y = 90, 70, 50, 30, 10 fit; the sixth line starts page 2.
	require.Len(t, pages, 2)
	require.Len(t, pages[0].Lines, 5)
	assert.Equal(t, 90.0, pages[0].Lines[0].Y)
	assert.Equal(t, 10.0, pages[0].Lines[4].Y)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, 90.0, pages[1].Lines[0].Y)
	for _, page := range pages {
		for _, l := range page.Lines {
			assert.GreaterOrEqual(t, l.Y, g.Margin)
		}
	}
}

func TestLayout_TrimsAndKeepsBlankLines(t *testing.T) {
	p := newPaginator(t, types.A4Geometry())
	pages := p.Layout([]string{"  indented", "", "trailing\t"})
	require.Len(t, pages, 1)
	assert.Equal(t, []string{"indented", "", "trailing"}, flatten(pages))
}

func TestLayout_NoTrailingBlankPage(t *testing.T) {
	g := types.PageGeometry{Width: 200, Height: 100, Margin: 10, LineHeight: 20}
	p := newPaginator(t, g)

	// Exactly one full page.
	pages := p.Layout(numberedLines(5))
	assert.Len(t, pages, 1)

	// Empty input still produces a single page.
	assert.Len(t, p.Layout(nil), 1)
}

func TestLayout_EveryLineOnExactlyOnePage(t *testing.T) {
	p := newPaginator(t, types.A4Geometry())
	for _, n := range []int{1, 57, 58, 59, 300} {
		lines := numberedLines(n)
		pages := p.Layout(lines)
		assert.Equal(t, lines, flatten(pages), "n=%d", n)
		for i, page := range pages {
			assert.Equal(t, i+1, page.Number)
			assert.NotEmpty(t, page.Lines, "page %d of %d lines is empty", i+1, n)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	p, err := New(types.PDFConfig{}, nil)
	require.NoError(t, err)
	cfg := p.Config()
	assert.Equal(t, A4.Height, cfg.Height)
	assert.Equal(t, A4.Width, cfg.Width)
	assert.Equal(t, 14.0, cfg.LineHeight)
	assert.Equal(t, "Helvetica", cfg.FontFamily)
	assert.Equal(t, 0.0, cfg.Margin, "zero margin kept")

	p, err = New(types.PDFConfig{PageGeometry: types.PageGeometry{Margin: -1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 40.0, p.Config().Margin, "negative margin falls back")

	_, err = New(types.PDFConfig{PageGeometry: types.PageGeometry{Height: 50, Margin: 40, LineHeight: 14}}, nil)
	assert.Error(t, err)
}

func TestPaperSizeGeometry(t *testing.T) {
	g := Letter.Geometry()
	assert.Equal(t, 612.0, g.Width)
	assert.Equal(t, 792.0, g.Height)
	assert.Equal(t, 40.0, g.Margin)
}

func TestRender_PageCount(t *testing.T) {
	g := types.PageGeometry{Width: 595, Height: 800, Margin: 40, LineHeight: 14, Left: 40}
	p := newPaginator(t, g)

	var buf bytes.Buffer
	n, err := p.Render(&buf, numberedLines(200))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	pages, err := pdfinfo.PageCountBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, n, pages)
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "filled_template.txt")
	dst := filepath.Join(dir, "filled_template.pdf")
	require.NoError(t, os.WriteFile(src, []byte("Name: Alice\nDate: 2024-01-01\nNotes — café\n"), 0o644))

	p := newPaginator(t, types.A4Geometry())
	n, err := p.RenderFile(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	pages, err := pdfinfo.PageCount(dst)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestRenderFile_Errors(t *testing.T) {
	dir := t.TempDir()
	p := newPaginator(t, types.A4Geometry())

	_, err := p.RenderFile(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.pdf"))
	assert.ErrorIs(t, err, types.ErrIO)

	src := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(src, []byte(strings.Repeat("x\n", 3)), 0o644))
	_, err = p.RenderFile(src, filepath.Join(dir, "no-such-dir", "out.pdf"))
	assert.ErrorIs(t, err, types.ErrIO)
}
