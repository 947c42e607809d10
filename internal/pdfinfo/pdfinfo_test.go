// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfinfo

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePDF(t *testing.T, pages int) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "A4", "")
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 11)
		doc.Text(40, 60, "page")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	for _, n := range []int{1, 3} {
		data := makePDF(t, n)

		got, err := PageCountBytes(data)
		require.NoError(t, err)
		assert.Equal(t, n, got)

		path := filepath.Join(t.TempDir(), "doc.pdf")
		require.NoError(t, os.WriteFile(path, data, 0o644))
		got, err = PageCount(path)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestPageCountErrors(t *testing.T) {
	_, err := PageCount(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)

	_, err = PageCountBytes([]byte("not a pdf"))
	assert.Error(t, err)
}
