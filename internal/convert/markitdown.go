// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/doc-assistant/internal/container"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

const defaultMarkitdownImage = "markitdown:latest"

// MarkitdownConverter converts PDFs by piping them through the markitdown
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type MarkitdownConverter struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownConverter creates a converter that uses the given container
// runtime to run image (default markitdown:latest). It verifies that the
// image exists locally before returning.
func NewMarkitdownConverter(rt container.Runtime, image string) (*MarkitdownConverter, error) {
	if image == "" {
		image = defaultMarkitdownImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownConverter{runtime: rt, image: image}, nil
}

// Convert pipes the PDF at pdfPath through the markitdown container and
// returns its output. markitdown emits a form feed between pages; each page
// is re-terminated with "\n" to match the native backend.
func (m *MarkitdownConverter) Convert(ctx context.Context, pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w: %w", pdfPath, types.ErrExtraction, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w: %w", pdfPath, types.ErrExtraction, err)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("markitdown produced empty output for %s: %w", pdfPath, types.ErrExtraction)
	}

	return joinPages(bytes.Split(out.Bytes(), []byte("\f"))), nil
}

// joinPages terminates every non-empty trailing page with a newline.
func joinPages(pages [][]byte) string {
	for len(pages) > 1 && len(bytes.TrimSpace(pages[len(pages)-1])) == 0 {
		pages = pages[:len(pages)-1]
	}
	var b bytes.Buffer
	for _, p := range pages {
		b.Write(bytes.TrimRight(p, "\n"))
		b.WriteByte('\n')
	}
	return b.String()
}
