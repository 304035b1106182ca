// Package preview produces a rasterized look at what a removal spec would do
// to a document: it runs the full pipeline into a scratch file and renders
// one page of the result to PNG. The scratch file is overwritten on every
// call, so a preview never shows a previous spec's output.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/wudi/pdfwash/job"
	"github.com/wudi/pdfwash/render"
)

const scratchName = "preview.pdf"

// DefaultScale renders at 144 DPI, enough detail to judge a watermark.
const DefaultScale = 2.0

// Generator renders previews. Safe for sequential use only; concurrent calls
// would race on the scratch file.
type Generator struct {
	Runner *job.Runner
	Source render.Source
	// ScratchDir holds the intermediate stripped PDF. Required.
	ScratchDir string
	// MaxWidth bounds the returned image width in pixels; zero means no
	// bound.
	MaxWidth int
	// Scale is the render scale, 1.0 meaning 72 DPI. Zero means
	// DefaultScale.
	Scale float64
}

// Page strips input according to spec and returns the given zero-based page
// of the result encoded as PNG.
func (g *Generator) Page(ctx context.Context, input string, spec job.Spec, pageIndex int) ([]byte, error) {
	spec.ToDoc = false
	scratch := filepath.Join(g.ScratchDir, scratchName)
	if err := os.Remove(scratch); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("preview scratch: %w", err)
	}

	if _, err := g.Runner.Process(ctx, job.Request{Input: input, Output: scratch, Spec: spec}, nil); err != nil {
		return nil, fmt.Errorf("preview strip: %w", err)
	}

	doc, err := g.Source.Open(scratch)
	if err != nil {
		return nil, fmt.Errorf("preview open: %w", err)
	}
	defer doc.Close()
	if pageIndex < 0 || pageIndex >= doc.PageCount() {
		return nil, fmt.Errorf("preview page %d out of range, document has %d", pageIndex, doc.PageCount())
	}

	scale := g.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	img, err := doc.Render(pageIndex, scale)
	if err != nil {
		return nil, fmt.Errorf("preview render: %w", err)
	}
	img = scaleToWidth(img, g.MaxWidth)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("preview encode: %w", err)
	}
	return buf.Bytes(), nil
}

func scaleToWidth(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
