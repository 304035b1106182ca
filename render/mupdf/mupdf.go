// Package mupdf implements render.Source with go-fitz (MuPDF bindings).
package mupdf

import (
	"fmt"
	"image"

	fitz "github.com/gen2brain/go-fitz"

	"github.com/wudi/pdfwash/render"
)

// Source opens documents through MuPDF.
type Source struct{}

func (Source) Open(path string) (render.Doc, error) {
	d, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("mupdf open %s: %w", path, err)
	}
	return &doc{d: d}, nil
}

type doc struct {
	d *fitz.Document
}

func (d *doc) PageCount() int { return d.d.NumPage() }

func (d *doc) PageText(page int) (string, error) {
	text, err := d.d.Text(page)
	if err != nil {
		return "", fmt.Errorf("mupdf text page %d: %w", page+1, err)
	}
	return text, nil
}

func (d *doc) Render(page int, scale float64) (image.Image, error) {
	if scale <= 0 {
		scale = 1
	}
	img, err := d.d.ImageDPI(page, 72*scale)
	if err != nil {
		return nil, fmt.Errorf("mupdf render page %d: %w", page+1, err)
	}
	return img, nil
}

func (d *doc) Close() error { return d.d.Close() }
