// Package render abstracts page rasterization and plain-text extraction,
// the two read-only views this tool needs of a finished PDF: rasters for
// previews, text for watermark guessing and word-processor export.
package render

import "image"

// Source opens documents for read-only rendering.
type Source interface {
	Open(path string) (Doc, error)
}

// Doc is an open read-only document.
type Doc interface {
	PageCount() int
	// PageText returns the plain text of a page, reading order best effort.
	PageText(page int) (string, error)
	// Render rasterizes a page. Scale 1.0 corresponds to 72 DPI.
	Render(page int, scale float64) (image.Image, error)
	Close() error
}
