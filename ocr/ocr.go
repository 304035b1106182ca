// Package ocr defines the optical-character-recognition surface used as a
// fallback text source for pages that carry no text layer.
package ocr

import "context"

// Input is a single encoded image submitted for recognition.
type Input struct {
	// Image is the encoded payload, PNG unless stated otherwise.
	Image []byte
	// DPI carries the effective dots-per-inch; zero means unknown.
	DPI int
	// Languages is a list of trained-data hints (e.g. "eng"). Empty uses the
	// engine default.
	Languages []string
}

// Result is the recognized plain text.
type Result struct {
	Text string
}

// Engine performs OCR on one image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}
