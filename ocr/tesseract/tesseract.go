// Package tesseract implements ocr.Engine with the gosseract client.
package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/wudi/pdfwash/ocr"
)

// Engine is a Tesseract-backed OCR engine. The zero value is not usable; use
// New.
type Engine struct {
	clientFactory func() *gosseract.Client
}

func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize performs OCR on a single image. A fresh client is used per call;
// gosseract clients are not safe for concurrent reuse.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	select {
	case <-ctx.Done():
		return ocr.Result{}, ctx.Err()
	default:
	}
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Image); err != nil {
		return ocr.Result{}, fmt.Errorf("tesseract set image: %w", err)
	}
	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return ocr.Result{}, fmt.Errorf("tesseract set language: %w", err)
		}
	}
	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("tesseract recognize: %w", err)
	}
	return ocr.Result{Text: text}, nil
}
