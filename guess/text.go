package guess

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/wudi/pdfwash/ocr"
	"github.com/wudi/pdfwash/render"
)

// ocrScale is the render scale used when a page falls back to OCR. Two times
// 72 DPI keeps small watermark type legible for the engine.
const ocrScale = 2.0

// Texts counts the non-empty text lines of every page and returns the most
// common ones. A line repeating on most pages is a strong watermark signal.
func Texts(ctx context.Context, src render.Source, path string, opts Options) ([]Candidate, error) {
	doc, err := src.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	counts := make(map[string]int)
	total := doc.PageCount()
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.PageText(i)
		if err != nil {
			return nil, fmt.Errorf("guess texts page %d: %w", i+1, err)
		}
		if strings.TrimSpace(text) == "" && opts.OCR != nil {
			text, err = recognizePage(ctx, doc, i, opts)
			if err != nil {
				return nil, fmt.Errorf("guess texts ocr page %d: %w", i+1, err)
			}
		}
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			counts[line]++
		}
		opts.progress(i+1, total)
	}
	return topN(counts, opts.mostCommon()), nil
}

func recognizePage(ctx context.Context, doc render.Doc, page int, opts Options) (string, error) {
	img, err := doc.Render(page, ocrScale)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode raster: %w", err)
	}
	res, err := opts.OCR.Recognize(ctx, ocr.Input{
		Image:     buf.Bytes(),
		DPI:       int(72 * ocrScale),
		Languages: opts.OCRLanguages,
	})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
