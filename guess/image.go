package guess

import (
	"context"
	"fmt"

	cstream "github.com/wudi/pdfwash/contentstream"
	"github.com/wudi/pdfwash/document"
)

// Images counts image paint references across every page's normalized
// content stream and returns the most common ones together with the lookup
// table from display name back to raw identifier.
func Images(ctx context.Context, doc document.Document, opts Options) ([]Candidate, RefTable, error) {
	counts := make(map[string]int)
	table := make(RefTable)
	total := doc.PageCount()
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		page, err := doc.Page(i)
		if err != nil {
			return nil, nil, err
		}
		content, _, err := page.NormalizedContent()
		if err != nil {
			return nil, nil, fmt.Errorf("guess images page %d: %w", i+1, err)
		}
		for _, ln := range cstream.Split(content).Lines {
			ref := cstream.ImagePaintRef(ln.Text)
			if ref == "" {
				continue
			}
			name := DisplayName(ref)
			counts[name]++
			table[name] = ref
		}
		opts.progress(i+1, total)
	}
	return topN(counts, opts.mostCommon()), table, nil
}
