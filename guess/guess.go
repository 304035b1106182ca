// Package guess proposes watermark candidates by frequency analysis: a text
// line or an image reference recurring across most pages of a document is
// very likely page decoration rather than content. The guessers only count
// and rank; deciding what is actually a watermark stays with the caller.
package guess

import (
	"sort"

	"github.com/wudi/pdfwash/ocr"
)

// DefaultMostCommon is how many candidates a guesser reports.
const DefaultMostCommon = 10

// Candidate is one proposed watermark with its occurrence count across the
// document.
type Candidate struct {
	Value string
	Count int
}

// RefTable maps an image candidate's display name back to the raw image
// identifier used by the stripper. It is returned by value from the guess
// pass and threaded into the removal pass; no lookup state outlives a job.
type RefTable map[string]string

// DisplayName renders an image identifier for candidate lists.
func DisplayName(ref string) string { return "Image " + ref }

// Options configures a guess pass.
type Options struct {
	// MostCommon caps the candidate list; zero means DefaultMostCommon.
	MostCommon int
	// Progress, when set, is called after each processed page.
	Progress func(current, total int)
	// OCR, when set, recognizes pages whose text layer is empty before the
	// text guesser gives up on them.
	OCR ocr.Engine
	// OCRLanguages are trained-data hints passed to the OCR engine.
	OCRLanguages []string
}

func (o Options) mostCommon() int {
	if o.MostCommon <= 0 {
		return DefaultMostCommon
	}
	return o.MostCommon
}

func (o Options) progress(current, total int) {
	if o.Progress != nil {
		o.Progress(current, total)
	}
}

// topN ranks counted values by count descending, ties broken by value, and
// keeps the first n.
func topN(counts map[string]int, n int) []Candidate {
	out := make([]Candidate, 0, len(counts))
	for v, c := range counts {
		out = append(out, Candidate{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
