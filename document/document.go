// Package document defines the contract this engine needs from a PDF
// container library: open a paginated document, read one content stream per
// page (raw or normalized), replace it wholesale, register and apply text
// redactions, and save. The engine never patches stored bytes in place; a
// page's stream is always rebuilt in memory and committed in one call.
package document

import "github.com/wudi/pdfwash/coords"

// Opener opens documents from the file system.
type Opener interface {
	// Open loads a document for editing. It returns *OpenError when the file
	// is missing or the container is unreadable.
	Open(path string) (Document, error)
}

// Document is an open paginated container. A Document is owned by exactly
// one processing job and must not be shared across goroutines.
type Document interface {
	PageCount() int
	Page(index int) (Page, error)
	// Save writes the mutated document. It returns *SaveError on failure.
	Save(path string) error
	Close() error
}

// Page exposes one primary content stream plus the redaction surface.
type Page interface {
	// RawContent returns the decoded content stream without any cleanup
	// pass.
	RawContent() ([]byte, error)
	// NormalizedContent returns the content stream after the library's
	// canonicalization pass (one operation per line, consolidated state
	// operators). Non-fatal problems encountered while normalizing are
	// returned as warnings.
	NormalizedContent() ([]byte, []string, error)
	// ReplaceContent commits a rebuilt stream back to the page.
	ReplaceContent([]byte) error
	// Reload re-resolves the page's content object. Required after
	// ReplaceContent before the stream is read again, because the content
	// may have moved within the container's object graph.
	Reload() error

	// SearchText returns the page regions covered by occurrences of the
	// literal.
	SearchText(literal string) ([]Region, error)
	// AddRedaction registers a pending redaction over the region.
	AddRedaction(r Region, fill Fill)
	// ApplyRedactions commits all pending redactions, permanently removing
	// the glyph data under each region. There is no undo.
	ApplyRedactions() error
}

// Region is a rectangle in page space.
type Region = coords.Rect

// Fill is an opaque RGB fill painted over a redacted region, components in
// [0, 1].
type Fill struct {
	R, G, B float64
}

// White is the conventional redaction fill.
var White = Fill{R: 1, G: 1, B: 1}
