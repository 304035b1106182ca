// Package unidoc implements the document container contract on top of
// unipdf. Normalization is a parse/re-serialize round trip through unipdf's
// content stream parser, which consolidates operators onto one instruction
// per line; parse problems are surfaced as warnings rather than failures so
// callers can fall back to raw reads.
package unidoc

import (
	"fmt"
	"os"

	ucs "github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/core"
	"github.com/unidoc/unipdf/v3/core/security"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/wudi/pdfwash/document"
)

// Opener implements document.Opener.
type Opener struct{}

// Open loads a PDF for editing. Encrypted inputs are tried with the empty
// password; anything else is an OpenError.
func (Opener) Open(path string) (document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &document.OpenError{Path: path, Err: err}
	}
	reader, err := model.NewPdfReader(f)
	if err != nil {
		f.Close()
		return nil, &document.OpenError{Path: path, Err: err}
	}
	encrypted, err := reader.IsEncrypted()
	if err != nil {
		f.Close()
		return nil, &document.OpenError{Path: path, Err: err}
	}
	if encrypted {
		auth, err := reader.Decrypt([]byte(""))
		if err != nil {
			f.Close()
			return nil, &document.OpenError{Path: path, Err: err}
		}
		if !auth {
			f.Close()
			return nil, &document.OpenError{Path: path, Err: fmt.Errorf("password required")}
		}
	}
	n, err := reader.GetNumPages()
	if err != nil {
		f.Close()
		return nil, &document.OpenError{Path: path, Err: err}
	}
	pages := make([]*model.PdfPage, n)
	for i := 0; i < n; i++ {
		pg, err := reader.GetPage(i + 1)
		if err != nil {
			f.Close()
			return nil, &document.OpenError{Path: path, Err: fmt.Errorf("page %d: %w", i+1, err)}
		}
		pages[i] = pg
	}
	return &pdfDocument{path: path, file: f, pages: pages, wrappers: make([]*pdfPage, n)}, nil
}

type pdfDocument struct {
	path     string
	file     *os.File
	pages    []*model.PdfPage
	wrappers []*pdfPage
}

func (d *pdfDocument) PageCount() int { return len(d.pages) }

func (d *pdfDocument) Page(index int) (document.Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	if d.wrappers[index] == nil {
		d.wrappers[index] = &pdfPage{page: d.pages[index]}
	}
	return d.wrappers[index], nil
}

func (d *pdfDocument) Save(path string) error {
	writer := model.NewPdfWriter()
	for i, pg := range d.pages {
		if err := writer.AddPage(pg); err != nil {
			return &document.SaveError{Path: path, Err: fmt.Errorf("page %d: %w", i+1, err)}
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return &document.SaveError{Path: path, Err: err}
	}
	defer out.Close()
	if err := writer.Write(out); err != nil {
		return &document.SaveError{Path: path, Err: err}
	}
	return nil
}

func (d *pdfDocument) Close() error { return d.file.Close() }

type pdfPage struct {
	page       *model.PdfPage
	cached     []byte // decoded stream, invalidated by Reload/ReplaceContent
	redactions []redaction
}

func (p *pdfPage) RawContent() ([]byte, error) {
	contents, err := p.page.GetAllContentStreams()
	if err != nil {
		return nil, fmt.Errorf("read content streams: %w", err)
	}
	return []byte(contents), nil
}

func (p *pdfPage) NormalizedContent() ([]byte, []string, error) {
	contents, err := p.page.GetAllContentStreams()
	if err != nil {
		return nil, nil, fmt.Errorf("read content streams: %w", err)
	}
	ops, err := ucs.NewContentStreamParser(contents).Parse()
	if err != nil {
		// Keep the raw bytes usable; the warning tells the caller this
		// stream cannot be relied on in normalized form.
		return []byte(contents), []string{err.Error()}, nil
	}
	return ops.Bytes(), nil, nil
}

func (p *pdfPage) ReplaceContent(b []byte) error {
	if err := p.page.SetContentStreams([]string{string(b)}, core.NewFlateEncoder()); err != nil {
		return fmt.Errorf("replace content stream: %w", err)
	}
	p.cached = nil
	return nil
}

func (p *pdfPage) Reload() error {
	p.cached = nil
	return nil
}

func (p *pdfPage) content() ([]byte, error) {
	if p.cached != nil {
		return p.cached, nil
	}
	b, _, err := p.NormalizedContent()
	if err != nil {
		return nil, err
	}
	p.cached = b
	return b, nil
}

// ExtractionAllowed reports whether a document's permissions allow text
// extraction, which gates word-processor conversion.
func ExtractionAllowed(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, &document.OpenError{Path: path, Err: err}
	}
	defer f.Close()
	reader, err := model.NewPdfReader(f)
	if err != nil {
		return false, &document.OpenError{Path: path, Err: err}
	}
	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return false, &document.OpenError{Path: path, Err: err}
	}
	if !encrypted {
		return true, nil
	}
	ok, perms, err := reader.CheckAccessRights([]byte(""))
	if err != nil {
		return false, &document.OpenError{Path: path, Err: err}
	}
	if !ok {
		return false, nil
	}
	return perms.Allowed(security.PermExtractGraphics), nil
}
