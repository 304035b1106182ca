package docx

import (
	"fmt"
	"strings"

	"github.com/wudi/pdfwash/render"
)

// Convert extracts the text of each page of the PDF at pdfPath and writes
// it to outPath as a .docx file, one paragraph per text line and a page
// break between pages that contain text. progress, when non-nil, is called
// after each page with the one-based page number and the page total.
func Convert(src render.Source, pdfPath, outPath string, progress func(current, total int)) error {
	doc, err := src.Open(pdfPath)
	if err != nil {
		return fmt.Errorf("docx convert open %s: %w", pdfPath, err)
	}
	defer doc.Close()

	out := New()
	total := doc.PageCount()
	wrote := false
	for i := 0; i < total; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return fmt.Errorf("docx convert page %d: %w", i, err)
		}
		// A break separates pages that yielded text; empty pages add nothing.
		pageWrote := false
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimRight(line, " \t\r")
			if line == "" {
				continue
			}
			if wrote && !pageWrote {
				out.AddPageBreak()
			}
			out.AddParagraph(line)
			pageWrote = true
		}
		wrote = wrote || pageWrote
		if progress != nil {
			progress(i+1, total)
		}
	}
	return out.Save(outPath)
}
