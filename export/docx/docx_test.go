package docx

import (
	"archive/zip"
	"errors"
	"image"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wudi/pdfwash/render"
)

func readPart(t *testing.T, path, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read part %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s not found in %s", name, path)
	return ""
}

func TestSaveWritesPackageParts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	doc := New()
	doc.AddParagraph("first page")
	doc.AddPageBreak()
	doc.AddParagraph("second <page> & more")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	types := readPart(t, path, "[Content_Types].xml")
	if !strings.Contains(types, "wordprocessingml.document.main+xml") {
		t.Errorf("content types missing document override:\n%s", types)
	}
	rels := readPart(t, path, "_rels/.rels")
	if !strings.Contains(rels, `Target="word/document.xml"`) {
		t.Errorf("rels missing document relationship:\n%s", rels)
	}
	body := readPart(t, path, "word/document.xml")
	for _, want := range []string{
		"<w:t xml:space=\"preserve\">first page</w:t>",
		`<w:br w:type="page"/>`,
		"second &lt;page&gt; &amp; more",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("document.xml missing %q:\n%s", want, body)
		}
	}
}

type textDoc struct {
	pages []string
}

func (d *textDoc) PageCount() int { return len(d.pages) }

func (d *textDoc) PageText(page int) (string, error) {
	if page < 0 || page >= len(d.pages) {
		return "", errors.New("page out of range")
	}
	return d.pages[page], nil
}

func (d *textDoc) Render(page int, scale float64) (image.Image, error) {
	return nil, errors.New("not rendered")
}

func (d *textDoc) Close() error { return nil }

type textSource struct {
	doc *textDoc
}

func (s textSource) Open(path string) (render.Doc, error) { return s.doc, nil }

func TestConvertOneParagraphPerLine(t *testing.T) {
	src := textSource{doc: &textDoc{pages: []string{
		"line one\nline two\n\n  \n",
		"",
		"next page",
	}}}
	path := filepath.Join(t.TempDir(), "conv.docx")

	var calls []int
	progress := func(current, total int) {
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
		calls = append(calls, current)
	}
	if err := Convert(src, "in.pdf", path, progress); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(calls) != 3 || calls[0] != 1 || calls[2] != 3 {
		t.Errorf("progress calls = %v, want [1 2 3]", calls)
	}

	body := readPart(t, path, "word/document.xml")
	if got := strings.Count(body, "<w:p><w:r><w:t"); got != 3 {
		t.Errorf("paragraph count = %d, want 3 (blank lines dropped):\n%s", got, body)
	}
	if got := strings.Count(body, `w:type="page"`); got != 1 {
		t.Errorf("page break count = %d, want 1 (empty page adds none)", got)
	}
	if strings.Index(body, "line two") > strings.Index(body, `w:type="page"`) {
		t.Errorf("page break placed before first page text:\n%s", body)
	}
}
