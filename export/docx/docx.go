// Package docx writes minimal WordprocessingML documents: plain paragraphs
// and page breaks inside an OPC ZIP container. That is all the word-processor
// export of a stripped PDF needs.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>
`
	relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`
	documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
`
	documentFooter = `<w:sectPr/>
</w:body>
</w:document>
`
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockPageBreak
)

type block struct {
	kind blockKind
	text string
}

// Document accumulates body content and serializes it on Save.
type Document struct {
	blocks []block
}

func New() *Document { return &Document{} }

// AddParagraph appends one paragraph of plain text.
func (d *Document) AddParagraph(text string) {
	d.blocks = append(d.blocks, block{kind: blockParagraph, text: text})
}

// AddPageBreak appends a manual page break.
func (d *Document) AddPageBreak() {
	d.blocks = append(d.blocks, block{kind: blockPageBreak})
}

// Save writes the document as a .docx file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("docx create %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relsXML)},
		{"word/document.xml", d.documentXML()},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("docx part %s: %w", part.name, err)
		}
		if _, err := w.Write(part.data); err != nil {
			return fmt.Errorf("docx part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("docx finalize %s: %w", path, err)
	}
	return nil
}

func (d *Document) documentXML() []byte {
	var b bytes.Buffer
	b.WriteString(documentHeader)
	for _, bl := range d.blocks {
		switch bl.kind {
		case blockParagraph:
			b.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
			xml.EscapeText(&b, []byte(bl.text))
			b.WriteString("</w:t></w:r></w:p>\n")
		case blockPageBreak:
			b.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>` + "\n")
		}
	}
	b.WriteString(documentFooter)
	return b.Bytes()
}
