package unidoc

import (
	"fmt"
	"strings"

	cstream "github.com/wudi/pdfwash/contentstream"
	"github.com/wudi/pdfwash/contentstream/locate"
	"github.com/wudi/pdfwash/document"
)

type redaction struct {
	region document.Region
	fill   document.Fill
}

func (p *pdfPage) SearchText(literal string) ([]document.Region, error) {
	content, err := p.content()
	if err != nil {
		return nil, err
	}
	spans := locate.FindText(cstream.Split(content), literal)
	regions := make([]document.Region, 0, len(spans))
	for _, sp := range spans {
		regions = append(regions, sp.Box)
	}
	return regions, nil
}

func (p *pdfPage) AddRedaction(r document.Region, fill document.Fill) {
	p.redactions = append(p.redactions, redaction{region: r, fill: fill})
}

// ApplyRedactions drops every text-show operation whose box intersects a
// registered region and paints the fill over the region. The glyph data is
// gone from the stream afterwards; re-searching the page finds nothing.
func (p *pdfPage) ApplyRedactions() error {
	if len(p.redactions) == 0 {
		return nil
	}
	content, err := p.content()
	if err != nil {
		return err
	}
	if err := p.ReplaceContent(redactStream(content, p.redactions)); err != nil {
		return err
	}
	p.redactions = nil
	return nil
}

// redactStream rebuilds a content stream without the text-show lines covered
// by the redactions and appends one opaque fill per region.
func redactStream(content []byte, redactions []redaction) []byte {
	stream := cstream.Split(content)

	drop := make(map[int]bool)
	for _, sp := range locate.Spans(stream) {
		for _, red := range redactions {
			if red.region.IsEmpty() {
				continue
			}
			if sp.Box.Intersects(red.region) {
				drop[sp.Line] = true
				break
			}
		}
	}

	out := &cstream.Stream{Lines: make([]cstream.Line, 0, stream.Len())}
	for i, ln := range stream.Lines {
		if drop[i] {
			continue
		}
		out.Lines = append(out.Lines, ln)
	}

	var b strings.Builder
	b.Write(out.Bytes())
	if n := len(out.Lines); n > 0 && out.Lines[n-1].EOL == "" {
		b.WriteByte('\n')
	}
	for _, red := range redactions {
		// A degenerate region covers no glyphs and needs no fill.
		if red.region.IsEmpty() {
			continue
		}
		writeFillRect(&b, red)
	}
	return []byte(b.String())
}

func writeFillRect(b *strings.Builder, red redaction) {
	r := red.region
	fmt.Fprintf(b, "q\n%.3f %.3f %.3f rg\n%.2f %.2f %.2f %.2f re\nf\nQ\n",
		red.fill.R, red.fill.G, red.fill.B,
		r.LLX, r.LLY, r.Width(), r.Height())
}
