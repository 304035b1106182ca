package unidoc

import (
	"strings"
	"testing"

	cstream "github.com/wudi/pdfwash/contentstream"
	"github.com/wudi/pdfwash/contentstream/locate"
	"github.com/wudi/pdfwash/document"
)

const redactInput = `BT
/F1 12 Tf
100 700 Td
(CONFIDENTIAL) Tj
0 -600 Td
(body text) Tj
ET
`

func TestRedactStreamRemovesCoveredShows(t *testing.T) {
	stream := cstream.Split([]byte(redactInput))
	spans := locate.FindText(stream, "CONFIDENTIAL")
	if len(spans) != 1 {
		t.Fatalf("fixture should contain the literal once, got %d", len(spans))
	}

	out := redactStream([]byte(redactInput),
		[]redaction{{region: spans[0].Box, fill: document.White}})

	if got := locate.FindText(cstream.Split(out), "CONFIDENTIAL"); len(got) != 0 {
		t.Fatalf("redacted stream still contains the literal: %v", got)
	}
	if got := locate.FindText(cstream.Split(out), "body text"); len(got) != 1 {
		t.Fatalf("uncovered text must survive, got %d matches", len(got))
	}
	if !strings.Contains(string(out), "1.000 1.000 1.000 rg") {
		t.Fatalf("expected opaque fill in output:\n%s", out)
	}
	if !strings.Contains(string(out), " re\nf\nQ\n") {
		t.Fatalf("expected fill rectangle in output:\n%s", out)
	}
}

func TestRedactStreamIgnoresDegenerateRegion(t *testing.T) {
	// A zero-area region covers no glyphs and must not paint a fill either.
	region := document.Region{LLX: 100, LLY: 700, URX: 100, URY: 712}
	out := redactStream([]byte(redactInput), []redaction{{region: region, fill: document.White}})
	if string(out) != redactInput {
		t.Fatalf("degenerate region changed the stream:\n%s", out)
	}
}

func TestRedactStreamPreservesUncoveredLines(t *testing.T) {
	// A region far away from every show touches nothing; only the fill is
	// appended.
	region := document.Region{LLX: 5000, LLY: 5000, URX: 5100, URY: 5100}
	out := redactStream([]byte(redactInput), []redaction{{region: region, fill: document.White}})
	if !strings.HasPrefix(string(out), redactInput) {
		t.Fatalf("retained lines must be byte identical:\n%s", out)
	}
}
