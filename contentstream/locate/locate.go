// Package locate finds text-show operations in a content stream and computes
// the page-space rectangle each one covers. It walks the graphics and text
// state (cm, q/Q, BT/ET, Tf, Td/TD, Tm, TL, T*) the same way a renderer
// would, but with approximate glyph metrics: without font programs every
// glyph is assumed 500/1000 em wide. The boxes are meant for redaction
// coverage, not typography.
package locate

import (
	"strings"

	"github.com/wudi/pdfwash/contentstream"
	"github.com/wudi/pdfwash/coords"
)

// Span is one text-show operation: the line that carries it, its decoded
// string content, and the approximate rectangle it paints into.
type Span struct {
	Line int
	Text string
	Box  coords.Rect
}

// missingWidth is the glyph-space advance assumed when no metrics are
// available.
const missingWidth = 500

type walker struct {
	ctm      coords.Matrix
	stack    []coords.Matrix
	tm       coords.Matrix
	tlm      coords.Matrix
	fontSize float64
	leading  float64
	spans    []Span
}

// Spans returns every text-show operation in the stream, in stream order.
func Spans(s *contentstream.Stream) []Span {
	w := &walker{
		ctm: coords.Identity(),
		tm:  coords.Identity(),
		tlm: coords.Identity(),
	}
	for i, ln := range s.Lines {
		w.line(i, ln.Text)
	}
	return w.spans
}

// FindText returns the spans whose decoded text contains literal. Matching is
// exact on bytes; the caller supplies the literal the way it appears in the
// page's text.
func FindText(s *contentstream.Stream, literal string) []Span {
	if literal == "" {
		return nil
	}
	var out []Span
	for _, sp := range Spans(s) {
		if strings.Contains(sp.Text, literal) {
			out = append(out, sp)
		}
	}
	return out
}

func (w *walker) line(idx int, text string) {
	toks := lexLine(text)
	var operands []token
	for _, tk := range toks {
		if tk.kind != tokWord {
			operands = append(operands, tk)
			continue
		}
		w.apply(idx, tk.str, operands)
		operands = operands[:0]
	}
}

func (w *walker) apply(line int, op string, operands []token) {
	switch op {
	case "q":
		w.stack = append(w.stack, w.ctm)
	case "Q":
		if n := len(w.stack); n > 0 {
			w.ctm = w.stack[n-1]
			w.stack = w.stack[:n-1]
		}
	case "cm":
		if m, ok := matrixOperand(operands); ok {
			w.ctm = m.Multiply(w.ctm)
		}
	case "BT":
		w.tm = coords.Identity()
		w.tlm = coords.Identity()
	case "Tf":
		if len(operands) >= 2 {
			if sz, ok := numberOperand(operands[len(operands)-1]); ok {
				w.fontSize = sz
			}
		}
	case "Td", "TD":
		if len(operands) >= 2 {
			tx, okx := numberOperand(operands[len(operands)-2])
			ty, oky := numberOperand(operands[len(operands)-1])
			if okx && oky {
				w.tlm = coords.Translate(tx, ty).Multiply(w.tlm)
				w.tm = w.tlm
				if op == "TD" {
					w.leading = -ty
				}
			}
		}
	case "Tm":
		if m, ok := matrixOperand(operands); ok {
			w.tlm = m
			w.tm = m
		}
	case "TL":
		if len(operands) >= 1 {
			if l, ok := numberOperand(operands[len(operands)-1]); ok {
				w.leading = l
			}
		}
	case "T*":
		w.nextLine()
	case "Tj":
		if len(operands) >= 1 && operands[len(operands)-1].kind == tokString {
			w.show(line, operands[len(operands)-1].str, 0)
		}
	case "'":
		w.nextLine()
		if len(operands) >= 1 && operands[len(operands)-1].kind == tokString {
			w.show(line, operands[len(operands)-1].str, 0)
		}
	case "\"":
		w.nextLine()
		if len(operands) >= 1 && operands[len(operands)-1].kind == tokString {
			w.show(line, operands[len(operands)-1].str, 0)
		}
	case "TJ":
		text, kern := flattenArray(operands)
		if text != "" || kern != 0 {
			w.show(line, text, kern)
		}
	}
}

func (w *walker) nextLine() {
	w.tlm = coords.Translate(0, -w.leading).Multiply(w.tlm)
	w.tm = w.tlm
}

// show records a span for a decoded string and advances the text matrix by
// the approximate width. kern is the summed TJ adjustment in glyph space.
func (w *walker) show(line int, text string, kern float64) {
	width := (float64(len(text))*missingWidth - kern) / 1000.0 * w.fontSize
	if width < 0 {
		width = 0
	}
	height := w.fontSize

	m := w.tm.Multiply(w.ctm)
	box := coords.BoundingRect(
		m.Transform(coords.Point{X: 0, Y: 0}),
		m.Transform(coords.Point{X: width, Y: 0}),
		m.Transform(coords.Point{X: 0, Y: height}),
		m.Transform(coords.Point{X: width, Y: height}),
	)
	w.spans = append(w.spans, Span{Line: line, Text: text, Box: box})
	w.tm = coords.Translate(width, 0).Multiply(w.tm)
}

// flattenArray joins the string elements of a TJ array and sums its numeric
// kerning adjustments.
func flattenArray(operands []token) (string, float64) {
	var b strings.Builder
	kern := 0.0
	inArray := false
	for _, tk := range operands {
		switch tk.kind {
		case tokArrayOpen:
			inArray = true
		case tokArrayClose:
			inArray = false
		case tokString:
			if inArray {
				b.WriteString(tk.str)
			}
		case tokNumber:
			if inArray {
				kern += tk.num
			}
		}
	}
	return b.String(), kern
}

func numberOperand(tk token) (float64, bool) {
	if tk.kind != tokNumber {
		return 0, false
	}
	return tk.num, true
}

func matrixOperand(operands []token) (coords.Matrix, bool) {
	if len(operands) < 6 {
		return coords.Matrix{}, false
	}
	var m coords.Matrix
	for i := 0; i < 6; i++ {
		n, ok := numberOperand(operands[len(operands)-6+i])
		if !ok {
			return coords.Matrix{}, false
		}
		m[i] = n
	}
	return m, true
}
