// Package contentstream models a decoded page content stream as an ordered
// sequence of logical instruction lines. Lines that survive an edit are
// reproduced byte for byte, including internal whitespace and each line's own
// terminator; editing only ever drops whole lines, never splits or merges
// them.
package contentstream

// Line is one logical instruction line. Text holds the line's bytes without
// its terminator; EOL holds the terminator exactly as it appeared ("\n",
// "\r\n", "\r", or "" for a final unterminated line).
type Line struct {
	Text string
	EOL  string
}

// Stream is an ordered sequence of content lines.
type Stream struct {
	Lines []Line
}

// Split tokenizes a decoded content stream buffer. The invariant
// Split(b).Bytes() == b holds for every input.
func Split(data []byte) *Stream {
	s := &Stream{}
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			s.Lines = append(s.Lines, Line{Text: string(data[start:i]), EOL: "\n"})
			start = i + 1
		case '\r':
			eol := "\r"
			if i+1 < len(data) && data[i+1] == '\n' {
				eol = "\r\n"
			}
			s.Lines = append(s.Lines, Line{Text: string(data[start:i]), EOL: eol})
			i += len(eol) - 1
			start = i + 1
		}
	}
	if start < len(data) {
		s.Lines = append(s.Lines, Line{Text: string(data[start:])})
	}
	return s
}

// Bytes reassembles the stream. Unmodified streams round-trip exactly.
func (s *Stream) Bytes() []byte {
	n := 0
	for _, ln := range s.Lines {
		n += len(ln.Text) + len(ln.EOL)
	}
	out := make([]byte, 0, n)
	for _, ln := range s.Lines {
		out = append(out, ln.Text...)
		out = append(out, ln.EOL...)
	}
	return out
}

// Len returns the number of logical lines.
func (s *Stream) Len() int { return len(s.Lines) }
