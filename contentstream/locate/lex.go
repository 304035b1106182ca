package locate

import "strconv"

type tokKind int

const (
	tokWord tokKind = iota
	tokNumber
	tokName
	tokString
	tokArrayOpen
	tokArrayClose
)

type token struct {
	kind tokKind
	num  float64
	str  string
}

// lexLine tokenizes one instruction line. Literal strings are decoded
// (escapes, nested parentheses), hex strings are decoded to raw bytes, inline
// dictionaries are consumed as a single opaque word. Anything that is not an
// operand is a word token, which the walker treats as an operator.
func lexLine(line string) []token {
	var toks []token
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			s, next := decodeLiteral(line, i+1)
			toks = append(toks, token{kind: tokString, str: s})
			i = next
		case c == '<' && i+1 < len(line) && line[i+1] == '<':
			raw, next := consumeDict(line, i)
			toks = append(toks, token{kind: tokWord, str: raw})
			i = next
		case c == '<':
			s, next := decodeHex(line, i+1)
			toks = append(toks, token{kind: tokString, str: s})
			i = next
		case c == '[':
			toks = append(toks, token{kind: tokArrayOpen})
			i++
		case c == ']':
			toks = append(toks, token{kind: tokArrayClose})
			i++
		case c == '/':
			j := i + 1
			for j < len(line) && !isDelim(line[j]) {
				j++
			}
			toks = append(toks, token{kind: tokName, str: line[i+1 : j]})
			i = j
		default:
			j := i
			for j < len(line) && !isDelim(line[j]) {
				j++
			}
			word := line[i:j]
			if n, err := strconv.ParseFloat(word, 64); err == nil {
				toks = append(toks, token{kind: tokNumber, num: n})
			} else {
				toks = append(toks, token{kind: tokWord, str: word})
			}
			i = j
		}
	}
	return toks
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '(', ')', '<', '>', '[', ']', '/', '%':
		return true
	}
	return false
}

// decodeLiteral decodes a literal string starting just past the opening
// parenthesis and returns the index just past the closing one.
func decodeLiteral(line string, i int) (string, int) {
	var b []byte
	depth := 1
	for i < len(line) {
		c := line[i]
		switch c {
		case '\\':
			i++
			if i >= len(line) {
				return string(b), i
			}
			e := line[i]
			switch e {
			case 'n':
				b = append(b, '\n')
			case 'r':
				b = append(b, '\r')
			case 't':
				b = append(b, '\t')
			case 'b':
				b = append(b, '\b')
			case 'f':
				b = append(b, '\f')
			case '(', ')', '\\':
				b = append(b, e)
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && i+1 < len(line); k++ {
						n := line[i+1]
						if n < '0' || n > '7' {
							break
						}
						val = val*8 + int(n-'0')
						i++
					}
					b = append(b, byte(val))
				} else {
					b = append(b, e)
				}
			}
			i++
		case '(':
			depth++
			b = append(b, c)
			i++
		case ')':
			depth--
			if depth == 0 {
				return string(b), i + 1
			}
			b = append(b, c)
			i++
		default:
			b = append(b, c)
			i++
		}
	}
	return string(b), i
}

// decodeHex decodes a hex string starting just past '<' and returns the index
// just past '>'. An odd final digit is padded with zero per the PDF rules.
func decodeHex(line string, i int) (string, int) {
	var digits []byte
	for i < len(line) && line[i] != '>' {
		c := line[i]
		if isHexDigit(c) {
			digits = append(digits, c)
		}
		i++
	}
	if i < len(line) {
		i++ // consume '>'
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	b := make([]byte, 0, len(digits)/2)
	for k := 0; k+1 < len(digits); k += 2 {
		b = append(b, hexVal(digits[k])<<4|hexVal(digits[k+1]))
	}
	return string(b), i
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// consumeDict skips an inline dictionary << ... >>, handling nesting, and
// returns it verbatim.
func consumeDict(line string, i int) (string, int) {
	start := i
	depth := 0
	for i < len(line) {
		if i+1 < len(line) {
			switch line[i : i+2] {
			case "<<":
				depth++
				i += 2
				continue
			case ">>":
				depth--
				i += 2
				if depth == 0 {
					return line[start:i], i
				}
				continue
			}
		}
		i++
	}
	return line[start:], i
}
