package reader

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"sweet/internal/diag"
	"sweet/internal/source"
	"sweet/internal/token"
)

// scanString reads a single- or double-quoted literal. Value keeps the raw
// text; Str holds the decoded content.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			raw := lx.text(sp)
			return token.Token{Kind: token.String, Span: sp, Value: raw, Str: lx.decodeString(raw[1:len(raw)-1], sp)}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Value: lx.text(sp)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Value: lx.text(sp)}
}

var simpleEscapes = map[byte]string{
	'n': "\n", 't': "\t", 'r': "\r", 'b': "\b", 'f': "\f", 'v': "\v", '0': "\x00",
}

// decodeString resolves escape sequences in body. Bad escapes are reported
// against sp and kept verbatim.
func (lx *Lexer) decodeString(body string, sp source.Span) string {
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		e := body[i]
		if s, ok := simpleEscapes[e]; ok {
			sb.WriteString(s)
			continue
		}
		switch e {
		case '\n':
			// line continuation
		case 'x':
			if r, n, ok := parseHexRune(body[i+1:], 2); ok {
				sb.WriteRune(r)
				i += n
				continue
			}
			lx.errLex(diag.LexBadEscape, sp, `invalid \x escape`)
			sb.WriteString(`\x`)
		case 'u':
			rest := body[i+1:]
			if strings.HasPrefix(rest, "{") {
				if end := strings.IndexByte(rest, '}'); end > 1 {
					if r, _, ok := parseHexRune(rest[1:end], end-1); ok && utf8.ValidRune(r) {
						sb.WriteRune(r)
						i += end + 1
						continue
					}
				}
			} else if r, n, ok := parseHexRune(rest, 4); ok {
				sb.WriteRune(r)
				i += n
				continue
			}
			lx.errLex(diag.LexBadEscape, sp, `invalid \u escape`)
			sb.WriteString(`\u`)
		default:
			sb.WriteByte(e)
		}
	}
	return sb.String()
}

// parseHexRune parses exactly n hex digits at the start of s.
func parseHexRune(s string, n int) (rune, int, bool) {
	if n == 0 || len(s) < n || n > 6 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return rune(v), n, true
}
