package reader

import (
	"sweet/internal/diag"
)

// skipTrivia skips whitespace, line comments and block comments. An
// unterminated block comment is reported and runs to EOF.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f':
			lx.cursor.Bump()
		case b == '/' && lx.skipComment():
		case b >= utf8RuneSelf:
			r, _ := lx.peekRune()
			if !isSpaceRune(r) {
				return
			}
			lx.bumpRune()
		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true
	case '*':
		start := lx.cursor.Mark()
		lx.cursor.Advance(2)
		for !lx.cursor.EOF() {
			if lx.cursor.HasPrefix("*/") {
				lx.cursor.Advance(2)
				return true
			}
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		return true
	}
	return false
}
