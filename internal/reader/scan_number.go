package reader

import (
	"sweet/internal/diag"
	"sweet/internal/token"
)

// scanNumber reads 0, 123, 0b1, 0o7, 0xff, 1.5, .5, 1e-3 and 1_000. Malformed
// forms are reported and returned as Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	bad := func(msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Value: lx.text(sp)}
	}

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
		return lx.scanExponent(start, bad)
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		var digit func(byte) bool
		switch lx.cursor.Peek() {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Bump()
			if !digit(lx.cursor.Peek()) {
				return bad("expected digits after base prefix")
			}
			lx.eatDigits(digit)
			return lx.endNumber(start, bad)
		}
	}

	lx.eatDigits(isDec)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	}
	return lx.scanExponent(start, bad)
}

func (lx *Lexer) scanExponent(start Mark, bad func(string) token.Token) token.Token {
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return bad("expected digit after exponent")
		}
		lx.eatDigits(isDec)
	}
	return lx.endNumber(start, bad)
}

// endNumber rejects an identifier glued to the literal, as in 3in.
func (lx *Lexer) endNumber(start Mark, bad func(string) token.Token) token.Token {
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return bad("identifier directly after number")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Value: lx.text(sp)}
}

func (lx *Lexer) eatDigits(digit func(byte) bool) {
	for b := lx.cursor.Peek(); digit(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}
