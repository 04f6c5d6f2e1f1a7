package reader

import (
	"sweet/internal/diag"
	"sweet/internal/syntax"
	"sweet/internal/token"
)

// punctuators lists multi-byte punctuators longest first so that scanning is
// greedy.
var punctuators = []string{
	">>>=",
	"...", "===", "!==", "**=", "<<=", ">>=", ">>>",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "**",
}

const singlePunctuators = "{}()[];,<>+-*/%&|^!~?:=.@"

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func() token.Token {
		sp := lx.cursor.SpanFrom(start)
		text := lx.text(sp)
		return token.Token{Kind: token.PunctuatorKind(text), Span: sp, Value: text}
	}

	if lx.cursor.HasPrefix(syntax.SyntaxTemplateMarker) {
		lx.cursor.Advance(len(syntax.SyntaxTemplateMarker))
		return emit()
	}
	if lx.quoteDepth > 0 && lx.cursor.Peek() == '`' {
		lx.cursor.Bump()
		return emit()
	}
	for _, p := range punctuators {
		if lx.cursor.HasPrefix(p) {
			lx.cursor.Advance(len(p))
			return emit()
		}
	}

	ch := lx.cursor.Peek()
	for i := range len(singlePunctuators) {
		if singlePunctuators[i] == ch {
			lx.cursor.Bump()
			return emit()
		}
	}

	if ch >= utf8RuneSelf {
		lx.bumpRune()
	} else {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Value: lx.text(sp)}
}

// scanRegExp reads /body/flags. A newline or EOF before the closing slash is
// reported.
func (lx *Lexer) scanRegExp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '/'
	inClass := false
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedRegExp, sp, "unterminated regular expression")
			return token.Token{Kind: token.Invalid, Span: sp, Value: lx.text(sp)}
		}
		b := lx.cursor.Bump()
		switch {
		case b == '\\':
			if lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			for isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.RegExp, Span: sp, Value: lx.text(sp)}
		}
	}
}
