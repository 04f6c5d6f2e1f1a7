package reader

import (
	"sweet/internal/source"
	"sweet/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead
	prev   token.Token  // last significant token, for regex detection
	// quoteDepth counts open #`...` groups; inside one a backquote closes
	// the group instead of starting a template.
	quoteDepth int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. After EOS it keeps returning EOS.
// Template literals are not scanned here; Read handles them.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return lx.finish(token.Token{
			Kind: token.EOS,
			Span: lx.emptySpan(),
		})
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString()

	case ch == '/' && lx.regexAllowed():
		tok = lx.scanRegExp()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	return lx.finish(tok)
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// finish attaches the start location and remembers tok for regex detection.
func (lx *Lexer) finish(tok token.Token) token.Token {
	pos := lx.file.Position(tok.Span.Start)
	tok.Start = &pos
	if tok.Kind != token.Invalid {
		lx.prev = tok
	}
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// regexAllowed reports whether a '/' at this point starts a regular
// expression rather than a division. It is the usual previous-token
// heuristic: a value on the left means division.
func (lx *Lexer) regexAllowed() bool {
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && (b1 == '/' || b1 == '*') {
		return false
	}
	switch lx.prev.Kind {
	case token.Invalid:
		return true
	case token.Ident, token.Number, token.String, token.Template, token.RegExp,
		token.Null, token.True, token.False, token.RParen, token.RBrack, token.RBrace:
		return false
	case token.Keyword:
		switch lx.prev.Value {
		case "this", "super":
			return false
		}
		return true
	case token.Punctuator:
		return lx.prev.Value != "++" && lx.prev.Value != "--" && lx.prev.Value != "`"
	}
	return true
}
