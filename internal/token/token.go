package token

import (
	"sweet/internal/source"
)

// Token is a single lexical unit with its location.
type Token struct {
	Kind  Kind
	Value string // raw text
	Str   string // decoded content, String tokens only
	Span  source.Span
	// Start is the start location. Tokens built outside the reader may have
	// none.
	Start *source.LineCol
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Null, True, False, Number, String, Template, RegExp:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is in the keyword class.
func (t Token) IsKeyword() bool { return t.Kind.Class() == ClassKeyword }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPunctuator reports whether the token is in the punctuator class.
func (t Token) IsPunctuator() bool { return t.Kind.Class() == ClassPunctuator }

// WithLine returns a copy of t whose start location is on line. The copy
// owns a fresh location record.
func (t Token) WithLine(line uint32) (Token, bool) {
	if t.Start == nil {
		return t, false
	}
	loc := *t.Start
	loc.Line = line
	t.Start = &loc
	return t, true
}
