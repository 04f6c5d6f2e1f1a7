package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"sweet/internal/token"
)

// Kind names a syntax category understood by Match and Create.
type Kind uint8

const (
	kindInvalid Kind = iota
	KindNull
	KindNumber
	KindString
	KindPunctuator
	KindKeyword
	KindIdentifier
	KindRegularExpression
	KindBraces
	KindBrackets
	KindParens
	KindAssign
	KindBoolean
	KindTemplate
	KindDelimiter
	KindSyntaxTemplate
	KindEOF
	kindCount
)

// SyntaxTemplateMarker opens a syntax template group.
const SyntaxTemplateMarker = "#`"

type kindInfo struct {
	name   string
	match  func(Token) bool
	create func(value any, ctx *Syntax) (*Syntax, error) // nil: not constructible
}

var kinds = [kindCount]kindInfo{
	KindNull: {
		name:  "null",
		match: func(t Token) bool { return !isDelimiter(t) && t.Kind == token.Null },
		create: func(_ any, ctx *Syntax) (*Syntax, error) {
			return OfToken(token.Token{Kind: token.Null, Value: "null"}, ctx), nil
		},
	},
	KindNumber: {
		name:   "number",
		match:  classMatcher(token.ClassNumericLiteral),
		create: createNumber,
	},
	KindString: {
		name:  "string",
		match: classMatcher(token.ClassStringLiteral),
		create: atomCreator(func(v string) token.Token {
			return token.Token{Kind: token.String, Value: quoteJS(v), Str: v}
		}),
	},
	KindPunctuator: {
		name:  "punctuator",
		match: classMatcher(token.ClassPunctuator),
		create: atomCreator(func(v string) token.Token {
			return token.Token{Kind: token.PunctuatorKind(v), Value: v}
		}),
	},
	KindKeyword: {
		name:  "keyword",
		match: classMatcher(token.ClassKeyword),
		create: atomCreator(func(v string) token.Token {
			return token.Token{Kind: token.Keyword, Value: v}
		}),
	},
	KindIdentifier: {
		name:  "identifier",
		match: classMatcher(token.ClassIdent),
		create: atomCreator(func(v string) token.Token {
			return token.Token{Kind: token.Ident, Value: v}
		}),
	},
	KindRegularExpression: {
		name:  "regularExpression",
		match: classMatcher(token.ClassRegularExpression),
		create: atomCreator(func(v string) token.Token {
			return token.Token{Kind: token.RegExp, Value: v}
		}),
	},
	KindBraces: {
		name:   "braces",
		match:  func(t Token) bool { return isDelimiter(t) && openingKind(t) == token.LBrace },
		create: groupCreator(token.LBrace),
	},
	KindBrackets: {
		name:   "brackets",
		match:  func(t Token) bool { return isDelimiter(t) && openingKind(t) == token.LBrack },
		create: groupCreator(token.LBrack),
	},
	KindParens: {
		name:   "parens",
		match:  func(t Token) bool { return isDelimiter(t) && openingKind(t) == token.LParen },
		create: groupCreator(token.LParen),
	},
	KindAssign: {
		name:  "assign",
		match: func(t Token) bool { return classMatcher(token.ClassPunctuator)(t) && assignOps[t.Value] },
	},
	KindBoolean: {
		name: "boolean",
		// The delimiter guard covers only the true branch. Kept as observed;
		// see TestBooleanMatchPrecedence.
		match: func(t Token) bool { return !isDelimiter(t) && t.Kind == token.True || t.Kind == token.False },
	},
	KindTemplate: {
		name:  "template",
		match: func(t Token) bool { return !isDelimiter(t) && t.Kind == token.Template },
	},
	KindDelimiter: {
		name:  "delimiter",
		match: isDelimiter,
	},
	KindSyntaxTemplate: {
		name: "syntaxTemplate",
		match: func(t Token) bool {
			if !isDelimiter(t) || len(t.Group) == 0 || isDelimiter(t.Group[0].tok) {
				return false
			}
			return t.Group[0].tok.Value == SyntaxTemplateMarker
		},
	},
	KindEOF: {
		name:  "eof",
		match: func(t Token) bool { return !isDelimiter(t) && t.Kind == token.EOS },
	},
}

var assignOps = map[string]bool{
	"=": true, "|=": true, "^=": true, "&=": true, "<<=": true, ">>=": true,
	">>>=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
}

func (k Kind) valid() bool { return k > kindInvalid && k < kindCount }

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kinds[k].name
}

// ParseKind returns the kind registered under name.
func ParseKind(name string) (Kind, error) {
	for k := KindNull; k < kindCount; k++ {
		if kinds[k].name == name {
			return k, nil
		}
	}
	return kindInvalid, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// Constructible reports whether Create supports k.
func (k Kind) Constructible() bool {
	return k.valid() && kinds[k].create != nil
}

// MatchToken reports whether tok belongs to kind.
func MatchToken(kind Kind, tok Token) (bool, error) {
	if !kind.valid() {
		return false, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	return kinds[kind].match(tok), nil
}

// Create builds a new Syntax of kind inheriting the hygiene context of ctx
// (nil for a fresh context). Atomic kinds take a string value carried
// through verbatim; number also accepts float64 and int; braces, brackets
// and parens take the []*Syntax to wrap.
func Create(kind Kind, value any, ctx *Syntax) (*Syntax, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	create := kinds[kind].create
	if create == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnconstructibleKind, kind)
	}
	return create(value, ctx)
}

func isDelimiter(t Token) bool { return t.Group != nil }

func openingKind(t Token) token.Kind {
	if len(t.Group) == 0 || isDelimiter(t.Group[0].tok) {
		return token.Invalid
	}
	return t.Group[0].tok.Kind
}

func classMatcher(class token.Class) func(Token) bool {
	return func(t Token) bool { return !isDelimiter(t) && t.Kind.Class() == class }
}

func atomCreator(build func(string) token.Token) func(any, *Syntax) (*Syntax, error) {
	return func(value any, ctx *Syntax) (*Syntax, error) {
		v, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string value, got %T", ErrInvalidOperation, value)
		}
		return OfToken(build(v), ctx), nil
	}
}

func createNumber(value any, ctx *Syntax) (*Syntax, error) {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		text = strconv.Itoa(v)
	default:
		return nil, fmt.Errorf("%w: expected number value, got %T", ErrInvalidOperation, value)
	}
	return OfToken(token.Token{Kind: token.Number, Value: text}, ctx), nil
}

var delimiterText = map[token.Kind]string{
	token.LParen: "(", token.RParen: ")",
	token.LBrace: "{", token.RBrace: "}",
	token.LBrack: "[", token.RBrack: "]",
}

func groupCreator(open token.Kind) func(any, *Syntax) (*Syntax, error) {
	closer := open.Closer()
	return func(value any, ctx *Syntax) (*Syntax, error) {
		inner, ok := value.([]*Syntax)
		if !ok {
			return nil, fmt.Errorf("%w: expected []*Syntax, got %T", ErrInvalidOperation, value)
		}
		group := make([]*Syntax, 0, len(inner)+2)
		group = append(group, OfToken(token.Token{Kind: open, Value: delimiterText[open]}, nil))
		group = append(group, inner...)
		group = append(group, OfToken(token.Token{Kind: closer, Value: delimiterText[closer]}, nil))
		return Of(Token{Group: group}, ctx), nil
	}
}

var jsEscapes = map[rune]string{
	'\\': `\\`, '"': `\"`, '\n': `\n`, '\r': `\r`, '\t': `\t`,
	'\b': `\b`, '\f': `\f`, '\v': `\v`,
	'\u2028': `\u2028`, '\u2029': `\u2029`,
}

// quoteJS renders v as a double-quoted JavaScript string literal. Other
// control characters become \xHH; invalid UTF-8 becomes U+FFFD.
func quoteJS(v string) string {
	var sb strings.Builder
	sb.Grow(len(v) + 2)
	sb.WriteByte('"')
	for _, r := range v {
		switch esc, ok := jsEscapes[r]; {
		case ok:
			sb.WriteString(esc)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
