package syntax

import (
	"fmt"
	"slices"
	"strings"

	"sweet/internal/binding"
	"sweet/internal/scope"
	"sweet/internal/source"
	"sweet/internal/token"
)

// TemplateElement is one piece of a template literal: either static text or
// an interpolation group.
type TemplateElement struct {
	Text   string  // raw static text
	Interp *Syntax // delimiter group for ${...}; nil for static text
}

// Token is the payload of a Syntax: a lexical token, or a delimiter group
// when Group is non-nil.
type Token struct {
	token.Token
	Group []*Syntax // opening delimiter, children, closing delimiter
	Items []TemplateElement
}

// Syntax is an immutable token with hygiene context.
type Syntax struct {
	tok      Token
	bindings *binding.Map
	scopes   scope.Map
}

// Of wraps tok, copying the binding map and scope sets of ctx. A nil ctx
// yields empty scope sets and a fresh binding map.
func Of(tok Token, ctx *Syntax) *Syntax {
	s := &Syntax{tok: tok}
	if ctx != nil && ctx.bindings != nil {
		s.bindings = ctx.bindings
	} else {
		s.bindings = binding.NewMap()
	}
	if ctx != nil {
		s.scopes = ctx.scopes
	}
	return s
}

// OfToken wraps a lexical token.
func OfToken(t token.Token, ctx *Syntax) *Syntax {
	return Of(Token{Token: t}, ctx)
}

func FromNull(ctx *Syntax) *Syntax { return mustCreate(KindNull, nil, ctx) }

func FromNumber(value float64, ctx *Syntax) *Syntax { return mustCreate(KindNumber, value, ctx) }

func FromString(value string, ctx *Syntax) *Syntax { return mustCreate(KindString, value, ctx) }

func FromPunctuator(value string, ctx *Syntax) *Syntax {
	return mustCreate(KindPunctuator, value, ctx)
}

func FromKeyword(value string, ctx *Syntax) *Syntax { return mustCreate(KindKeyword, value, ctx) }

func FromIdentifier(value string, ctx *Syntax) *Syntax {
	return mustCreate(KindIdentifier, value, ctx)
}

func FromRegularExpression(value string, ctx *Syntax) *Syntax {
	return mustCreate(KindRegularExpression, value, ctx)
}

// FromBraces wraps inner in "{" "}".
func FromBraces(inner []*Syntax, ctx *Syntax) *Syntax { return mustCreate(KindBraces, inner, ctx) }

// FromBrackets wraps inner in "[" "]".
func FromBrackets(inner []*Syntax, ctx *Syntax) *Syntax {
	return mustCreate(KindBrackets, inner, ctx)
}

// FromParens wraps inner in "(" ")".
func FromParens(inner []*Syntax, ctx *Syntax) *Syntax { return mustCreate(KindParens, inner, ctx) }

func mustCreate(kind Kind, value any, ctx *Syntax) *Syntax {
	s, err := Create(kind, value, ctx)
	if err != nil {
		panic(fmt.Errorf("syntax.%s: %w", kind, err))
	}
	return s
}

// Token returns the payload. Slices are copies.
func (s *Syntax) Token() Token {
	t := s.tok
	if t.Group != nil {
		t.Group = slices.Clone(t.Group)
	}
	t.Items = slices.Clone(t.Items)
	return t
}

// Bindings returns the binding map shared by this expansion context.
func (s *Syntax) Bindings() *binding.Map { return s.bindings }

// Scopes returns the scope set recorded for phase.
func (s *Syntax) Scopes(phase scope.Phase) scope.Set { return s.scopes.Get(phase) }

// ScopeMap returns every recorded scope set.
func (s *Syntax) ScopeMap() scope.Map { return s.scopes }

// Children returns every element of a delimiter group, delimiters included,
// or nil for other syntax.
func (s *Syntax) Children() []*Syntax {
	if !isDelimiter(s.tok) {
		return nil
	}
	return slices.Clone(s.tok.Group)
}

// Span returns the source range covered by the syntax.
func (s *Syntax) Span() source.Span {
	if !isDelimiter(s.tok) {
		return s.tok.Span
	}
	if len(s.tok.Group) == 0 {
		return source.Span{}
	}
	first := s.tok.Group[0].Span()
	return first.Cover(s.tok.Group[len(s.tok.Group)-1].Span())
}

// Matcher tests the value of a syntax. *regexp.Regexp satisfies it.
type Matcher interface {
	MatchString(s string) bool
}

// Literal matches by string equality.
type Literal string

func (l Literal) MatchString(s string) bool { return string(l) == s }

// Match reports whether s is of kind and, when values are given, whether
// Val matches any of them.
func (s *Syntax) Match(kind Kind, values ...Matcher) (bool, error) {
	ok, err := MatchToken(kind, s.tok)
	if err != nil || !ok || len(values) == 0 {
		return ok, err
	}
	v, err := s.Val()
	if err != nil {
		return false, err
	}
	for _, m := range values {
		if m.MatchString(v) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Syntax) is(kind Kind, values []Matcher) bool {
	ok, err := s.Match(kind, values...)
	return err == nil && ok
}

func (s *Syntax) IsIdentifier(value ...Matcher) bool { return s.is(KindIdentifier, value) }

func (s *Syntax) IsAssign(value ...Matcher) bool { return s.is(KindAssign, value) }

func (s *Syntax) IsBooleanLiteral(value ...Matcher) bool { return s.is(KindBoolean, value) }

func (s *Syntax) IsKeyword(value ...Matcher) bool { return s.is(KindKeyword, value) }

func (s *Syntax) IsNullLiteral(value ...Matcher) bool { return s.is(KindNull, value) }

func (s *Syntax) IsNumericLiteral(value ...Matcher) bool { return s.is(KindNumber, value) }

func (s *Syntax) IsPunctuator(value ...Matcher) bool { return s.is(KindPunctuator, value) }

func (s *Syntax) IsStringLiteral(value ...Matcher) bool { return s.is(KindString, value) }

func (s *Syntax) IsRegularExpression(value ...Matcher) bool {
	return s.is(KindRegularExpression, value)
}

func (s *Syntax) IsTemplate(value ...Matcher) bool { return s.is(KindTemplate, value) }

func (s *Syntax) IsDelimiter(value ...Matcher) bool { return s.is(KindDelimiter, value) }

func (s *Syntax) IsParens(value ...Matcher) bool { return s.is(KindParens, value) }

func (s *Syntax) IsBraces(value ...Matcher) bool { return s.is(KindBraces, value) }

func (s *Syntax) IsBrackets(value ...Matcher) bool { return s.is(KindBrackets, value) }

func (s *Syntax) IsSyntaxTemplate(value ...Matcher) bool { return s.is(KindSyntaxTemplate, value) }

func (s *Syntax) IsEOF(value ...Matcher) bool { return s.is(KindEOF, value) }

// TemplatePlaceholder stands for an interpolation in Val of a template.
const TemplatePlaceholder = "${...}"

// Val returns the literal value: decoded content for strings, the text with
// interpolations replaced by TemplatePlaceholder for templates, the raw
// value otherwise. Delimiter groups have no value.
func (s *Syntax) Val() (string, error) {
	switch {
	case isDelimiter(s.tok):
		return "", fmt.Errorf("%w: cannot get the value of a delimiter", ErrInvalidOperation)
	case s.IsStringLiteral():
		return s.tok.Str, nil
	case s.IsTemplate():
		var sb strings.Builder
		for _, it := range s.tok.Items {
			if it.Interp != nil && it.Interp.IsDelimiter() {
				sb.WriteString(TemplatePlaceholder)
				continue
			}
			sb.WriteString(it.Text)
		}
		return sb.String(), nil
	}
	return s.tok.Value, nil
}

// LineNumber returns the source line; a group reports its first element's.
func (s *Syntax) LineNumber() (uint32, error) {
	if isDelimiter(s.tok) {
		if len(s.tok.Group) == 0 {
			return 0, fmt.Errorf("%w: empty delimiter group", ErrMissingLocation)
		}
		return s.tok.Group[0].LineNumber()
	}
	if s.tok.Start == nil {
		return 0, fmt.Errorf("%w: %q", ErrMissingLocation, s.tok.Value)
	}
	return s.tok.Start.Line, nil
}

// SetLineNumber returns a copy of s placed on line. Groups move every child.
func (s *Syntax) SetLineNumber(line uint32) (*Syntax, error) {
	tok := s.tok
	if isDelimiter(tok) {
		group := make([]*Syntax, len(tok.Group))
		for i, child := range tok.Group {
			moved, err := child.SetLineNumber(line)
			if err != nil {
				return nil, err
			}
			group[i] = moved
		}
		tok.Group = group
	} else {
		moved, ok := tok.Token.WithLine(line)
		if !ok {
			return nil, fmt.Errorf("%w: all tokens must have line info, %q has none", ErrMissingLocation, tok.Value)
		}
		tok.Token = moved
	}
	return &Syntax{tok: tok, bindings: s.bindings, scopes: s.scopes}, nil
}

// Inner returns the elements strictly between the delimiters of a group.
func (s *Syntax) Inner() ([]*Syntax, error) {
	if !isDelimiter(s.tok) {
		return nil, fmt.Errorf("%w: can only get the inner of a delimiter", ErrInvalidOperation)
	}
	if len(s.tok.Group) < 2 {
		return []*Syntax{}, nil
	}
	return slices.Clone(s.tok.Group[1 : len(s.tok.Group)-1]), nil
}

func (s *Syntax) String() string {
	switch {
	case isDelimiter(s.tok):
		parts := make([]string, len(s.tok.Group))
		for i, child := range s.tok.Group {
			parts[i] = child.String()
		}
		return strings.Join(parts, " ")
	case s.IsStringLiteral():
		return "'" + s.tok.Str
	case s.IsTemplate():
		v, _ := s.Val()
		return v
	}
	return s.tok.Value
}
