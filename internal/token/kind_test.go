package token_test

import (
	"testing"

	"sweet/internal/source"
	"sweet/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.Null, token.True, token.False, token.Number,
		token.String, token.Template, token.RegExp,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.Keyword, token.Punctuator, token.LParen, token.EOS}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestKeywordClass(t *testing.T) {
	for _, k := range []token.Kind{token.Keyword, token.Null, token.True, token.False} {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword-class", k)
		}
	}
	if tok(token.Ident).IsKeyword() {
		t.Fatalf("Ident must not be keyword-class")
	}
}

func TestPunctuatorClass(t *testing.T) {
	for _, k := range []token.Kind{token.Punctuator, token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBrack, token.RBrack} {
		if !tok(k).IsPunctuator() {
			t.Fatalf("%v should be punctuator-class", k)
		}
	}
}

func TestDelimiterPairs(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.LParen: token.RParen,
		token.LBrace: token.RBrace,
		token.LBrack: token.RBrack,
	}
	for open, closer := range pairs {
		if !open.Opening() || !closer.Closing() {
			t.Errorf("%v/%v not recognised as delimiter pair", open, closer)
		}
		if open.Closer() != closer {
			t.Errorf("%v.Closer() = %v, want %v", open, open.Closer(), closer)
		}
	}
	if token.Punctuator.Closer() != token.Invalid {
		t.Errorf("plain punctuator has no closer")
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{"var": token.Keyword, "null": token.Null, "true": token.True, "false": token.False}
	for text, want := range cases {
		got, ok := token.LookupKeyword(text)
		if !ok || got != want {
			t.Errorf("LookupKeyword(%q) = %v,%v; want %v", text, got, ok, want)
		}
	}
	if _, ok := token.LookupKeyword("Var"); ok {
		t.Errorf("keywords are case-sensitive")
	}
}

func TestWithLineCopiesLocation(t *testing.T) {
	orig := token.Token{Kind: token.Ident, Value: "x", Start: &source.LineCol{Line: 3, Col: 7}}
	moved, ok := orig.WithLine(10)
	if !ok {
		t.Fatalf("WithLine reported missing location")
	}
	if moved.Start.Line != 10 || moved.Start.Col != 7 {
		t.Errorf("moved location = %+v", *moved.Start)
	}
	if orig.Start.Line != 3 {
		t.Errorf("original location mutated: %+v", *orig.Start)
	}
	if _, ok := tok(token.Ident).WithLine(1); ok {
		t.Errorf("token without location must report false")
	}
}
