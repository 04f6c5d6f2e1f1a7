package reader

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sweet/internal/source"
	"sweet/internal/token"
)

func lexAll(src string) []token.Token {
	fs := source.NewFileSet()
	lx := New(fs.Get(fs.AddVirtual("lex.js", []byte(src))), Options{})
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOS {
			return out
		}
		out = append(out, tok)
	}
}

func TestLexerPunctuatorsAreGreedy(t *testing.T) {
	var got []string
	for _, tok := range lexAll("a >>>= b ... c?.d === e => f ** g") {
		if tok.Kind == token.Punctuator {
			got = append(got, tok.Value)
		}
	}
	want := []string{">>>=", "...", "?.", "===", "=>", "**"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("punctuators (-want +got):\n%s", diff)
	}
}

func TestLexerLocations(t *testing.T) {
	toks := lexAll("a\n  bb")
	if len(toks) != 2 {
		t.Fatalf("tokens = %v", toks)
	}
	if *toks[1].Start != (source.LineCol{Line: 2, Col: 3}) {
		t.Errorf("start = %+v", *toks[1].Start)
	}
	if toks[1].Span.Start != 4 || toks[1].Span.End != 6 {
		t.Errorf("span = %v", toks[1].Span)
	}
}

func TestLexerPeek(t *testing.T) {
	fs := source.NewFileSet()
	lx := New(fs.Get(fs.AddVirtual("peek.js", []byte("x y"))), Options{})
	if p := lx.Peek(); p.Value != "x" {
		t.Fatalf("Peek = %q", p.Value)
	}
	if n := lx.Next(); n.Value != "x" {
		t.Fatalf("Next after Peek = %q", n.Value)
	}
	if n := lx.Next(); n.Value != "y" {
		t.Fatalf("second Next = %q", n.Value)
	}
	for range 2 {
		if lx.Next().Kind != token.EOS {
			t.Fatalf("EOS must repeat")
		}
	}
}

func TestLexerDelimiterKinds(t *testing.T) {
	var kinds []token.Kind
	for _, tok := range lexAll("([{}])") {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.LParen, token.LBrack, token.LBrace, token.RBrace, token.RBrack, token.RParen}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
}
