package reader

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sweet/internal/diag"
	"sweet/internal/source"
	"sweet/internal/syntax"
)

func read(t *testing.T, src string) (Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(32)
	res := ReadString(source.NewFileSet(), "test.js", src, Options{Reporter: diag.NewBagReporter(bag)})
	return res, bag
}

func texts(items []*syntax.Syntax) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestReadGroups(t *testing.T) {
	res, bag := read(t, "foo(1, 'a') { [x] }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(res.Items) != 4 || !res.Items[3].IsEOF() {
		t.Fatalf("items = %q", texts(res.Items))
	}
	if !res.Items[0].IsIdentifier() || !res.Items[1].IsParens() || !res.Items[2].IsBraces() {
		t.Errorf("kinds wrong: %q", texts(res.Items))
	}
	inner, err := res.Items[1].Inner()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"1", ",", "'a"}, texts(inner)); diff != "" {
		t.Errorf("parens inner (-want +got):\n%s", diff)
	}
	braces, _ := res.Items[2].Inner()
	if len(braces) != 1 || !braces[0].IsBrackets() {
		t.Errorf("nested group lost: %q", texts(braces))
	}
	if res.Tokens != 11 {
		t.Errorf("Tokens = %d", res.Tokens)
	}
}

func TestReadSharesBindingMap(t *testing.T) {
	res, _ := read(t, "a (b) `t${c}`")
	for _, top := range res.Items {
		top.Walk(func(s *syntax.Syntax) bool {
			if s.Bindings() != res.Bindings {
				t.Errorf("%s has its own binding map", s)
			}
			if s.ScopeMap().Len() != 0 {
				t.Errorf("%s has scopes", s)
			}
			return true
		})
	}
}

func TestReadDelimiterErrors(t *testing.T) {
	tests := []struct {
		src  string
		want []diag.Code
	}{
		{"(a", []diag.Code{diag.SynUnclosedDelimiter}},
		{"a)", []diag.Code{diag.SynUnmatchedCloser}},
		{"(a]", []diag.Code{diag.SynMismatchedDelimiter, diag.SynUnclosedDelimiter}},
	}
	for _, tt := range tests {
		_, bag := read(t, tt.src)
		if diff := cmp.Diff(tt.want, codes(bag)); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tt.src, diff)
		}
	}
	res, _ := read(t, "(a")
	inner, err := res.Items[0].Inner()
	if err != nil || len(inner) != 1 {
		t.Fatalf("recovered group inner = %v, %v", inner, err)
	}
}

func TestReadRegExpVersusDivision(t *testing.T) {
	tests := []struct {
		src   string
		index int
		regex bool
	}{
		{"a / b", 1, false},
		{"x = /ab+c/g", 2, true},
		{"(1) / 2", 1, false},
		{"return /x/", 1, true},
		{"f(/[/]/)", -1, true},
	}
	for _, tt := range tests {
		res, bag := read(t, tt.src)
		if bag.Len() != 0 {
			t.Errorf("%q: diagnostics %v", tt.src, bag.Items())
			continue
		}
		node := res.Items[1]
		if tt.index >= 0 {
			node = res.Items[tt.index]
		} else {
			inner, _ := node.Inner()
			node = inner[0]
		}
		if got := node.IsRegularExpression(); got != tt.regex {
			t.Errorf("%q: element %s regex = %v", tt.src, node, got)
		}
	}
}

func TestReadTemplate(t *testing.T) {
	res, bag := read(t, "`hi ${name + 1}!`")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	tmpl := res.Items[0]
	if !tmpl.IsTemplate() {
		t.Fatalf("not a template: %s", tmpl)
	}
	v, err := tmpl.Val()
	if err != nil || v != "hi "+syntax.TemplatePlaceholder+"!" {
		t.Errorf("Val() = %q, %v", v, err)
	}
	var names []string
	tmpl.Walk(func(s *syntax.Syntax) bool {
		if s.IsIdentifier() {
			names = append(names, s.String())
		}
		return true
	})
	if diff := cmp.Diff([]string{"name"}, names); diff != "" {
		t.Errorf("interpolation idents (-want +got):\n%s", diff)
	}

	_, bag = read(t, "`open")
	if diff := cmp.Diff([]diag.Code{diag.LexUnterminatedTemplate}, codes(bag)); diff != "" {
		t.Errorf("unterminated (-want +got):\n%s", diff)
	}
}

func TestReadSyntaxTemplate(t *testing.T) {
	res, bag := read(t, "#`foo + 1` / 2")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	q := res.Items[0]
	if !q.IsSyntaxTemplate() || !q.IsDelimiter() {
		t.Fatalf("not a syntax template: %s", q)
	}
	inner, _ := q.Inner()
	if diff := cmp.Diff([]string{"foo", "+", "1"}, texts(inner)); diff != "" {
		t.Errorf("inner (-want +got):\n%s", diff)
	}
	if !res.Items[1].IsPunctuator(syntax.Literal("/")) {
		t.Errorf("division after syntax template read as %s", res.Items[1])
	}
}

func TestReadLiterals(t *testing.T) {
	res, bag := read(t, `"a\nb\x41B\u{43}" 0x1F .5 1e3 if null true x`)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	it := res.Items
	if v, _ := it[0].Val(); v != "a\nbABC" {
		t.Errorf("decoded string = %q", v)
	}
	for i := 1; i <= 3; i++ {
		if !it[i].IsNumericLiteral() {
			t.Errorf("%s not a number", it[i])
		}
	}
	if !it[4].IsKeyword(syntax.Literal("if")) || !it[5].IsNullLiteral() || !it[6].IsBooleanLiteral() || !it[7].IsIdentifier() {
		t.Errorf("classification wrong: %q", texts(it))
	}
}

func TestReadLexErrors(t *testing.T) {
	tests := []struct {
		src  string
		want diag.Code
	}{
		{`"abc`, diag.LexUnterminatedString},
		{"'a\nb'", diag.LexUnterminatedString},
		{"0x", diag.LexBadNumber},
		{"1e+", diag.LexBadNumber},
		{"/* open", diag.LexUnterminatedBlockComment},
		{`"\xZZ"`, diag.LexBadEscape},
		{"a # b", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		_, bag := read(t, tt.src)
		got := codes(bag)
		if len(got) == 0 || got[0] != tt.want {
			t.Errorf("%q: codes = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestReadCommentsAndLines(t *testing.T) {
	res, bag := read(t, "a // one\n/* two\n */ b")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if len(res.Items) != 3 {
		t.Fatalf("items = %q", texts(res.Items))
	}
	if n, _ := res.Items[1].LineNumber(); n != 3 {
		t.Errorf("b on line %d", n)
	}
}

func TestReadNormalizesIdentifiers(t *testing.T) {
	res, _ := read(t, "café café")
	a, _ := res.Items[0].Val()
	b, _ := res.Items[1].Val()
	if a != b {
		t.Fatalf("%q and %q differ after normalisation", a, b)
	}
}
