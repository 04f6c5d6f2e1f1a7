package syntax

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sweet/internal/binding"
	"sweet/internal/scope"
	"sweet/internal/source"
	"sweet/internal/token"
)

func located(kind token.Kind, value string, line uint32) *Syntax {
	return OfToken(token.Token{Kind: kind, Value: value, Start: &source.LineCol{Line: line, Col: 1}}, nil)
}

func TestCreateRoundTrip(t *testing.T) {
	tests := []struct {
		kind  Kind
		value string
	}{
		{KindIdentifier, "foo"},
		{KindIdentifier, "$bar_1"},
		{KindNumber, "42"},
		{KindNumber, "3.5e10"},
		{KindString, "hello world"},
		{KindString, `with "quotes"`},
		{KindPunctuator, "+"},
		{KindPunctuator, ">>>="},
		{KindKeyword, "if"},
		{KindKeyword, "return"},
		{KindRegularExpression, "/ab+c/g"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.value, func(t *testing.T) {
			stx, err := Create(tt.kind, tt.value, nil)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			got, err := stx.Val()
			if err != nil {
				t.Fatalf("Val: %v", err)
			}
			if got != tt.value {
				t.Errorf("Val() = %q, want %q", got, tt.value)
			}
			if ok, _ := stx.Match(tt.kind); !ok {
				t.Errorf("created syntax does not match its own kind %s", tt.kind)
			}
		})
	}
}

func TestCreateNumberFromFloat(t *testing.T) {
	stx := FromNumber(2.5, nil)
	if v, _ := stx.Val(); v != "2.5" {
		t.Fatalf("Val() = %q", v)
	}
}

func TestCreateErrors(t *testing.T) {
	if _, err := Create(KindBoolean, "true", nil); !errors.Is(err, ErrUnconstructibleKind) {
		t.Errorf("boolean: got %v", err)
	}
	if _, err := Create(KindTemplate, "x", nil); !errors.Is(err, ErrUnconstructibleKind) {
		t.Errorf("template: got %v", err)
	}
	if _, err := Create(Kind(200), "x", nil); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("unknown kind: got %v", err)
	}
	if _, err := ParseKind("nope"); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("ParseKind: got %v", err)
	}
	if _, err := Create(KindIdentifier, 12, nil); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("wrong value type: got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for k := KindNull; k < kindCount; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
}

func TestDelimiterSymmetry(t *testing.T) {
	children := []*Syntax{FromIdentifier("a", nil), FromPunctuator(",", nil), FromNumber(1, nil)}
	builders := map[string]func([]*Syntax, *Syntax) *Syntax{
		"braces":   FromBraces,
		"brackets": FromBrackets,
		"parens":   FromParens,
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			group := build(children, nil)
			inner, err := group.Inner()
			if err != nil {
				t.Fatalf("Inner: %v", err)
			}
			if len(inner) != len(children) {
				t.Fatalf("Inner len = %d, want %d", len(inner), len(children))
			}
			for i := range children {
				if inner[i] != children[i] {
					t.Errorf("child %d differs", i)
				}
			}
			if !group.IsDelimiter() {
				t.Errorf("group is not a delimiter")
			}
			if ok, _ := group.Match(KindDelimiter); !ok {
				t.Errorf("Match(delimiter) = false")
			}
		})
	}
	if !FromParens(nil, nil).IsParens() || FromParens(nil, nil).IsBraces() {
		t.Errorf("parens subtype mismatch")
	}
}

func TestGroupAccessorsFail(t *testing.T) {
	group := FromBraces([]*Syntax{FromIdentifier("x", nil)}, nil)
	if _, err := group.Val(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Val on group: %v", err)
	}
	if _, err := FromIdentifier("x", nil).Inner(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Inner on leaf: %v", err)
	}
}

func TestCreateInheritsContext(t *testing.T) {
	bm := binding.NewMap()
	sc := scope.New("ctx")
	ctx := FromIdentifier("ctx", nil).AddScope(sc, bm, 0, AddScopeOptions{})
	stx := FromIdentifier("y", ctx)
	if stx.Bindings() != bm {
		t.Errorf("binding map not inherited")
	}
	if !stx.Scopes(0).Equal(scope.NewSet(sc)) {
		t.Errorf("scopes = %v", stx.Scopes(0))
	}
	fresh := FromIdentifier("z", nil)
	if fresh.Bindings() == nil || fresh.Bindings() == bm || fresh.ScopeMap().Len() != 0 {
		t.Errorf("fresh syntax must have empty context")
	}
}

func TestMatchValues(t *testing.T) {
	id := FromIdentifier("foo", nil)
	if !id.IsIdentifier() || !id.IsIdentifier(Literal("foo")) {
		t.Errorf("literal match failed")
	}
	if id.IsIdentifier(Literal("bar")) {
		t.Errorf("literal mismatch matched")
	}
	if !id.IsIdentifier(Literal("bar"), regexp.MustCompile(`^f`)) {
		t.Errorf("pattern match failed")
	}
	if id.IsKeyword() || id.IsPunctuator() {
		t.Errorf("identifier matched another class")
	}
	if !FromKeyword("if", nil).IsKeyword(Literal("if")) {
		t.Errorf("keyword match failed")
	}
	if !FromPunctuator("+=", nil).IsAssign() || FromPunctuator("+", nil).IsAssign() {
		t.Errorf("assign match wrong")
	}
	if !FromNull(nil).IsNullLiteral() || !FromNull(nil).IsKeyword() {
		t.Errorf("null is a keyword-class literal")
	}
	if !FromString("s", nil).IsStringLiteral(Literal("s")) {
		t.Errorf("string matches by decoded value")
	}
	if _, err := id.Match(Kind(99)); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("unknown kind: %v", err)
	}
}

// The delimiter guard binds only to the true branch, so a group whose
// token kind is False still matches.
func TestBooleanMatchPrecedence(t *testing.T) {
	trueLeaf := OfToken(token.Token{Kind: token.True, Value: "true"}, nil)
	falseLeaf := OfToken(token.Token{Kind: token.False, Value: "false"}, nil)
	if !trueLeaf.IsBooleanLiteral() || !falseLeaf.IsBooleanLiteral() {
		t.Fatalf("boolean leaves must match")
	}
	trueGroup := Of(Token{Token: token.Token{Kind: token.True}, Group: []*Syntax{}}, nil)
	falseGroup := Of(Token{Token: token.Token{Kind: token.False}, Group: []*Syntax{}}, nil)
	if trueGroup.IsBooleanLiteral() {
		t.Errorf("group with True kind matched boolean")
	}
	if !falseGroup.IsBooleanLiteral() {
		t.Errorf("group with False kind no longer matches boolean")
	}
}

func TestSyntaxTemplateMatch(t *testing.T) {
	marker := FromPunctuator(SyntaxTemplateMarker, nil)
	group := Of(Token{Group: []*Syntax{marker, FromIdentifier("x", nil), FromPunctuator("`", nil)}}, nil)
	if !group.IsSyntaxTemplate() {
		t.Errorf("marker group not recognized")
	}
	if FromParens(nil, nil).IsSyntaxTemplate() {
		t.Errorf("parens recognized as syntax template")
	}
}

func TestTemplateValAndString(t *testing.T) {
	interp := FromBraces([]*Syntax{FromIdentifier("name", nil)}, nil)
	tmpl := Of(Token{
		Token: token.Token{Kind: token.Template, Value: "`hi ${name}!`"},
		Items: []TemplateElement{{Text: "hi "}, {Interp: interp}, {Text: "!"}},
	}, nil)
	got, err := tmpl.Val()
	if err != nil {
		t.Fatalf("Val: %v", err)
	}
	if want := "hi " + TemplatePlaceholder + "!"; got != want || tmpl.String() != want {
		t.Errorf("Val() = %q, String() = %q, want %q", got, tmpl.String(), want)
	}
}

func TestString(t *testing.T) {
	group := FromParens([]*Syntax{FromIdentifier("a", nil), FromString("b", nil)}, nil)
	if got, want := group.String(), "( a 'b )"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLineNumber(t *testing.T) {
	leaf := located(token.Ident, "x", 3)
	group := FromBraces([]*Syntax{leaf}, nil)
	if _, err := group.LineNumber(); !errors.Is(err, ErrMissingLocation) {
		t.Errorf("created delimiters carry no location, got %v", err)
	}
	moved, err := leaf.SetLineNumber(9)
	if err != nil {
		t.Fatalf("SetLineNumber: %v", err)
	}
	if n, _ := moved.LineNumber(); n != 9 {
		t.Errorf("moved line = %d", n)
	}
	if n, _ := leaf.LineNumber(); n != 3 {
		t.Errorf("original mutated: line = %d", n)
	}
	if _, err := FromIdentifier("x", nil).SetLineNumber(1); !errors.Is(err, ErrMissingLocation) {
		t.Errorf("SetLineNumber without location: %v", err)
	}

	lg := Of(Token{Group: []*Syntax{located(token.LParen, "(", 4), leaf, located(token.RParen, ")", 5)}}, nil)
	if n, err := lg.LineNumber(); err != nil || n != 4 {
		t.Errorf("group line = %d, %v", n, err)
	}
	mg, err := lg.SetLineNumber(7)
	if err != nil {
		t.Fatalf("group SetLineNumber: %v", err)
	}
	for _, child := range mg.Children() {
		if n, _ := child.LineNumber(); n != 7 {
			t.Errorf("child line = %d", n)
		}
	}
}

func TestSetLineNumberKeepsContext(t *testing.T) {
	bm := binding.NewMap()
	sc := scope.New("line")
	leaf := located(token.Ident, "x", 1).AddScope(sc, bm, 0, AddScopeOptions{})
	moved, err := leaf.SetLineNumber(2)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Bindings() != bm || !moved.Scopes(0).Equal(leaf.Scopes(0)) {
		t.Errorf("context lost")
	}
}

func TestWalkVisitsTemplateInterp(t *testing.T) {
	interp := FromBraces([]*Syntax{FromIdentifier("n", nil)}, nil)
	tmpl := Of(Token{
		Token: token.Token{Kind: token.Template},
		Items: []TemplateElement{{Text: "a"}, {Interp: interp}},
	}, nil)
	root := FromParens([]*Syntax{tmpl}, nil)
	var idents []string
	root.Walk(func(s *Syntax) bool {
		if s.IsIdentifier() {
			v, _ := s.Val()
			idents = append(idents, v)
		}
		return true
	})
	if diff := cmp.Diff([]string{"n"}, idents); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestStringLiteralUsesJSQuoting(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`say "hi"`, `"say \"hi\""`},
		{"tab\there\nnl", `"tab\there\nnl"`},
		{"bell\a", `"bell\x07"`},
		{"del\x7f", `"del\x7f"`},
		{"emoji 😀", `"emoji 😀"`},
		{"sep \u2028", `"sep \u2028"`},
		{"bad\xff", "\"bad\ufffd\""},
	}
	for _, tt := range tests {
		s := FromString(tt.in, nil)
		if got := s.Token().Value; got != tt.want {
			t.Errorf("FromString(%q) value = %s, want %s", tt.in, got, tt.want)
		}
	}
}
