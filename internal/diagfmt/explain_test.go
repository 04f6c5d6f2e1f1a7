package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"sweet/internal/binding"
	"sweet/internal/scope"
	"sweet/internal/syntax"
)

func TestExplainMarksWinner(t *testing.T) {
	bm := binding.NewMap()
	outer, inner, other := scope.New("outer"), scope.New("inner"), scope.New("other")
	x := syntax.FromIdentifier("x", nil).
		AddScope(outer, bm, 0, syntax.AddScopeOptions{}).
		AddScope(inner, bm, 0, syntax.AddScopeOptions{})
	bm.Add("x", binding.Record{Scopes: scope.NewSet(outer), Binding: binding.Gensym("x")})
	bm.Add("x", binding.Record{Scopes: scope.NewSet(outer, inner), Binding: binding.Gensym("x")})
	bm.Add("x", binding.Record{Scopes: scope.NewSet(other), Binding: binding.Gensym("x")})

	r, err := x.Explain(0)
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := x.Resolve(0)
	if err != nil {
		t.Fatal(err)
	}
	all, _ := bm.Get("x")

	var buf bytes.Buffer
	Explain(&buf, r, all, resolved, nil, ExplainOpts{Location: "a.js:1:1"})
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("want 7 lines, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "x at phase 0 (a.js:1:1)") {
		t.Errorf("title = %q", lines[0])
	}
	for i, status := range []string{"candidate", "winner", "not a subset"} {
		if !strings.HasSuffix(lines[3+i], status) {
			t.Errorf("row %d = %q, want status %q", i+1, lines[3+i], status)
		}
	}
	if want := "resolves to " + resolved; lines[6] != want {
		t.Errorf("last line = %q, want %q", lines[6], want)
	}
}

func TestExplainAmbiguous(t *testing.T) {
	bm := binding.NewMap()
	a := scope.New("a")
	v := syntax.FromIdentifier("v", nil).AddScope(a, bm, 0, syntax.AddScopeOptions{})
	bm.Add("v", binding.Record{Scopes: scope.NewSet(a), Binding: binding.Gensym("v")})
	bm.Add("v", binding.Record{Scopes: scope.NewSet(a), Binding: binding.Gensym("v")})

	r, err := v.Explain(0)
	if err == nil {
		t.Fatal("expected ambiguity")
	}
	all, _ := bm.Get("v")
	var buf bytes.Buffer
	Explain(&buf, r, all, "", err, ExplainOpts{})
	out := buf.String()
	if strings.Count(out, "candidate") != 2 || !strings.Contains(out, "error: scope set") {
		t.Errorf("output:\n%s", out)
	}
}

func TestExplainUnbound(t *testing.T) {
	r, err := syntax.FromIdentifier("free", nil).Explain(0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	Explain(&buf, r, nil, "free", nil, ExplainOpts{})
	out := buf.String()
	if !strings.Contains(out, "no bindings registered") || !strings.Contains(out, "unbound: resolves to free") {
		t.Errorf("output:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"日本語テキスト", 7, "日本..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
