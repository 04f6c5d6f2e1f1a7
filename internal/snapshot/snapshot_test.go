package snapshot

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"sweet/internal/binding"
	"sweet/internal/reader"
	"sweet/internal/scenario"
	"sweet/internal/scope"
	"sweet/internal/source"
	"sweet/internal/syntax"
)

const script = `
scopes = ["outside", "macro"]
[[step]]
op = "add"
scope = "outside"
[[step]]
op = "add"
scope = "macro"
range = [1, 2]
[[binding]]
name = "tmp"
scopes = ["outside"]
symbol = "user"
[[binding]]
name = "tmp"
scopes = ["outside", "macro"]
symbol = "intro"
[[binding]]
name = "f"
scopes = ["outside"]
alias = "tmp"
alias_scopes = ["outside", "macro"]
`

func expanded(t *testing.T, src string) scenario.Result {
	t.Helper()
	unit := reader.ReadString(source.NewFileSet(), "unit.js", src, reader.Options{})
	s, err := scenario.Parse([]byte(script), "script.toml")
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Apply(unit.Items, unit.Bindings)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

// symbolBases resolves every identifier and strips the numeric suffix.
func symbolBases(t *testing.T, items []*syntax.Syntax) []string {
	t.Helper()
	var out []string
	for _, it := range items {
		it.Walk(func(n *syntax.Syntax) bool {
			if !n.IsIdentifier() {
				return true
			}
			name, err := n.Resolve(0)
			if err != nil {
				t.Fatalf("resolve %s: %v", n, err)
			}
			if i := strings.LastIndexByte(name, '_'); i > 0 {
				name = name[:i]
			}
			out = append(out, name)
			return true
		})
	}
	return out
}

func texts(items []*syntax.Syntax) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

func TestRoundTripPreservesResolution(t *testing.T) {
	res := expanded(t, "tmp tmp (f, `a ${tmp}`)")
	bm := res.Items[0].Bindings()

	data, err := Encode("unit.js", res.Items, bm)
	if err != nil {
		t.Fatal(err)
	}
	u, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	if u.Source != "unit.js" {
		t.Errorf("Source = %q", u.Source)
	}
	if diff := cmp.Diff(texts(res.Items), texts(u.Items)); diff != "" {
		t.Errorf("texts (-want +got):\n%s", diff)
	}
	want := []string{"user", "intro", "intro", "user"}
	if diff := cmp.Diff(want, symbolBases(t, u.Items)); diff != "" {
		t.Errorf("resolution (-want +got):\n%s", diff)
	}
	if u.Bindings.Len() != bm.Len() {
		t.Errorf("bindings = %d, want %d", u.Bindings.Len(), bm.Len())
	}
}

func TestDecodeAllocatesFreshScopes(t *testing.T) {
	res := expanded(t, "tmp")
	data, err := Encode("", res.Items, res.Items[0].Bindings())
	if err != nil {
		t.Fatal(err)
	}
	u, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	orig, got := res.Items[0].Scopes(0), u.Items[0].Scopes(0)
	if got.Len() != orig.Len() {
		t.Fatalf("scopes = %v, want %d entries", got, orig.Len())
	}
	for i := range got.Len() {
		if got.At(i) == orig.At(i) {
			t.Errorf("scope %d reused: %v", i, got.At(i))
		}
		if scope.Global().Name(got.At(i)) != scope.Global().Name(orig.At(i)) {
			t.Errorf("scope %d renamed: %v vs %v", i, got.At(i), orig.At(i))
		}
	}

	recs, _ := u.Bindings.Get("tmp")
	origRecs, _ := res.Items[0].Bindings().Get("tmp")
	if recs[0].Binding == origRecs[0].Binding {
		t.Errorf("symbol reused: %v", recs[0].Binding)
	}
}

func TestRoundTripKeepsLocation(t *testing.T) {
	unit := reader.ReadString(source.NewFileSet(), "unit.js", "a\n  (b)", reader.Options{})
	data, err := Encode("", unit.Items, unit.Bindings)
	if err != nil {
		t.Fatal(err)
	}
	u, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	line, err := u.Items[1].LineNumber()
	if err != nil || line != 2 {
		t.Fatalf("LineNumber = %d, %v", line, err)
	}
	if u.Items[1].Span() != unit.Items[1].Span() {
		t.Errorf("Span = %v, want %v", u.Items[1].Span(), unit.Items[1].Span())
	}
}

type foreignTarget struct{}

func (foreignTarget) Resolve(scope.Phase) (string, error) { return "x", nil }

func TestEncodeRejectsForeignAlias(t *testing.T) {
	bm := binding.NewMap()
	bm.Add("x", binding.Record{Binding: binding.Gensym("x"), Alias: foreignTarget{}})
	if _, err := Encode("", nil, bm); !errors.Is(err, ErrAlias) {
		t.Fatalf("err = %v, want ErrAlias", err)
	}
}

func TestRestoreErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want error
	}{
		{"schema", Document{Schema: SchemaVersion + 1}, ErrSchema},
		{"missing scope", Document{Schema: SchemaVersion, Nodes: []Node{{Value: "x", Scopes: []PhaseScopes{{IDs: []uint32{7}}}}}}, ErrCorrupt},
		{"empty group", Document{Schema: SchemaVersion, Nodes: []Node{{Group: true}}}, ErrCorrupt},
		{"zero scope", Document{Schema: SchemaVersion, Scopes: []ScopeEntry{{ID: 0}}}, ErrCorrupt},
		{"negative phase", Document{Schema: SchemaVersion, Nodes: []Node{{Scopes: []PhaseScopes{{Phase: -1}}}}}, ErrCorrupt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := msgpack.Marshal(&tt.doc)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := Decode(data); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWriteReadFile(t *testing.T) {
	res := expanded(t, "tmp")
	path := filepath.Join(t.TempDir(), "unit.snap")
	if err := WriteFile(path, "unit.js", res.Items, res.Items[0].Bindings()); err != nil {
		t.Fatal(err)
	}
	u, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"user"}, symbolBases(t, u.Items)); diff != "" {
		t.Errorf("resolution (-want +got):\n%s", diff)
	}
}
