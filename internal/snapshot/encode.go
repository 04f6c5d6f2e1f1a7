package snapshot

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"sweet/internal/binding"
	"sweet/internal/scope"
	"sweet/internal/syntax"
)

var (
	// ErrSchema marks a document written with another schema version.
	ErrSchema = errors.New("snapshot schema mismatch")
	// ErrAlias marks an alias target that is not syntax.
	ErrAlias = errors.New("snapshot alias target is not syntax")
	// ErrCorrupt marks a structurally invalid document.
	ErrCorrupt = errors.New("corrupt snapshot")
)

type encoder struct {
	doc  *Document
	seen map[scope.Scope]bool
}

// Build converts items and bm into a Document.
func Build(source string, items []*syntax.Syntax, bm *binding.Map) (*Document, error) {
	e := &encoder{
		doc:  &Document{Schema: SchemaVersion, Source: source},
		seen: make(map[scope.Scope]bool),
	}
	e.doc.Nodes = make([]Node, len(items))
	for i, it := range items {
		e.doc.Nodes[i] = e.node(it)
	}
	if bm == nil {
		return e.doc, nil
	}
	for _, name := range bm.Names() {
		recs, _ := bm.Get(name)
		for _, rec := range recs {
			entry := BindingEntry{
				Name:     name,
				Scopes:   e.ids(rec.Scopes),
				Symbol:   rec.Binding.Name,
				SymbolID: rec.Binding.ID,
			}
			if rec.HasAlias() {
				target, ok := rec.Alias.(*syntax.Syntax)
				if !ok {
					return nil, fmt.Errorf("%w: binding %q aliases %T", ErrAlias, name, rec.Alias)
				}
				n := e.node(target)
				entry.Alias = &n
			}
			e.doc.Bindings = append(e.doc.Bindings, entry)
		}
	}
	return e.doc, nil
}

// Encode builds and marshals a Document.
func Encode(source string, items []*syntax.Syntax, bm *binding.Map) ([]byte, error) {
	doc, err := Build(source, items, bm)
	if err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot encode: %w", err)
	}
	return data, nil
}

func (e *encoder) ids(set scope.Set) []uint32 {
	out := make([]uint32, set.Len())
	for i := range out {
		sc := set.At(i)
		if !e.seen[sc] {
			e.seen[sc] = true
			e.doc.Scopes = append(e.doc.Scopes, ScopeEntry{ID: uint32(sc), Name: scope.Global().Name(sc)})
		}
		out[i] = uint32(sc)
	}
	return out
}

func (e *encoder) node(stx *syntax.Syntax) Node {
	tok := stx.Token()
	n := Node{
		Kind:  uint8(tok.Kind),
		Value: tok.Value,
		Str:   tok.Str,
		File:  uint32(tok.Span.File),
		Start: tok.Span.Start,
		End:   tok.Span.End,
	}
	if tok.Start != nil {
		n.Line, n.Col = tok.Start.Line, tok.Start.Col
	}
	if tok.Group != nil {
		n.Group = true
		n.Nested = make([]Node, len(tok.Group))
		for i, child := range tok.Group {
			n.Nested[i] = e.node(child)
		}
	}
	for _, it := range tok.Items {
		item := TemplateItem{Text: it.Text}
		if it.Interp != nil {
			in := e.node(it.Interp)
			item.Interp = &in
		}
		n.Items = append(n.Items, item)
	}
	m := stx.ScopeMap()
	for _, p := range m.Phases() {
		n.Scopes = append(n.Scopes, PhaseScopes{Phase: int(p), IDs: e.ids(m.Get(p))})
	}
	return n
}
