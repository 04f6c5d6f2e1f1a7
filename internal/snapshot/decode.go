package snapshot

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"sweet/internal/binding"
	"sweet/internal/scope"
	"sweet/internal/source"
	"sweet/internal/syntax"
	"sweet/internal/token"
)

// Unit is a decoded document.
type Unit struct {
	Source   string
	Items    []*syntax.Syntax
	Bindings *binding.Map
}

type decoder struct {
	names   map[uint32]string
	scopes  map[uint32]scope.Scope
	symbols map[uint32]binding.Symbol
	ctx     *syntax.Syntax
}

// Decode unmarshals data and rebuilds the unit with fresh scopes and
// symbols.
func Decode(data []byte) (*Unit, error) {
	var doc Document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	return Restore(&doc)
}

// Restore rebuilds the unit described by doc.
func Restore(doc *Document) (*Unit, error) {
	if doc.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, doc.Schema, SchemaVersion)
	}
	d := &decoder{
		names:   make(map[uint32]string, len(doc.Scopes)),
		scopes:  make(map[uint32]scope.Scope, len(doc.Scopes)),
		symbols: make(map[uint32]binding.Symbol),
		ctx:     syntax.OfToken(token.Token{}, nil),
	}
	for _, s := range doc.Scopes {
		if s.ID == 0 {
			return nil, fmt.Errorf("%w: scope table holds the empty scope", ErrCorrupt)
		}
		d.names[s.ID] = s.Name
	}

	u := &Unit{Source: doc.Source, Items: make([]*syntax.Syntax, len(doc.Nodes)), Bindings: d.ctx.Bindings()}
	for i := range doc.Nodes {
		stx, err := d.node(&doc.Nodes[i])
		if err != nil {
			return nil, err
		}
		u.Items[i] = stx
	}
	for _, b := range doc.Bindings {
		set, err := d.set(b.Scopes)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", b.Name, err)
		}
		rec := binding.Record{Scopes: set, Binding: d.symbol(b.Symbol, b.SymbolID)}
		if b.Alias != nil {
			alias, err := d.node(b.Alias)
			if err != nil {
				return nil, fmt.Errorf("binding %q: %w", b.Name, err)
			}
			rec.Alias = alias
		}
		u.Bindings.Add(b.Name, rec)
	}
	return u, nil
}

func (d *decoder) scope(id uint32) (scope.Scope, error) {
	if sc, ok := d.scopes[id]; ok {
		return sc, nil
	}
	name, ok := d.names[id]
	if !ok {
		return scope.NoScope, fmt.Errorf("%w: scope %d missing from table", ErrCorrupt, id)
	}
	sc := scope.New(name)
	d.scopes[id] = sc
	return sc, nil
}

func (d *decoder) set(ids []uint32) (scope.Set, error) {
	items := make([]scope.Scope, len(ids))
	for i, id := range ids {
		sc, err := d.scope(id)
		if err != nil {
			return scope.Set{}, err
		}
		items[i] = sc
	}
	return scope.NewSet(items...), nil
}

func (d *decoder) symbol(name string, id uint32) binding.Symbol {
	if id == 0 {
		return binding.Symbol{Name: name}
	}
	if sym, ok := d.symbols[id]; ok {
		return sym
	}
	sym := binding.Gensym(name)
	d.symbols[id] = sym
	return sym
}

func (d *decoder) node(n *Node) (*syntax.Syntax, error) {
	tok := syntax.Token{Token: token.Token{
		Kind:  token.Kind(n.Kind),
		Value: n.Value,
		Str:   n.Str,
		Span:  source.Span{File: source.FileID(n.File), Start: n.Start, End: n.End},
	}}
	if n.Line != 0 {
		tok.Start = &source.LineCol{Line: n.Line, Col: n.Col}
	}
	if n.Group {
		if len(n.Nested) < 2 {
			return nil, fmt.Errorf("%w: group with %d elements", ErrCorrupt, len(n.Nested))
		}
		tok.Group = make([]*syntax.Syntax, len(n.Nested))
		for i := range n.Nested {
			child, err := d.node(&n.Nested[i])
			if err != nil {
				return nil, err
			}
			tok.Group[i] = child
		}
	}
	for _, it := range n.Items {
		el := syntax.TemplateElement{Text: it.Text}
		if it.Interp != nil {
			interp, err := d.node(it.Interp)
			if err != nil {
				return nil, err
			}
			el.Interp = interp
		}
		tok.Items = append(tok.Items, el)
	}

	var m scope.Map
	for _, ps := range n.Scopes {
		if ps.Phase < 0 {
			return nil, fmt.Errorf("%w: negative phase %d", ErrCorrupt, ps.Phase)
		}
		set, err := d.set(ps.IDs)
		if err != nil {
			return nil, err
		}
		m = m.With(scope.Phase(ps.Phase), set)
	}
	return syntax.Of(tok, d.ctx).WithScopes(m), nil
}
