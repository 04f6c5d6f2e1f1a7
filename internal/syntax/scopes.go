package syntax

import (
	"sweet/internal/binding"
	"sweet/internal/scope"
)

// AddScopeOptions tunes AddScope.
type AddScopeOptions struct {
	// Flip toggles membership: the scope is removed when already present.
	Flip bool
}

// AddScope returns s with sc recorded at phase and bm as its binding map.
// Groups apply the operation to every child; templates apply it to the
// interpolation groups and leave static text alone.
func (s *Syntax) AddScope(sc scope.Scope, bm *binding.Map, phase scope.Phase, opts AddScopeOptions) *Syntax {
	tok := s.tok
	switch {
	case isDelimiter(tok):
		group := make([]*Syntax, len(tok.Group))
		for i, child := range tok.Group {
			group[i] = child.AddScope(sc, bm, phase, opts)
		}
		tok.Group = group
	case s.IsTemplate():
		items := make([]TemplateElement, len(tok.Items))
		for i, it := range tok.Items {
			if it.Interp != nil && it.Interp.IsDelimiter() {
				it.Interp = it.Interp.AddScope(sc, bm, phase, opts)
			}
			items[i] = it
		}
		tok.Items = items
	}

	set := s.scopes.Get(phase)
	if opts.Flip {
		set = set.Toggle(sc)
	} else {
		set = set.Append(sc)
	}
	return &Syntax{tok: tok, bindings: bm, scopes: s.scopes.With(phase, set)}
}

// RemoveScope returns s without the first occurrence of sc at phase.
func (s *Syntax) RemoveScope(sc scope.Scope, phase scope.Phase) *Syntax {
	tok := s.tok
	if isDelimiter(tok) {
		group := make([]*Syntax, len(tok.Group))
		for i, child := range tok.Group {
			group[i] = child.RemoveScope(sc, phase)
		}
		tok.Group = group
	}
	return &Syntax{tok: tok, bindings: s.bindings, scopes: s.scopes.With(phase, s.scopes.Get(phase).Remove(sc))}
}

// Walk calls fn on s and then on every nested syntax in source order,
// including template interpolations. Returning false skips the children.
func (s *Syntax) Walk(fn func(*Syntax) bool) {
	if !fn(s) {
		return
	}
	switch {
	case isDelimiter(s.tok):
		for _, child := range s.tok.Group {
			child.Walk(fn)
		}
	case s.IsTemplate():
		for _, it := range s.tok.Items {
			if it.Interp != nil {
				it.Interp.Walk(fn)
			}
		}
	}
}

// MapLeaves returns s with fn applied to every leaf. Groups and templates are
// rebuilt around the mapped leaves and keep their own scopes.
func (s *Syntax) MapLeaves(fn func(*Syntax) *Syntax) *Syntax {
	tok := s.tok
	switch {
	case isDelimiter(tok):
		group := make([]*Syntax, len(tok.Group))
		for i, child := range tok.Group {
			group[i] = child.MapLeaves(fn)
		}
		tok.Group = group
		return &Syntax{tok: tok, bindings: s.bindings, scopes: s.scopes}
	case s.IsTemplate():
		items := make([]TemplateElement, len(tok.Items))
		for i, it := range tok.Items {
			if it.Interp != nil {
				it.Interp = it.Interp.MapLeaves(fn)
			}
			items[i] = it
		}
		tok.Items = items
		return fn(&Syntax{tok: tok, bindings: s.bindings, scopes: s.scopes})
	}
	return fn(s)
}

// WithScopes returns a copy of s carrying m. Children are left untouched.
func (s *Syntax) WithScopes(m scope.Map) *Syntax {
	return &Syntax{tok: s.tok, bindings: s.bindings, scopes: m}
}
