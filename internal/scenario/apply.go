package scenario

import (
	"cmp"
	"fmt"
	"slices"

	"sweet/internal/binding"
	"sweet/internal/scope"
	"sweet/internal/syntax"
)

// Result is the outcome of Apply.
type Result struct {
	Items  []*syntax.Syntax
	Scopes map[string]scope.Scope
	// Added and Skipped count binding registrations; Skipped records were
	// unique declarations whose scope set was already present.
	Added   int
	Skipped int
}

// Apply allocates the declared scopes, runs every step over items and then
// registers the bindings in bm. items is not modified.
func (s *Script) Apply(items []*syntax.Syntax, bm *binding.Map) (Result, error) {
	res := Result{
		Items:  slices.Clone(items),
		Scopes: make(map[string]scope.Scope, len(s.Scopes)),
	}
	for _, name := range s.Scopes {
		res.Scopes[name] = scope.New(name)
	}

	for i, st := range s.Steps {
		lo, hi := 0, len(res.Items)
		if len(st.Range) == 2 {
			lo, hi = st.Range[0], st.Range[1]
			if hi > len(res.Items) {
				return Result{}, fmt.Errorf("%s: step %d: %w: [%d, %d) exceeds %d items", s.Name, i+1, ErrBadRange, lo, hi, len(res.Items))
			}
		}
		mark := s.marker(st, res.Scopes[st.Scope], bm)
		for j := lo; j < hi; j++ {
			if st.Name == "" {
				res.Items[j] = mark(res.Items[j])
				continue
			}
			res.Items[j] = res.Items[j].MapLeaves(func(leaf *syntax.Syntax) *syntax.Syntax {
				if (leaf.IsIdentifier() || leaf.IsKeyword()) && leaf.Token().Value == st.Name {
					return mark(leaf)
				}
				return leaf
			})
		}
	}

	for _, b := range s.Bindings {
		rec := binding.Record{
			Scopes:  s.scopeSet(b.Scopes, res.Scopes),
			Binding: binding.Gensym(cmp.Or(b.Symbol, b.Name)),
		}
		if b.Alias != "" {
			rec.Alias = s.alias(b, res.Scopes, bm)
		}
		if !b.Unique {
			bm.Add(b.Name, rec)
			res.Added++
			continue
		}
		if bm.AddUnique(b.Name, rec) {
			res.Added++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

func (s *Script) phaseOr(p *int) scope.Phase {
	if p != nil {
		return scope.Phase(*p)
	}
	return scope.Phase(s.Phase)
}

func (s *Script) marker(st Step, sc scope.Scope, bm *binding.Map) func(*syntax.Syntax) *syntax.Syntax {
	phase := s.phaseOr(st.Phase)
	switch st.Op {
	case OpRemove:
		return func(n *syntax.Syntax) *syntax.Syntax { return n.RemoveScope(sc, phase) }
	case OpFlip:
		return func(n *syntax.Syntax) *syntax.Syntax {
			return n.AddScope(sc, bm, phase, syntax.AddScopeOptions{Flip: true})
		}
	default:
		return func(n *syntax.Syntax) *syntax.Syntax {
			return n.AddScope(sc, bm, phase, syntax.AddScopeOptions{})
		}
	}
}

func (s *Script) scopeSet(names []string, scopes map[string]scope.Scope) scope.Set {
	items := make([]scope.Scope, len(names))
	for i, n := range names {
		items[i] = scopes[n]
	}
	return scope.NewSet(items...)
}

// alias builds the identifier a record forwards to. Without alias scopes it
// resolves to its own text.
func (s *Script) alias(b BindingDecl, scopes map[string]scope.Scope, bm *binding.Map) *syntax.Syntax {
	target := syntax.FromIdentifier(b.Alias, nil)
	phase := s.phaseOr(b.AliasPhase)
	for _, n := range b.AliasScopes {
		target = target.AddScope(scopes[n], bm, phase, syntax.AddScopeOptions{})
	}
	return target
}
