package syntax

import (
	"fmt"
	"slices"
	"strings"

	"sweet/internal/binding"
	"sweet/internal/scope"
)

// Resolution describes how Resolve reached its answer.
type Resolution struct {
	Name    string
	Phase   scope.Phase
	UseSite scope.Set
	// Candidates are the records whose scope sets are subsets of UseSite,
	// largest first. Empty when resolution stopped before the lookup.
	Candidates []binding.Record
	// Bound is set when a single record won.
	Bound  bool
	Winner binding.Record
}

// Resolve returns the name s refers to at phase: the winning binding's
// symbol, the alias target's resolution, or the raw text when s is unbound.
func (s *Syntax) Resolve(phase scope.Phase) (string, error) {
	t, err := s.ResolveTarget(phase)
	if err != nil {
		return "", err
	}
	return t.Text, nil
}

// Target is the end of an alias chain.
type Target struct {
	Text string
	// Symbol is the winning binding; invalid when the chain ends unbound or
	// in a foreign binding.Target.
	Symbol binding.Symbol
}

// ResolveTarget is Resolve keeping the symbol the name resolved to. An alias
// chain that comes back to a name and scope set it already visited fails
// with ErrAliasCycle.
func (s *Syntax) ResolveTarget(phase scope.Phase) (Target, error) {
	return s.resolve(phase, nil)
}

func (s *Syntax) resolve(phase scope.Phase, seen []string) (Target, error) {
	r, err := s.Explain(phase)
	if err != nil {
		return Target{}, err
	}
	if !r.Bound {
		return Target{Text: s.tok.Value}, nil
	}
	if !r.Winner.HasAlias() {
		return Target{Text: r.Winner.Binding.String(), Symbol: r.Winner.Binding}, nil
	}
	key := r.Name + " " + r.UseSite.String()
	if slices.Contains(seen, key) {
		return Target{}, fmt.Errorf("%w: %s", ErrAliasCycle, strings.Join(append(seen, key), " -> "))
	}
	seen = append(seen, key)
	next, ok := r.Winner.Alias.(*Syntax)
	if !ok {
		text, err := r.Winner.Alias.Resolve(phase)
		return Target{Text: text}, err
	}
	return next.resolve(phase, seen)
}

// Explain runs the lookup half of Resolve without following aliases.
func (s *Syntax) Explain(phase scope.Phase) (Resolution, error) {
	if !phase.IsValid() {
		return Resolution{}, fmt.Errorf("%w: got %d", ErrMissingPhase, phase)
	}
	r := Resolution{Name: s.tok.Value, Phase: phase, UseSite: s.scopes.Get(phase)}
	if r.UseSite.Len() == 0 || !(s.IsIdentifier() || s.IsKeyword()) {
		return r, nil
	}
	// Only the innermost scope is checked before the lookup.
	if !r.UseSite.Last().IsValid() || s.bindings == nil {
		return r, nil
	}
	recs, ok := s.bindings.Get(r.Name)
	if !ok {
		return r, nil
	}
	for _, rec := range recs {
		if rec.Scopes.IsSubset(r.UseSite) {
			r.Candidates = append(r.Candidates, rec)
		}
	}
	slices.SortStableFunc(r.Candidates, func(a, b binding.Record) int {
		return b.Scopes.Len() - a.Scopes.Len()
	})
	switch {
	case len(r.Candidates) >= 2 && r.Candidates[0].Scopes.Len() == r.Candidates[1].Scopes.Len():
		sets := make([]scope.Set, len(r.Candidates))
		for i, c := range r.Candidates {
			sets[i] = c.Scopes
		}
		return r, &AmbiguousBindingError{Name: r.Name, Phase: phase, UseSite: r.UseSite, Candidates: sets}
	case len(r.Candidates) > 0:
		r.Bound = true
		r.Winner = r.Candidates[0]
	}
	return r, nil
}
