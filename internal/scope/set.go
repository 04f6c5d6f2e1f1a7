package scope

import (
	"slices"
	"strings"
)

// Set is an immutable ordered sequence of scopes.
type Set struct {
	items []Scope
}

// NewSet builds a Set holding items in order.
func NewSet(items ...Scope) Set {
	return Set{items: slices.Clone(items)}
}

func (s Set) Len() int { return len(s.items) }

// At returns the i-th scope, outermost first.
func (s Set) At(i int) Scope { return s.items[i] }

// Last returns the innermost (most recently added) scope, or NoScope.
func (s Set) Last() Scope {
	if len(s.items) == 0 {
		return NoScope
	}
	return s.items[len(s.items)-1]
}

// IndexOf returns the position of the first occurrence of sc, or -1.
func (s Set) IndexOf(sc Scope) int { return slices.Index(s.items, sc) }

func (s Set) Contains(sc Scope) bool { return s.IndexOf(sc) >= 0 }

// Append returns s with sc added as the innermost scope. A scope already in
// s is appended again; callers that need toggling use Toggle.
func (s Set) Append(sc Scope) Set {
	return Set{items: append(slices.Clip(s.items), sc)}
}

// Remove returns s without the first occurrence of sc.
func (s Set) Remove(sc Scope) Set {
	i := s.IndexOf(sc)
	if i < 0 {
		return s
	}
	out := make([]Scope, 0, len(s.items)-1)
	out = append(out, s.items[:i]...)
	out = append(out, s.items[i+1:]...)
	return Set{items: out}
}

// Toggle removes sc when present and appends it otherwise.
func (s Set) Toggle(sc Scope) Set {
	if s.Contains(sc) {
		return s.Remove(sc)
	}
	return s.Append(sc)
}

// IsSubset reports whether every scope of s occurs in other.
func (s Set) IsSubset(other Set) bool {
	for _, sc := range s.items {
		if !other.Contains(sc) {
			return false
		}
	}
	return true
}

// Equal reports whether s and other hold the same scopes in the same order.
func (s Set) Equal(other Set) bool { return slices.Equal(s.items, other.items) }

// Slice returns a copy of the scopes, outermost first.
func (s Set) Slice() []Scope { return slices.Clone(s.items) }

// String renders the set as "{a_1, b_2}".
func (s Set) String() string {
	parts := make([]string, len(s.items))
	for i, sc := range s.items {
		parts[i] = sc.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
