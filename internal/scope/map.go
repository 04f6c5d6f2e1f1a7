package scope

import (
	"maps"
	"slices"
)

// Map holds one Set per phase. The zero value is an empty map; With never
// mutates the receiver.
type Map struct {
	byPhase map[Phase]Set
}

// Get returns the set recorded for p, or the empty set.
func (m Map) Get(p Phase) Set {
	return m.byPhase[p]
}

// With returns a copy of m whose set for p is s.
func (m Map) With(p Phase, s Set) Map {
	next := make(map[Phase]Set, len(m.byPhase)+1)
	maps.Copy(next, m.byPhase)
	next[p] = s
	return Map{byPhase: next}
}

// Phases lists the phases that have a recorded set, in ascending order.
func (m Map) Phases() []Phase {
	return slices.Sorted(maps.Keys(m.byPhase))
}

// Len reports how many phases have a recorded set.
func (m Map) Len() int { return len(m.byPhase) }
