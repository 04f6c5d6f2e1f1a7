package binding

import (
	"maps"
	"reflect"
	"slices"

	"sweet/internal/scope"
)

// Target is syntax that a record forwards resolution to.
type Target interface {
	Resolve(phase scope.Phase) (string, error)
}

// Record is one binding registered for a name.
type Record struct {
	Scopes  scope.Set // scope set at the definition site
	Binding Symbol
	Alias   Target // nil unless resolution must forward
}

// HasAlias reports whether resolution forwards through Alias. A nil pointer
// stored in Alias counts as no alias.
func (r Record) HasAlias() bool {
	if r.Alias == nil {
		return false
	}
	v := reflect.ValueOf(r.Alias)
	return v.Kind() != reflect.Pointer || !v.IsNil()
}

// Map is the name -> records table for one expansion context. The zero
// value is an empty map ready for use.
type Map struct {
	records map[string][]Record
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{records: make(map[string][]Record)}
}

// Add appends rec to the records of name.
func (m *Map) Add(name string, rec Record) {
	if m.records == nil {
		m.records = make(map[string][]Record)
	}
	m.records[name] = append(m.records[name], rec)
}

// AddUnique appends rec unless name already has a record with an identical
// scope set. It reports whether rec was added.
func (m *Map) AddUnique(name string, rec Record) bool {
	for _, existing := range m.records[name] {
		if existing.Scopes.Equal(rec.Scopes) {
			return false
		}
	}
	m.Add(name, rec)
	return true
}

// Get returns the records of name in registration order. The returned slice
// is a copy.
func (m *Map) Get(name string) ([]Record, bool) {
	recs, ok := m.records[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(recs), true
}

// Names lists every name with at least one record, sorted.
func (m *Map) Names() []string {
	return slices.Sorted(maps.Keys(m.records))
}

// Len reports the total number of records.
func (m *Map) Len() int {
	n := 0
	for _, recs := range m.records {
		n += len(recs)
	}
	return n
}
