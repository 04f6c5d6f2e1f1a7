package scope

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAllocatorUnique(t *testing.T) {
	a := New("outside")
	b := New("outside")
	if a == b {
		t.Fatalf("same name must still yield distinct scopes: %v", a)
	}
	if !a.IsValid() || !b.IsValid() {
		t.Fatalf("allocated scopes must be valid")
	}
	if NoScope.IsValid() {
		t.Fatalf("NoScope must be invalid")
	}
	if got := Global().Name(a); got != "outside" {
		t.Errorf("Name = %q", got)
	}
}

func TestAllocatorConcurrent(t *testing.T) {
	const workers, perWorker = 8, 100
	out := make(chan Scope, workers*perWorker)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				out <- New("w")
			}
		}()
	}
	wg.Wait()
	close(out)

	seen := make(map[Scope]bool)
	for sc := range out {
		if seen[sc] {
			t.Fatalf("scope %v allocated twice", sc)
		}
		seen[sc] = true
	}
}

func TestSetAppendDoesNotAlias(t *testing.T) {
	a, b, c := New("a"), New("b"), New("c")
	base := NewSet(a)
	left := base.Append(b)
	right := base.Append(c)

	if diff := cmp.Diff([]Scope{a, b}, left.Slice()); diff != "" {
		t.Errorf("left (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Scope{a, c}, right.Slice()); diff != "" {
		t.Errorf("right (-want +got):\n%s", diff)
	}
	if base.Len() != 1 {
		t.Errorf("base changed: %v", base)
	}
}

func TestSetRemoveFirstOccurrence(t *testing.T) {
	a, b := New("a"), New("b")
	s := NewSet(a, b, a)
	got := s.Remove(a)
	if diff := cmp.Diff([]Scope{b, a}, got.Slice()); diff != "" {
		t.Errorf("Remove (-want +got):\n%s", diff)
	}
	if s.Len() != 3 {
		t.Errorf("receiver changed: %v", s)
	}
	if same := s.Remove(New("absent")); !same.Equal(s) {
		t.Errorf("removing an absent scope must be a no-op")
	}
}

func TestSetToggleInvolution(t *testing.T) {
	a, x := New("a"), New("x")
	s := NewSet(a)
	once := s.Toggle(x)
	if once.Last() != x {
		t.Fatalf("first toggle must append: %v", once)
	}
	if twice := once.Toggle(x); !twice.Equal(s) {
		t.Fatalf("second toggle must restore: %v vs %v", twice, s)
	}
}

func TestSetSubsetIgnoresOrderAndDuplicates(t *testing.T) {
	a, b, c := New("a"), New("b"), New("c")
	tests := []struct {
		name string
		sub  Set
		sup  Set
		want bool
	}{
		{"empty", NewSet(), NewSet(a), true},
		{"reordered", NewSet(b, a), NewSet(a, b, c), true},
		{"duplicate", NewSet(a, a), NewSet(a), true},
		{"missing", NewSet(a, c), NewSet(a, b), false},
	}
	for _, tt := range tests {
		if got := tt.sub.IsSubset(tt.sup); got != tt.want {
			t.Errorf("%s: IsSubset = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSetLast(t *testing.T) {
	if NewSet().Last() != NoScope {
		t.Errorf("empty set has no innermost scope")
	}
	a, b := New("a"), New("b")
	if NewSet(a, b).Last() != b {
		t.Errorf("Last must return the most recently added scope")
	}
}

func TestMapWithCopies(t *testing.T) {
	a := New("a")
	var m Map
	m1 := m.With(0, NewSet(a))
	m2 := m1.With(1, NewSet())

	if m.Len() != 0 || m1.Len() != 1 || m2.Len() != 2 {
		t.Fatalf("lengths = %d,%d,%d", m.Len(), m1.Len(), m2.Len())
	}
	if m.Get(0).Len() != 0 {
		t.Errorf("zero map must report empty sets")
	}
	if diff := cmp.Diff([]Phase{0, 1}, m2.Phases()); diff != "" {
		t.Errorf("Phases (-want +got):\n%s", diff)
	}
}

func TestPhaseValidity(t *testing.T) {
	if NoPhase.IsValid() {
		t.Errorf("NoPhase must be invalid")
	}
	if !Phase(0).IsValid() || !Phase(1).IsValid() {
		t.Errorf("phases 0 and 1 must be valid")
	}
}
