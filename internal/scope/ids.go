package scope

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// Scope identifies one lexical or expansion context.
type Scope uint32

const (
	// NoScope marks the absence of a scope. The allocator never returns it.
	NoScope Scope = 0
)

// IsValid reports whether the scope came from the allocator.
func (s Scope) IsValid() bool { return s != NoScope }

func (s Scope) String() string {
	if name := global.Name(s); name != "" {
		return fmt.Sprintf("%s_%d", name, uint32(s))
	}
	return fmt.Sprintf("scope_%d", uint32(s))
}

// Allocator hands out process-unique scopes. It is safe for concurrent use so
// that independent compilation units may expand on separate goroutines.
type Allocator struct {
	mu    sync.Mutex
	names []string // index 0 reserved for NoScope
}

func newAllocator() *Allocator {
	return &Allocator{names: make([]string, 1, 64)}
}

// New allocates a fresh scope. name is kept for diagnostics only.
func (a *Allocator) New(name string) Scope {
	a.mu.Lock()
	defer a.mu.Unlock()
	value, err := safecast.Conv[uint32](len(a.names))
	if err != nil {
		panic(fmt.Errorf("scope allocator overflow: %w", err))
	}
	a.names = append(a.names, name)
	return Scope(value)
}

// Name returns the debug name of s, or "" for scopes it did not allocate.
func (a *Allocator) Name(s Scope) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !s.IsValid() || int(s) >= len(a.names) {
		return ""
	}
	return a.names[s]
}

// Len reports the number of scopes allocated so far.
func (a *Allocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.names) - 1
}

var global = newAllocator()

// Global returns the process-wide allocator. Reusing a scope across
// unrelated expansion steps merges their hygiene contexts, so every scope
// must come from here.
func Global() *Allocator { return global }

// New allocates a fresh scope from the process-wide allocator.
func New(name string) Scope { return global.New(name) }

// Phase identifies a staged-expansion level. Valid phases are non-negative.
type Phase int

// NoPhase stands for "no phase supplied".
const NoPhase Phase = -1

// IsValid reports whether p names a real phase.
func (p Phase) IsValid() bool { return p >= 0 }
