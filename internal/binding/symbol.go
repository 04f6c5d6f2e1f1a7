package binding

import (
	"fmt"
	"sync/atomic"

	"fortio.org/safecast"
)

// Symbol is a process-unique renamed identity for a binding.
type Symbol struct {
	Name string
	ID   uint32
}

var symbolCounter atomic.Uint64

// Gensym returns a Symbol for name that no other call returns.
func Gensym(name string) Symbol {
	id, err := safecast.Conv[uint32](symbolCounter.Add(1))
	if err != nil {
		panic(fmt.Errorf("symbol counter overflow: %w", err))
	}
	return Symbol{Name: name, ID: id}
}

// IsValid reports whether s came from Gensym.
func (s Symbol) IsValid() bool { return s.ID != 0 }

// String renders the symbol as the name code generation emits. It always
// differs from Name.
func (s Symbol) String() string {
	return fmt.Sprintf("%s_%d", s.Name, s.ID)
}
