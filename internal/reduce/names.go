package reduce

import (
	"fmt"

	"sweet/internal/binding"
	"sweet/internal/syntax"
)

// namer gives every symbol of one unit a printable name. Names are numbered
// per base name in order of first use, so the text of a unit does not
// depend on other units, and they skip every identifier already spelled in
// the source so a renamed binding never captures a free name.
type namer struct {
	taken map[string]bool
	names map[binding.Symbol]string
	last  map[string]int
}

func newNamer(items []*syntax.Syntax) *namer {
	n := &namer{
		taken: make(map[string]bool),
		names: make(map[binding.Symbol]string),
		last:  make(map[string]int),
	}
	for _, it := range items {
		it.Walk(func(s *syntax.Syntax) bool {
			if s.IsIdentifier() || s.IsKeyword() {
				n.taken[s.Token().Value] = true
			}
			return true
		})
	}
	return n
}

func (n *namer) name(sym binding.Symbol) string {
	if name, ok := n.names[sym]; ok {
		return name
	}
	for k := n.last[sym.Name] + 1; ; k++ {
		name := fmt.Sprintf("%s_%d", sym.Name, k)
		if n.taken[name] {
			continue
		}
		n.last[sym.Name] = k
		n.taken[name] = true
		n.names[sym] = name
		return name
	}
}
