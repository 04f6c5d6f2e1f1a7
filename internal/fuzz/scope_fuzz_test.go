package fuzztests

import (
	"slices"
	"testing"

	"sweet/internal/binding"
	"sweet/internal/scope"
	"sweet/internal/syntax"
)

// sameMembers compares scope multisets; flipping an outer scope twice moves
// it innermost.
func sameMembers(a, b scope.Set) bool {
	x, y := a.Slice(), b.Slice()
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

// FuzzScopeOps drives add, flip and remove from the input bytes and checks
// flip involution, add/remove inversion and resolution purity.
func FuzzScopeOps(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3})
	f.Add([]byte{7, 7, 7})
	f.Add([]byte{0x10, 0x21, 0x32, 0x03, 0x14})
	f.Fuzz(func(t *testing.T, ops []byte) {
		if len(ops) > 256 {
			ops = ops[:256]
		}
		pool := []scope.Scope{scope.New("a"), scope.New("b"), scope.New("c"), scope.New("d")}
		bm := binding.NewMap()
		stx := syntax.FromIdentifier("x", nil)
		for i, sc := range pool[:2] {
			set := scope.NewSet(pool[:i+1]...)
			bm.Add("x", binding.Record{Scopes: set, Binding: binding.Gensym("x")})
		}

		for _, op := range ops {
			sc := pool[int(op&0x3)]
			phase := scope.Phase(op >> 6)
			before := stx.Scopes(phase)
			switch (op >> 2) & 0x3 {
			case 0:
				stx = stx.AddScope(sc, bm, phase, syntax.AddScopeOptions{})
			case 1:
				flipped := stx.AddScope(sc, bm, phase, syntax.AddScopeOptions{Flip: true})
				back := flipped.AddScope(sc, bm, phase, syntax.AddScopeOptions{Flip: true})
				if !sameMembers(back.Scopes(phase), before) {
					t.Fatalf("flip twice changed %s into %s", before, back.Scopes(phase))
				}
				stx = flipped
			case 2:
				stx = stx.RemoveScope(sc, phase)
			default:
				if before.Contains(sc) {
					continue
				}
				added := stx.AddScope(sc, bm, phase, syntax.AddScopeOptions{})
				if got := added.RemoveScope(sc, phase).Scopes(phase); !got.Equal(before) {
					t.Fatalf("add then remove changed %s into %s", before, got)
				}
			}
		}

		first, err1 := stx.Resolve(0)
		second, err2 := stx.Resolve(0)
		if first != second || (err1 == nil) != (err2 == nil) {
			t.Fatalf("resolution is not pure: %q/%v then %q/%v", first, err1, second, err2)
		}
	})
}
