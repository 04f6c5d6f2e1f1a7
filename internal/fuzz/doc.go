// Package fuzztests houses Go fuzz harnesses for the reader and the scope
// machinery. They guard against panics on arbitrary source and check that
// scope operations keep their algebraic properties on random sequences.
package fuzztests
