// Package scenario drives hygiene marking from a TOML script instead of a
// macro expander.
//
// A script declares named scopes, an ordered list of steps that add, flip
// or remove those scopes on ranges of top-level syntax, and the bindings to
// register once the steps have run:
//
//	phase = 0
//	scopes = ["outside", "macro"]
//
//	[[step]]
//	op = "add"
//	scope = "outside"
//
//	[[step]]
//	op = "flip"
//	scope = "macro"
//	range = [2, 4]
//	name = "tmp"
//
//	[[binding]]
//	name = "tmp"
//	scopes = ["outside", "macro"]
//
// Scope names are allocated afresh on every Apply, so running one script
// over several units never shares scopes between them.
package scenario
