// Package snapshot serialises expanded syntax and its binding map with
// msgpack.
//
// Scopes and symbols are process-local identities, so Decode maps every
// recorded scope and symbol to a freshly allocated one. Two snapshots
// decoded into the same process never share scopes.
package snapshot
