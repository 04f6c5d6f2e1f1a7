// Package scope provides hygiene scope identities, the ordered scope
// sequences accumulated on syntax, and the per-phase map that holds them.
//
// A Scope is an opaque number handed out by a single process-wide
// allocator. Two scopes are the same scope exactly when their numbers are
// equal; the debug name given at allocation time never takes part in
// comparisons.
//
// A Set is an ordered, append-biased sequence rather than a mathematical
// set: the last element is the innermost scope, duplicates are kept if the
// caller appends the same scope twice, and subset tests look at membership
// only. Every operation returns a new value and leaves the receiver intact.
package scope
