// Package syntax implements hygienic syntax objects.
//
// A Syntax is an immutable lexical token or delimiter group together with
// its hygiene context: one ordered scope set per phase and a reference to
// the binding map of the expansion that produced it. Every operation returns
// a new Syntax; values handed out earlier stay valid.
//
// The expander marks macro-introduced output with AddScope and the use site
// (and any input copied verbatim into the output) with AddScope in flip
// mode. After expansion, Resolve maps each identifier or keyword to the
// binding visible through the largest subset of its scope set, or to its own
// text when nothing binds it. Two equally specific candidates are an error,
// never a silent pick.
package syntax
