// Package binding holds the binding map consulted by hygienic resolution.
//
// A Map associates an identifier name with every Record registered for it
// during one expansion pass. A Record pairs the exact scope set active at
// the definition site with a fresh Symbol and, optionally, an alias target
// that resolution forwards to instead.
//
// Maps are shared by reference between all syntax produced in one expansion
// context and are append-only for the lifetime of a phase. Registering two
// records with the same scope set for one name is a caller bug that
// resolution reports as an ambiguity.
package binding
