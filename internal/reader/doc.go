// Package reader turns source text into syntax trees for the expander.
//
// The lexer produces flat tokens; Read folds matching delimiters into
// groups, reads template literals with their ${...} interpolations as brace
// groups, and reads #`...` syntax templates as groups opened by the #`
// marker. Every syntax it returns has empty scope sets and shares one fresh
// binding map.
//
// Malformed input is reported through diag.Reporter and reading continues:
// unclosed groups get a synthetic closer, stray closers are dropped.
package reader
