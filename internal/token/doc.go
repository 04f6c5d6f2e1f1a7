// Package token defines the lexical token kinds produced by the reader and
// consumed by the syntax layer.
// Invariants:
//   - Token.Value is the raw source text of the token (keywords and
//     punctuators included); String tokens additionally carry the decoded
//     content in Token.Str.
//   - Null, True and False are keyword-class kinds, so they also classify
//     as keywords.
//   - Delimiters are ordinary punctuator-class kinds here; grouping into
//     delimiter groups is done by the syntax layer.
package token
