// Package diag defines the diagnostic model shared by the reader, the
// scenario runner and the reducer.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – numeric identifier with a stable string form (codes.go). Ranges:
//     LEX1xxx reader, SYN2xxx delimiter structure, HYG3xxx hygiene,
//     IO4xxx files and config, SCN5xxx scenario scripts, OBS6xxx timings.
//   - Message – short, actionable text.
//   - Primary – the source.Span pointing at the issue.
//   - Notes – optional secondary spans, e.g. the definition sites of the
//     bindings an ambiguous identifier could refer to.
//
// # Emitting diagnostics
//
// Producers take a Reporter and either call Report directly or chain a
// ReportBuilder (ReportError / ReportWarning / ReportInfo, WithNote, Emit).
// BagReporter collects into a Bag, which supports sorting and deduplication.
//
// Package diag does no IO; rendering lives in internal/diagfmt.
package diag
