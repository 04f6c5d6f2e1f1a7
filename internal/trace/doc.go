// Package trace records where a sweet run spends its time.
//
// Enable it from the command line:
//
//	sweet resolve --trace=- --trace-level=detail main.js
//
// or from sweet.toml:
//
//	[trace]
//	level = "phase"
//	output = "trace.ndjson"
//
// Nop is used when tracing is off. StreamTracer writes each event as it
// happens, RingTracer keeps the last N in memory and MultiTracer fans out.
//
// LevelPhase emits driver and pass spans. LevelDetail adds one span per
// compilation unit, LevelDebug adds node events such as each rename.
//
// The tracer, the enclosing span and the unit label travel in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx = trace.WithUnit(ctx, "main.js")
//	ctx, span := trace.Start(ctx, trace.ScopePass, "read")
//	defer span.End("")
//	trace.Mark(ctx, trace.ScopeNode, "rename", "tmp -> tmp_3")
package trace
