package trace

import "context"

// state is what a context carries for tracing: the tracer, the enclosing
// span and the unit label.
type state struct {
	tracer Tracer
	span   uint64
	unit   string
}

type ctxKey struct{}

func stateOf(ctx context.Context) state {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(state); ok {
			return st
		}
	}
	return state{tracer: Nop}
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t to ctx. A nil t means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	st := stateOf(ctx)
	st.tracer = t
	return context.WithValue(ctx, ctxKey{}, st)
}

// WithUnit labels every event started under the returned context with unit.
func WithUnit(ctx context.Context, unit string) context.Context {
	st := stateOf(ctx)
	st.unit = unit
	return context.WithValue(ctx, ctxKey{}, st)
}

// SpanID returns the innermost span started through ctx, or 0.
func SpanID(ctx context.Context) uint64 {
	return stateOf(ctx).span
}

// Start begins a span nested in the one carried by ctx and returns a
// context that carries the new span. When the tracer skips scope, ctx is
// returned unchanged and the span is inert.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	st := stateOf(ctx)
	span := begin(st.tracer, scope, name, st.span, st.unit)
	if span.id == 0 {
		return ctx, span
	}
	st.span = span.id
	return context.WithValue(ctx, ctxKey{}, st), span
}

// Mark emits an instant event inside the span carried by ctx.
func Mark(ctx context.Context, scope Scope, name, detail string) {
	st := stateOf(ctx)
	if !st.tracer.Enabled() || !st.tracer.Level().ShouldEmit(scope) {
		return
	}
	st.tracer.Emit(&Event{
		Time:     now(),
		Seq:      nextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: st.span,
		Unit:     st.unit,
		Name:     name,
		Detail:   detail,
	})
}
