package reduce

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"sweet/internal/diag"
	"sweet/internal/scope"
	"sweet/internal/syntax"
	"sweet/internal/trace"
)

// Options configures Unit.
type Options struct {
	Phase    scope.Phase
	Reporter diag.Reporter // nil drops diagnostics
}

// Output is the rendered unit.
type Output struct {
	Text     string
	Resolved int // identifier and keyword leaves resolved
	Renamed  int // leaves whose resolved name differs from their text
}

type reducer struct {
	opts   Options
	ctx    context.Context
	names  *namer
	out    emitter
	res    Output
	failed bool
	halt   bool
}

// Unit resolves and renders items. ok is false when a hygiene error was
// reported; Output.Text is then empty.
func Unit(ctx context.Context, items []*syntax.Syntax, opts Options) (Output, bool) {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	ctx, span := trace.Start(ctx, trace.ScopePass, "resolve")

	r := &reducer{opts: opts, ctx: ctx, names: newNamer(items)}
	for _, it := range items {
		if r.halt || ctx.Err() != nil {
			break
		}
		r.node(it)
	}
	span.WithExtra("resolved", strconv.Itoa(r.res.Resolved)).
		WithExtra("renamed", strconv.Itoa(r.res.Renamed))
	if r.failed || ctx.Err() != nil {
		span.End("failed")
		return Output{Resolved: r.res.Resolved, Renamed: r.res.Renamed}, false
	}
	span.End("")
	r.res.Text = r.out.String()
	return r.res, true
}

func (r *reducer) node(stx *syntax.Syntax) {
	if r.halt {
		return
	}
	switch {
	case stx.IsEOF():
	case stx.IsDelimiter():
		for _, child := range stx.Children() {
			r.node(child)
		}
	case stx.IsTemplate():
		r.template(stx)
	case stx.IsIdentifier(), stx.IsKeyword():
		r.out.word(r.resolve(stx), line(stx))
	default:
		r.out.word(stx.Token().Value, line(stx))
	}
}

func (r *reducer) resolve(stx *syntax.Syntax) string {
	raw := stx.Token().Value
	target, err := stx.ResolveTarget(r.opts.Phase)
	if err != nil {
		ReportHygiene(r.opts.Reporter, stx, err)
		r.failed = true
		// Every later leaf would fail the same way.
		r.halt = errors.Is(err, syntax.ErrMissingPhase)
		return raw
	}
	r.res.Resolved++
	name := target.Text
	if target.Symbol.IsValid() {
		name = r.names.name(target.Symbol)
	}
	if name != raw {
		r.res.Renamed++
		trace.Mark(r.ctx, trace.ScopeNode, "rename", raw+" -> "+name)
	}
	return name
}

// template renders a template literal with each interpolation reduced in
// place.
func (r *reducer) template(stx *syntax.Syntax) {
	var sb strings.Builder
	sb.WriteByte('`')
	for _, it := range stx.Token().Items {
		if it.Interp == nil {
			sb.WriteString(it.Text)
			continue
		}
		inner, err := it.Interp.Inner()
		if err != nil {
			ReportHygiene(r.opts.Reporter, it.Interp, err)
			r.failed = true
			continue
		}
		sub := &reducer{opts: r.opts, ctx: r.ctx, names: r.names}
		for _, n := range inner {
			sub.node(n)
		}
		r.res.Resolved += sub.res.Resolved
		r.res.Renamed += sub.res.Renamed
		r.failed = r.failed || sub.failed
		r.halt = r.halt || sub.halt
		sb.WriteString("${")
		sb.WriteString(sub.out.String())
		sb.WriteString("}")
	}
	sb.WriteByte('`')
	r.out.word(sb.String(), line(stx))
}

func line(stx *syntax.Syntax) uint32 {
	n, err := stx.LineNumber()
	if err != nil {
		return 0
	}
	return n
}
