package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"sweet/internal/binding"
	"sweet/internal/diag"
	"sweet/internal/observ"
	"sweet/internal/reader"
	"sweet/internal/reduce"
	"sweet/internal/scenario"
	"sweet/internal/scope"
	"sweet/internal/source"
	"sweet/internal/syntax"
	"sweet/internal/trace"
)

// Unit is one compilation unit.
type Unit struct {
	Path   string
	Script *scenario.Script // nil: no marking, every name resolves to its text
}

// Options configures RunUnit and Run.
type Options struct {
	Phase          scope.Phase
	MaxDiagnostics int
	Jobs           int        // <= 0: GOMAXPROCS
	Cache          *DiskCache // nil disables caching
	Timings        bool       // append an ObsTimings diagnostic per unit
	Observer       PhaseObserver
}

// Result is the outcome of one unit.
type Result struct {
	Path   string
	FileID source.FileID
	// Items and Bindings hold the expanded unit. They are nil when reading
	// failed or the output came from the cache.
	Items    []*syntax.Syntax
	Bindings *binding.Map
	Output   reduce.Output
	OK       bool
	Cached   bool
	Bag      *diag.Bag
	Timing   *observ.Report
}

// RunUnit reads, expands and reduces the file registered under id.
func RunUnit(ctx context.Context, fs *source.FileSet, id source.FileID, unit Unit, opts Options) *Result {
	file := fs.Get(id)
	res := &Result{Path: unit.Path, FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}
	if file == nil {
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("file %d is not loaded", id)))
		return res
	}

	started := time.Now()
	ctx, span := trace.Start(trace.WithUnit(ctx, unit.Path), trace.ScopeUnit, "unit")
	defer func() {
		span.WithExtra("ok", strconv.FormatBool(res.OK)).WithExtra("cached", strconv.FormatBool(res.Cached))
		span.End("")
		if opts.Observer != nil {
			opts.Observer(PhaseEvent{Path: unit.Path, Name: "unit", Status: UnitDone, Elapsed: time.Since(started), Failed: !res.OK})
		}
	}()

	timer := observ.NewTimer()
	defer func() {
		if !opts.Timings {
			return
		}
		report := timer.Report()
		res.Timing = &report
		recordTimings(res.Bag, unit.Path, report)
	}()

	var scriptDigest Digest
	if unit.Script != nil {
		scriptDigest = unit.Script.Digest
	}
	key := unitKey(file.Hash, scriptDigest, opts.Phase)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			diag.ReportWarning(diag.NewBagReporter(res.Bag), diag.IOCacheError, source.Span{File: id}, err.Error()).Emit()
		}
		if hit {
			res.Output = reduce.Output{Text: payload.Text, Resolved: payload.Resolved, Renamed: payload.Renamed}
			res.OK, res.Cached = true, true
			return res
		}
	}

	reporter := diag.NewDedupReporter(diag.NewBagReporter(res.Bag))
	p := newPasses(ctx, timer, opts.Observer, unit.Path)

	end := p.begin("read")
	read := reader.Read(file, reader.Options{Reporter: reporter})
	end(fmt.Sprintf("%d tokens", read.Tokens))
	if res.Bag.HasErrors() {
		return res
	}
	res.Items, res.Bindings = read.Items, read.Bindings

	if unit.Script != nil {
		end = p.begin("mark")
		expanded, err := unit.Script.Apply(read.Items, read.Bindings)
		if err != nil {
			end("failed")
			diag.ReportError(reporter, ScenarioCode(err), source.Span{File: id}, err.Error()).Emit()
			return res
		}
		end(fmt.Sprintf("%d scopes, %d bindings", len(expanded.Scopes), expanded.Added))
		res.Items = expanded.Items
	}

	end = p.begin("codegen")
	out, ok := reduce.Unit(ctx, res.Items, reduce.Options{Phase: opts.Phase, Reporter: reporter})
	end(fmt.Sprintf("%d renamed", out.Renamed))
	res.Output, res.OK = out, ok && !res.Bag.HasErrors()

	if res.OK && opts.Cache != nil {
		payload := &DiskPayload{
			Schema:   diskCacheSchemaVersion,
			Path:     unit.Path,
			Text:     out.Text,
			Resolved: out.Resolved,
			Renamed:  out.Renamed,
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: id}, err.Error()).Emit()
		}
	}
	return res
}

// ScenarioCode maps a scenario error to its diagnostic code.
func ScenarioCode(err error) diag.Code {
	switch {
	case errors.Is(err, scenario.ErrUnknownOp):
		return diag.ScnUnknownOp
	case errors.Is(err, scenario.ErrBadRange):
		return diag.ScnBadRange
	case errors.Is(err, scenario.ErrBadBinding):
		return diag.ScnBadBinding
	case errors.Is(err, scenario.ErrUnknownScope):
		return diag.ScnUnknownName
	case errors.Is(err, scenario.ErrBadStep):
		return diag.ScnBadStep
	}
	return diag.ScnInfo
}

// passes times the pipeline passes of one unit on the timer, the tracer and
// the observer at once.
type passes struct {
	ctx      context.Context
	timer    *observ.Timer
	observer PhaseObserver
	path     string
}

func newPasses(ctx context.Context, timer *observ.Timer, observer PhaseObserver, path string) *passes {
	return &passes{
		ctx:      ctx,
		timer:    timer,
		observer: observer,
		path:     path,
	}
}

func (p *passes) begin(name string) func(note string) {
	start := time.Now()
	stop := p.timer.Start(name)
	_, span := trace.Start(p.ctx, trace.ScopePass, name)
	if p.observer != nil {
		p.observer(PhaseEvent{Path: p.path, Name: name, Status: PhaseStart})
	}
	return func(note string) {
		stop(note)
		span.End(note)
		if p.observer != nil {
			p.observer(PhaseEvent{Path: p.path, Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
		}
	}
}
