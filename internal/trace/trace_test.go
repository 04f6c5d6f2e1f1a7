package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{LevelDebug, Scope(0), false},
		{LevelDebug, Scope(99), false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(strings.ToUpper(name))
		if err != nil || l.String() != name {
			t.Errorf("ParseLevel(%q) = %v, %v", name, l, err)
		}
	}
	if l, err := ParseLevel(""); err != nil || l != LevelOff {
		t.Errorf("ParseLevel(\"\") = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"stream", "ring", "both"} {
		m, err := ParseMode(name)
		if err != nil || m.String() != name {
			t.Errorf("ParseMode(%q) = %v, %v", name, m, err)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	ctx := WithUnit(WithTracer(context.Background(), tr), "a.js")

	passCtx, pass := Start(ctx, ScopePass, "resolve")
	Mark(passCtx, ScopeNode, "rename", "x -> x_1")
	pass.WithExtra("renamed", "1").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d events:\n%s", len(lines), buf.String())
	}
	var events []jsonEvent
	for _, line := range lines {
		var ev jsonEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatal(err)
		}
		events = append(events, ev)
	}
	if events[1].Kind != "point" || events[1].ParentID != events[0].SpanID || events[1].Unit != "a.js" {
		t.Errorf("point event = %+v", events[1])
	}
	if last := events[2]; last.Kind != "end" || last.Name != "resolve" || last.Detail != "ok" || last.Extra["renamed"] != "1" {
		t.Errorf("end event = %+v", last)
	}
	if !(events[0].Seq < events[1].Seq && events[1].Seq < events[2].Seq) {
		t.Errorf("sequence not increasing: %d %d %d", events[0].Seq, events[1].Seq, events[2].Seq)
	}
}

func TestStartSkipsFilteredScopes(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	passCtx, pass := Start(ctx, ScopePass, "read")
	unitCtx, unit := Start(passCtx, ScopeUnit, "unit")
	if unit.ID() != 0 || unitCtx != passCtx {
		t.Fatalf("unit span must be inert at LevelPhase")
	}
	if SpanID(unitCtx) != pass.ID() {
		t.Fatalf("children must attach to the pass span")
	}
	if d := unit.WithExtra("k", "v").End(""); d != 0 {
		t.Fatalf("inert End = %v", d)
	}
	pass.End("")
	if got := len(ring.Snapshot()); got != 2 {
		t.Fatalf("stored %d events, want 2", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	for _, name := range []string{"a", "b", "c"} {
		Mark(ctx, ScopeNode, name, "")
	}
	got := tr.Snapshot()
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "c" {
		t.Fatalf("snapshot = %+v", got)
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "• c") {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a, b := NewRingTracer(8, LevelPhase), NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, a, b)
	_, span := Start(WithTracer(context.Background(), m), ScopeDriver, "run")
	span.End("")
	if len(a.Snapshot()) != 2 || len(b.Snapshot()) != 2 {
		t.Fatalf("fan-out lost events")
	}
	if m.Ring() != a {
		t.Fatalf("Ring() did not return the first ring")
	}
}

type failingTracer struct{ nopTracer }

func (failingTracer) Close() error { return errors.New("boom") }

func TestMultiTracerJoinsErrors(t *testing.T) {
	m := NewMultiTracer(LevelPhase, failingTracer{}, NewRingTracer(1, LevelPhase), failingTracer{})
	err := m.Close()
	if err == nil || strings.Count(err.Error(), "boom") != 2 {
		t.Fatalf("Close = %v, want both failures", err)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Errorf("empty context must yield Nop")
	}
	tr := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), tr)
	ctx = WithUnit(ctx, "u.js")
	if FromContext(ctx) != tr {
		t.Errorf("tracer lost after WithUnit")
	}
	ctx, span := Start(ctx, ScopePass, "read")
	if SpanID(ctx) != span.ID() || span.ID() == 0 {
		t.Errorf("span not carried by context")
	}
	if ev := tr.Snapshot()[0]; ev.Unit != "u.js" {
		t.Errorf("event unit = %q", ev.Unit)
	}
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}

	tr, err = New(Config{Level: LevelPhase, Mode: ModeRing})
	if _, ok := tr.(*RingTracer); err != nil || !ok {
		t.Fatalf("New(ring) = %T, %v", tr, err)
	}

	path := filepath.Join(t.TempDir(), "trace.ndjson")
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok || multi.Ring() == nil {
		t.Fatalf("New(both) = %T", tr)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(9)}); err == nil {
		t.Fatal("unknown mode accepted")
	}
}

func TestFormatFor(t *testing.T) {
	if formatFor("out.ndjson") != FormatNDJSON || formatFor("out.json") != FormatNDJSON || formatFor("-") != FormatText {
		t.Fatal("format detection")
	}
}
