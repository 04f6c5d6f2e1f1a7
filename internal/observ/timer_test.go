package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	at := time.Unix(0, 0)
	return func() time.Time {
		at = at.Add(step)
		return at
	}
}

func TestTimerReport(t *testing.T) {
	tm := &Timer{clock: fakeClock(time.Millisecond)}
	stopRead := tm.Start("read")
	stopRead("3 tokens")
	stopRead("ignored")
	stopResolve := tm.Start("resolve")
	tm.Start("unfinished")
	stopResolve("")

	want := Report{
		TotalMS: 3,
		Phases: []PhaseReport{
			{Name: "read", DurationMS: 1, Note: "3 tokens"},
			{Name: "resolve", DurationMS: 2},
			{Name: "unfinished", DurationMS: 0},
		},
	}
	got := tm.Report()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	slow, ok := got.Slowest()
	if !ok || slow.Name != "resolve" {
		t.Errorf("Slowest = %+v, %v", slow, ok)
	}
	text := got.String()
	for _, want := range []string{"read", "(3 tokens)", "total"} {
		if !strings.Contains(text, want) {
			t.Errorf("table lacks %q:\n%s", want, text)
		}
	}
}

func TestEmptyReport(t *testing.T) {
	r := NewTimer().Report()
	if r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("report = %+v", r)
	}
	if _, ok := r.Slowest(); ok {
		t.Fatal("empty report has no slowest pass")
	}
}
