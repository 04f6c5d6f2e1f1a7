// Package observ measures how long the passes of one unit take.
package observ

import (
	"fmt"
	"strings"
	"time"
)

type lap struct {
	name    string
	started time.Time
	dur     time.Duration
	note    string
	done    bool
}

// Timer records pass durations for one unit. Each unit owns its Timer; it
// is not safe for concurrent use.
type Timer struct {
	laps  []lap
	clock func() time.Time
}

func NewTimer() *Timer { return &Timer{clock: time.Now} }

// Start opens a pass and returns the function that closes it with a note.
// Calling the returned function again has no effect.
func (t *Timer) Start(name string) (stop func(note string)) {
	t.laps = append(t.laps, lap{name: name, started: t.clock()})
	idx := len(t.laps) - 1
	return func(note string) {
		l := &t.laps[idx]
		if l.done {
			return
		}
		l.dur, l.note, l.done = t.clock().Sub(l.started), note, true
	}
}

// PhaseReport is one closed or still running pass.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the JSON-ready form of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the passes in start order. Passes that were never
// stopped count as zero.
func (t *Timer) Report() Report {
	var r Report
	for _, l := range t.laps {
		ms := millis(l.dur)
		r.TotalMS += ms
		r.Phases = append(r.Phases, PhaseReport{Name: l.name, DurationMS: ms, Note: l.note})
	}
	return r
}

// Slowest returns the longest pass, if any.
func (r Report) Slowest() (PhaseReport, bool) {
	if len(r.Phases) == 0 {
		return PhaseReport{}, false
	}
	best := r.Phases[0]
	for _, p := range r.Phases[1:] {
		if p.DurationMS > best.DurationMS {
			best = p
		}
	}
	return best, true
}

// String lays the passes out as an aligned table ending in a total row.
func (r Report) String() string {
	var sb strings.Builder
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "%-12s %9.3f ms", name, ms)
		if note != "" {
			sb.WriteString("  (" + note + ")")
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
