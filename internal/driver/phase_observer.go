package driver

import "time"

// PhaseStatus says which boundary a PhaseEvent marks.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
	UnitDone // Name is "unit"; sent once per unit, cached or not
)

// PhaseEvent is one pass boundary of one unit. Elapsed is set on PhaseEnd
// and UnitDone; Failed only on UnitDone.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Failed  bool
}

// PhaseObserver is called from every worker goroutine and must be safe for
// concurrent use.
type PhaseObserver func(PhaseEvent)
