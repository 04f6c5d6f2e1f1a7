package reduce

import (
	"errors"

	"sweet/internal/diag"
	"sweet/internal/syntax"
)

// HygieneCode maps a syntax error to its diagnostic code.
func HygieneCode(err error) diag.Code {
	switch {
	case errors.Is(err, syntax.ErrAmbiguousBinding):
		return diag.HygAmbiguousBinding
	case errors.Is(err, syntax.ErrAliasCycle):
		return diag.HygAliasCycle
	case errors.Is(err, syntax.ErrMissingPhase):
		return diag.HygMissingPhase
	case errors.Is(err, syntax.ErrMissingLocation):
		return diag.HygMissingLocation
	case errors.Is(err, syntax.ErrInvalidOperation):
		return diag.HygInvalidOperation
	case errors.Is(err, syntax.ErrUnconstructibleKind):
		return diag.HygUnconstructibleKind
	case errors.Is(err, syntax.ErrInvalidKind):
		return diag.HygInvalidKind
	}
	return diag.HygInfo
}

// ReportHygiene reports err against stx.
func ReportHygiene(r diag.Reporter, stx *syntax.Syntax, err error) {
	b := diag.ReportError(r, HygieneCode(err), stx.Span(), err.Error())
	var amb *syntax.AmbiguousBindingError
	if errors.As(err, &amb) {
		for _, c := range amb.Candidates {
			b.WithNote(stx.Span(), "candidate binding with scopes "+c.String())
		}
	}
	b.Emit()
}
