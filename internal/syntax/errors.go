package syntax

import (
	"errors"
	"fmt"
	"strings"

	"sweet/internal/scope"
)

var (
	// ErrInvalidKind reports an unknown kind passed to Match or Create.
	ErrInvalidKind = errors.New("invalid syntax kind")
	// ErrUnconstructibleKind reports Create on a kind without a constructor.
	ErrUnconstructibleKind = errors.New("cannot create syntax from kind")
	// ErrInvalidOperation reports a kind-specific accessor used on the wrong kind.
	ErrInvalidOperation = errors.New("invalid syntax operation")
	// ErrMissingLocation reports a token without location info.
	ErrMissingLocation = errors.New("token has no location info")
	// ErrAmbiguousBinding reports two or more equally specific bindings.
	ErrAmbiguousBinding = errors.New("ambiguous binding")
	// ErrMissingPhase reports Resolve called without a phase.
	ErrMissingPhase = errors.New("must provide a phase to resolve")
	// ErrAliasCycle reports an alias chain that leads back to itself.
	ErrAliasCycle = errors.New("alias cycle")
)

// AmbiguousBindingError is returned by Resolve when the largest matching
// scope sets tie.
type AmbiguousBindingError struct {
	Name       string
	Phase      scope.Phase
	UseSite    scope.Set
	Candidates []scope.Set // every subset-matching record, largest first
}

func (e *AmbiguousBindingError) Error() string {
	parts := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		parts[i] = c.String()
	}
	return fmt.Sprintf("scope set %s of %q has ambiguous subsets %s", e.UseSite, e.Name, strings.Join(parts, ", "))
}

// Is makes errors.Is(err, ErrAmbiguousBinding) hold.
func (e *AmbiguousBindingError) Is(target error) bool {
	return target == ErrAmbiguousBinding
}
