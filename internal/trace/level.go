package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // reserved for crash dumps; emits no spans
	LevelPhase               // driver and pass spans
	LevelDetail              // plus one span per unit
	LevelDebug               // plus node events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// minLevel is the lowest level at which a scope is emitted.
var minLevel = [...]Level{
	ScopeDriver: LevelPhase,
	ScopePass:   LevelPhase,
	ScopeUnit:   LevelDetail,
	ScopeNode:   LevelDebug,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a case-insensitive name to a Level. The empty string
// means off.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(s)
	if name == "" {
		return LevelOff, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at l.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(scope) >= len(minLevel) || scope == 0 {
		return false
	}
	return l >= minLevel[scope]
}
