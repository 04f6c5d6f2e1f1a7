package scenario

import (
	"crypto/sha256"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
)

// Op is a scope operation applied by a step.
type Op string

const (
	OpAdd    Op = "add"
	OpFlip   Op = "flip"
	OpRemove Op = "remove"
)

// Script is a decoded scenario.
type Script struct {
	Name     string        `toml:"-"`
	Digest   [32]byte      `toml:"-"` // sha256 of the script text
	Phase    int           `toml:"phase"`
	Scopes   []string      `toml:"scopes"`
	Steps    []Step        `toml:"step"`
	Bindings []BindingDecl `toml:"binding"`
}

// Step applies one scope operation.
type Step struct {
	Op    Op     `toml:"op"`
	Scope string `toml:"scope"`
	Phase *int   `toml:"phase"`
	// Range is [start, end) over top-level items; empty means every item.
	Range []int `toml:"range"`
	// Name limits the step to identifier and keyword leaves with this text.
	Name string `toml:"name"`
}

// BindingDecl registers one binding record.
type BindingDecl struct {
	Name   string   `toml:"name"`
	Scopes []string `toml:"scopes"`
	// Symbol overrides the base name of the generated symbol.
	Symbol      string   `toml:"symbol"`
	Alias       string   `toml:"alias"`
	AliasScopes []string `toml:"alias_scopes"`
	AliasPhase  *int     `toml:"alias_phase"`
	// Unique skips the record when name already has the same scope set.
	Unique bool `toml:"unique"`
}

// Load reads and validates the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a script. name labels errors.
func Parse(data []byte, name string) (*Script, error) {
	var s Script
	meta, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: unknown keys %s", name, ErrBadStep, strings.Join(keys, ", "))
	}
	s.Name = name
	s.Digest = sha256.Sum256(data)
	s.normalize()
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &s, nil
}

// The reader stores identifiers in NFC; script names must compare equal.
func (s *Script) normalize() {
	for i := range s.Steps {
		s.Steps[i].Name = norm.NFC.String(s.Steps[i].Name)
	}
	for i := range s.Bindings {
		b := &s.Bindings[i]
		b.Name = norm.NFC.String(b.Name)
		b.Alias = norm.NFC.String(b.Alias)
	}
}

func (s *Script) validate() error {
	if s.Phase < 0 {
		return fmt.Errorf("%w: phase %d is negative", ErrBadStep, s.Phase)
	}
	declared := make(map[string]bool, len(s.Scopes))
	for _, name := range s.Scopes {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty scope name", ErrBadStep)
		}
		if declared[name] {
			return fmt.Errorf("%w: scope %q declared twice", ErrBadStep, name)
		}
		declared[name] = true
	}
	known := func(names ...string) error {
		for _, n := range names {
			if !declared[n] {
				return fmt.Errorf("%w: %q", ErrUnknownScope, n)
			}
		}
		return nil
	}

	for i, st := range s.Steps {
		switch st.Op {
		case OpAdd, OpFlip, OpRemove:
		case "":
			return fmt.Errorf("step %d: %w: missing op", i+1, ErrBadStep)
		default:
			return fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownOp, st.Op)
		}
		if st.Scope == "" {
			return fmt.Errorf("step %d: %w: missing scope", i+1, ErrBadStep)
		}
		if err := known(st.Scope); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if st.Phase != nil && *st.Phase < 0 {
			return fmt.Errorf("step %d: %w: phase %d is negative", i+1, ErrBadStep, *st.Phase)
		}
		switch len(st.Range) {
		case 0:
		case 2:
			if st.Range[0] < 0 || st.Range[1] < st.Range[0] {
				return fmt.Errorf("step %d: %w: [%d, %d)", i+1, ErrBadRange, st.Range[0], st.Range[1])
			}
		default:
			return fmt.Errorf("step %d: %w: range needs two bounds, got %d", i+1, ErrBadRange, len(st.Range))
		}
	}

	for i, b := range s.Bindings {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("binding %d: %w: missing name", i+1, ErrBadBinding)
		}
		if err := known(b.Scopes...); err != nil {
			return fmt.Errorf("binding %d: %w", i+1, err)
		}
		if b.Alias == "" && (len(b.AliasScopes) > 0 || b.AliasPhase != nil) {
			return fmt.Errorf("binding %d: %w: alias scopes without alias", i+1, ErrBadBinding)
		}
		if err := known(b.AliasScopes...); err != nil {
			return fmt.Errorf("binding %d: %w", i+1, err)
		}
		if b.AliasPhase != nil && *b.AliasPhase < 0 {
			return fmt.Errorf("binding %d: %w: alias phase %d is negative", i+1, ErrBadBinding, *b.AliasPhase)
		}
		if s.selfAlias(b) {
			return fmt.Errorf("binding %d: %w: %q aliases itself", i+1, ErrBadBinding, b.Name)
		}
	}
	return nil
}

// selfAlias reports a binding whose alias is its own name under the same
// scopes and phase, which would resolve back to the binding forever.
func (s *Script) selfAlias(b BindingDecl) bool {
	if b.Alias != b.Name || (b.AliasPhase != nil && *b.AliasPhase != s.Phase) {
		return false
	}
	return sameNames(b.Scopes, b.AliasScopes)
}

func sameNames(a, b []string) bool {
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(slices.Compact(x), slices.Compact(y))
}
