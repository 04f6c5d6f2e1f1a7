package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored_PlainWhenNoColor(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = true

	Version = "1.2.3-rc.1"
	if got := Colored(); got != "1.2.3-rc.1" {
		t.Errorf("Colored() = %q", got)
	}
	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Errorf("Colored() = %q", got)
	}
}

func TestBanner_OptionalFields(t *testing.T) {
	origCommit, origDate, origNoColor := GitCommit, BuildDate, color.NoColor
	defer func() { GitCommit, BuildDate, color.NoColor = origCommit, origDate, origNoColor }()
	color.NoColor = true

	GitCommit, BuildDate = "", ""
	if got := Banner(); strings.Contains(got, "commit") || strings.Contains(got, "built") {
		t.Errorf("empty fields rendered: %q", got)
	}
	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	got := Banner()
	for _, want := range []string{"sweet ", "commit: abc123", "built: 2024-01-15T10:30:00Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("Banner() lacks %q: %q", want, got)
		}
	}
}
