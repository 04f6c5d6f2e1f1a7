package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const configFileName = "sweet.toml"

type projectConfig struct {
	Resolve     resolveConfig     `toml:"resolve"`
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
	Trace       traceConfig       `toml:"trace"`
	Cache       cacheConfig       `toml:"cache"`
}

type resolveConfig struct {
	Phase int `toml:"phase"`
}

type diagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

type cacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// configValue is one file setting destined for a persistent flag.
type configValue struct {
	flag  string
	value string
}

func findSweetToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectConfig decodes path and returns the settings it defines, in
// flag form.
func loadProjectConfig(path string) ([]configValue, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	var values []configValue
	if meta.IsDefined("resolve", "phase") {
		if cfg.Resolve.Phase < 0 {
			return nil, fmt.Errorf("%s: [resolve].phase must be non-negative", path)
		}
		values = append(values, configValue{"phase", strconv.Itoa(cfg.Resolve.Phase)})
	}
	if meta.IsDefined("diagnostics", "max") {
		if cfg.Diagnostics.Max <= 0 {
			return nil, fmt.Errorf("%s: [diagnostics].max must be positive", path)
		}
		values = append(values, configValue{"max-diagnostics", strconv.Itoa(cfg.Diagnostics.Max)})
	}
	if meta.IsDefined("diagnostics", "color") {
		switch cfg.Diagnostics.Color {
		case "auto", "on", "off":
		default:
			return nil, fmt.Errorf("%s: [diagnostics].color must be auto, on or off, got %q", path, cfg.Diagnostics.Color)
		}
		values = append(values, configValue{"color", cfg.Diagnostics.Color})
	}
	if meta.IsDefined("trace", "level") {
		values = append(values, configValue{"trace-level", cfg.Trace.Level})
	}
	if meta.IsDefined("trace", "output") {
		values = append(values, configValue{"trace", cfg.Trace.Output})
	}
	if meta.IsDefined("cache", "enabled") {
		values = append(values, configValue{"no-cache", strconv.FormatBool(!cfg.Cache.Enabled)})
	}
	return values, nil
}

// applyConfig loads --config, or the nearest sweet.toml, and copies its
// settings into every persistent flag not set on the command line.
func applyConfig(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return err
	}
	if path == "" {
		found, ok, err := findSweetToml(".")
		if err != nil || !ok {
			return err
		}
		path = found
	}
	values, err := loadProjectConfig(path)
	if err != nil {
		return err
	}
	for _, v := range values {
		if flags.Changed(v.flag) {
			continue
		}
		if err := flags.Set(v.flag, v.value); err != nil {
			return fmt.Errorf("%s: %s: %w", path, v.flag, err)
		}
	}
	return nil
}
