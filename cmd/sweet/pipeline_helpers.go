package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sweet/internal/driver"
	"sweet/internal/scenario"
	"sweet/internal/scope"
)

// driverOptions builds driver options from the persistent flags. withCache
// is false for commands that need the expanded tree, which cached results
// do not carry.
func driverOptions(cmd *cobra.Command, withCache bool) (driver.Options, error) {
	flags := cmd.Root().PersistentFlags()
	phase, err := flags.GetInt("phase")
	if err != nil {
		return driver.Options{}, err
	}
	if phase < 0 {
		return driver.Options{}, fmt.Errorf("--phase must be non-negative, got %d", phase)
	}
	maxDiag, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return driver.Options{}, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return driver.Options{}, err
	}
	opts := driver.Options{
		Phase:          scope.Phase(phase),
		MaxDiagnostics: maxDiag,
		Jobs:           jobs,
		Timings:        timings,
	}

	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return driver.Options{}, err
	}
	if withCache && !noCache {
		cache, err := driver.OpenDiskCache("sweet")
		if err != nil {
			if quiet, _ := flags.GetBool("quiet"); !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}
	return opts, nil
}

// loadScript reads the --script flag of cmd; an empty flag yields nil.
func loadScript(cmd *cobra.Command) (*scenario.Script, error) {
	path, err := cmd.Flags().GetString("script")
	if err != nil {
		return nil, fmt.Errorf("failed to get script flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	script, err := scenario.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}
	return script, nil
}

// collectUnits expands directory arguments into their sources and pairs
// every file with script.
func collectUnits(args []string, script *scenario.Script) ([]driver.Unit, error) {
	var units []driver.Unit
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		if !st.IsDir() {
			units = append(units, driver.Unit{Path: arg, Script: script})
			continue
		}
		files, err := driver.ListSources(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no .js files in %s", arg)
		}
		for _, f := range files {
			units = append(units, driver.Unit{Path: f, Script: script})
		}
	}
	return units, nil
}
