package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sweet/internal/diag"
	"sweet/internal/diagfmt"
	"sweet/internal/driver"
	"sweet/internal/source"
)

// diagFlags are the diagnostic rendering flags shared by the commands that
// run the pipeline.
type diagFlags struct {
	format    string
	fullPath  bool
	withNotes bool
}

func addDiagFlags(cmd *cobra.Command, f *diagFlags) {
	cmd.Flags().StringVar(&f.format, "format", "pretty", "diagnostics format (pretty|short|json)")
	cmd.Flags().BoolVar(&f.fullPath, "fullpath", false, "print absolute paths in diagnostics")
	cmd.Flags().BoolVar(&f.withNotes, "with-notes", true, "include diagnostic notes")
}

func (f diagFlags) validate() error {
	switch f.format {
	case "pretty", "short", "json":
		return nil
	default:
		return fmt.Errorf("unknown format: %s", f.format)
	}
}

func (f diagFlags) pathMode() diagfmt.PathMode {
	if f.fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}

func (f diagFlags) displayPath(path string) string {
	if f.fullPath {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	}
	return path
}

// printDiagnostics writes the diagnostics of results to stderr. Units with
// an empty bag are skipped in pretty mode.
func printDiagnostics(cmd *cobra.Command, fs *source.FileSet, results []*driver.Result, f diagFlags) error {
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	return writeDiagnostics(cmd.ErrOrStderr(), fs, results, f, colored)
}

func writeDiagnostics(w io.Writer, fs *source.FileSet, results []*driver.Result, f diagFlags, colored bool) error {
	for _, r := range results {
		r.Bag.Sort()
	}

	switch f.format {
	case "short":
		var all []diag.Diagnostic
		for _, r := range results {
			all = append(all, r.Bag.Items()...)
		}
		if out := diag.FormatShort(all, fs, f.withNotes); out != "" {
			fmt.Fprintln(w, out)
		}
	case "pretty":
		opts := diagfmt.PrettyOpts{
			Color:     colored,
			Context:   2,
			PathMode:  f.pathMode(),
			ShowNotes: f.withNotes,
		}
		printed := 0
		for _, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			if printed > 0 {
				fmt.Fprintln(w)
			}
			if len(results) > 1 {
				fmt.Fprintf(w, "== %s ==\n", f.displayPath(r.Path))
			}
			diagfmt.Pretty(w, r.Bag, fs, opts)
			printed++
		}
	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         f.pathMode(),
			IncludeNotes:     f.withNotes,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			output[f.displayPath(r.Path)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, opts)
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", f.format)
	}
	return nil
}

func countFailed(results []*driver.Result) int {
	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}
	return failed
}
