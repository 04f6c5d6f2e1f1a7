package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sweet/internal/diagfmt"
	"sweet/internal/driver"
	"sweet/internal/source"
	"sweet/internal/syntax"
)

var explainFlags diagFlags

var explainCmd = &cobra.Command{
	Use:   "explain --at line:col [flags] file.js",
	Short: "Show how one name resolves",
	Long: `Explain expands the file like resolve does, then prints the scope set of
the identifier at the given position, every binding registered for its name
and which one wins.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().String("script", "", "scenario script (TOML)")
	explainCmd.Flags().String("at", "", "identifier position as line:col (1-based)")
	explainCmd.Flags().Int("width", 48, "maximum table column width")
	addDiagFlags(explainCmd, &explainFlags)
	_ = explainCmd.MarkFlagRequired("at")
}

func runExplain(cmd *cobra.Command, args []string) error {
	at, err := cmd.Flags().GetString("at")
	if err != nil {
		return err
	}
	pos, err := parsePosition(at)
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return err
	}
	script, err := loadScript(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, false)
	if err != nil {
		return err
	}

	end := driverSpan(cmd)
	fs, results, err := driver.Run(cmd.Context(), []driver.Unit{{Path: args[0], Script: script}}, opts)
	end()
	if err != nil {
		return fmt.Errorf("explain failed: %w", err)
	}
	res := results[0]
	if res.Items == nil {
		if err := printDiagnostics(cmd, fs, results, explainFlags); err != nil {
			return err
		}
		return fmt.Errorf("%s could not be expanded", args[0])
	}

	stx := findNameAt(fs, res.Items, pos)
	if stx == nil {
		return fmt.Errorf("no identifier at %s:%d:%d", args[0], pos.Line, pos.Col)
	}

	r, explainErr := stx.Explain(opts.Phase)
	resolved, resolveErr := stx.Resolve(opts.Phase)
	if explainErr != nil {
		resolveErr = explainErr
	}
	all := r.Candidates
	if bm := stx.Bindings(); bm != nil {
		all, _ = bm.Get(r.Name)
	}

	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	start, _ := fs.Resolve(stx.Span())
	diagfmt.Explain(cmd.OutOrStdout(), r, all, resolved, resolveErr, diagfmt.ExplainOpts{
		Color:    colored,
		Location: fmt.Sprintf("%s:%d:%d", explainFlags.displayPath(res.Path), start.Line, start.Col),
		MaxWidth: width,
	})
	return nil
}

// parsePosition parses "line:col" with both parts 1-based.
func parsePosition(s string) (source.LineCol, error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return source.LineCol{}, fmt.Errorf("invalid position %q (expected line:col)", s)
	}
	line, err := strconv.ParseUint(strings.TrimSpace(lineStr), 10, 32)
	if err != nil || line == 0 {
		return source.LineCol{}, fmt.Errorf("invalid line in position %q", s)
	}
	col, err := strconv.ParseUint(strings.TrimSpace(colStr), 10, 32)
	if err != nil || col == 0 {
		return source.LineCol{}, fmt.Errorf("invalid column in position %q", s)
	}
	return source.LineCol{Line: uint32(line), Col: uint32(col)}, nil
}

// findNameAt returns the identifier or keyword leaf covering pos.
func findNameAt(fs *source.FileSet, items []*syntax.Syntax, pos source.LineCol) *syntax.Syntax {
	var found *syntax.Syntax
	for _, item := range items {
		item.Walk(func(s *syntax.Syntax) bool {
			if found != nil {
				return false
			}
			if !s.IsIdentifier() && !s.IsKeyword() {
				return true
			}
			sp := s.Span()
			f := fs.Get(sp.File)
			if f == nil {
				return true
			}
			if off, ok := f.Offset(pos); ok && sp.Contains(off) {
				found = s
			}
			return true
		})
		if found != nil {
			break
		}
	}
	return found
}
