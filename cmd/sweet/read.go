package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sweet/internal/diag"
	"sweet/internal/driver"
	"sweet/internal/reader"
	"sweet/internal/scope"
	"sweet/internal/source"
	"sweet/internal/syntax"
)

var readFlags diagFlags

var readCmd = &cobra.Command{
	Use:   "read [flags] file.js",
	Short: "Dump the syntax tree of a source file",
	Long: `Read breaks a source file into syntax objects and prints the tree with
the kind, location and scope set of every node. With --script the tree is
printed after marking.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().String("script", "", "scenario script (TOML) to apply before dumping")
	addDiagFlags(readCmd, &readFlags)
}

func runRead(cmd *cobra.Command, args []string) error {
	if err := readFlags.validate(); err != nil {
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

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	res := &driver.Result{Path: args[0], FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}
	read := reader.Read(fs.Get(id), reader.Options{Reporter: diag.NewBagReporter(res.Bag)})
	items := read.Items
	if script != nil && !res.Bag.HasErrors() {
		expanded, err := script.Apply(items, read.Bindings)
		if err != nil {
			diag.ReportError(diag.NewBagReporter(res.Bag), driver.ScenarioCode(err), source.Span{File: id}, err.Error()).Emit()
		} else {
			items = expanded.Items
		}
	}

	dumpTree(cmd.OutOrStdout(), fs, items, opts.Phase)
	if err := printDiagnostics(cmd, fs, []*driver.Result{res}, readFlags); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("%s has errors", args[0])
	}
	return nil
}

// dumpKinds is the order in which kindOf tries kinds; specific kinds come
// before the ones that subsume them.
var dumpKinds = []syntax.Kind{
	syntax.KindEOF,
	syntax.KindSyntaxTemplate,
	syntax.KindBraces,
	syntax.KindBrackets,
	syntax.KindParens,
	syntax.KindDelimiter,
	syntax.KindTemplate,
	syntax.KindNull,
	syntax.KindBoolean,
	syntax.KindNumber,
	syntax.KindString,
	syntax.KindRegularExpression,
	syntax.KindKeyword,
	syntax.KindIdentifier,
	syntax.KindAssign,
	syntax.KindPunctuator,
}

func kindOf(s *syntax.Syntax) string {
	for _, k := range dumpKinds {
		if ok, _ := s.Match(k); ok {
			return k.String()
		}
	}
	return "unknown"
}

func dumpTree(w io.Writer, fs *source.FileSet, items []*syntax.Syntax, phase scope.Phase) {
	for _, item := range items {
		dumpNode(w, fs, item, phase, 0)
	}
}

func dumpNode(w io.Writer, fs *source.FileSet, s *syntax.Syntax, phase scope.Phase, depth int) {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(kindOf(s))
	children := s.Children()
	if children == nil {
		fmt.Fprintf(&sb, " %q", s.String())
	}
	start, end := fs.Resolve(s.Span())
	if start.Line != 0 {
		fmt.Fprintf(&sb, " %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	if set := s.Scopes(phase); set.Len() > 0 {
		fmt.Fprintf(&sb, " %s", set)
	}
	fmt.Fprintln(w, sb.String())

	for _, child := range children {
		dumpNode(w, fs, child, phase, depth+1)
	}
}
