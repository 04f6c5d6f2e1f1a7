package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sweet/internal/trace"
	"sweet/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sweet",
	Short: "Hygienic syntax resolution toolkit",
	Long:  `sweet reads JavaScript sources into syntax objects, marks them with scenario scripts and resolves every name hygienically`,
	SilenceUsage: true,
}

// cleanup stops tracing and profiling; PersistentPreRunE replaces it.
var cleanup = func() {}

// main registers the subcommands and persistent flags and executes the root
// command, exiting with status 1 on error.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := applyConfig(cmd); err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopTracing, err := setupTracing(cmd)
		if err != nil {
			stopProfiling()
			return err
		}
		cleanup = func() {
			stopTracing()
			stopProfiling()
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) {
		cleanup()
	}

	if err := rootCmd.Execute(); err != nil {
		// PersistentPostRun is skipped when RunE fails
		cleanup()
		os.Exit(1)
	}
}

func registerPersistentFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.Int("jobs", 0, "parallel units (0 = GOMAXPROCS)")
	pf.Int("phase", 0, "expansion phase to resolve at")
	pf.String("config", "", "path to sweet.toml (default: search upward from the working directory)")
	pf.Bool("no-cache", false, "disable the on-disk result cache")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode=ring|both")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime execution trace to file")
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f)), nil
}

// driverSpan opens the command-wide trace span, makes it the parent of
// everything run under cmd.Context() and returns its end function.
func driverSpan(cmd *cobra.Command) func() {
	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, cmd.Name())
	cmd.SetContext(ctx)
	return func() { span.End("") }
}
