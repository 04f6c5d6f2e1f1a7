package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sweet/internal/driver"
	"sweet/internal/source"
)

var resolveFlags diagFlags

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] <file|dir>...",
	Short: "Mark sources with a scenario and print the hygienically renamed code",
	Long: `Resolve reads every source, applies the scenario script (if any) and
prints the code with each name replaced by what it resolves to. Units with
errors produce no output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("script", "", "scenario script (TOML) applied to every unit")
	resolveCmd.Flags().Bool("progress", false, "show a progress view on stderr (terminals only)")
	addDiagFlags(resolveCmd, &resolveFlags)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if err := resolveFlags.validate(); err != nil {
		return err
	}
	script, err := loadScript(cmd)
	if err != nil {
		return err
	}
	units, err := collectUnits(args, script)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, true)
	if err != nil {
		return err
	}

	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return err
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); quiet || !isTerminal(os.Stderr) {
		showProgress = false
	}

	end := driverSpan(cmd)
	var (
		fs      *source.FileSet
		results []*driver.Result
	)
	if showProgress {
		fs, results, err = runWithProgress(cmd.Context(), "resolving", units, opts)
	} else {
		fs, results, err = driver.Run(cmd.Context(), units, opts)
	}
	end()
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		if !r.OK {
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(out, "// == %s ==\n", resolveFlags.displayPath(r.Path))
		}
		fmt.Fprintln(out, r.Output.Text)
	}

	if err := printDiagnostics(cmd, fs, results, resolveFlags); err != nil {
		return err
	}
	if resolveFlags.format == "pretty" {
		for _, r := range results {
			if r.Timing != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "timings for %s:\n%s", resolveFlags.displayPath(r.Path), r.Timing)
			}
		}
	}
	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d units failed", failed, len(results))
	}
	return nil
}
