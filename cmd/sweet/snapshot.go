package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sweet/internal/diag"
	"sweet/internal/driver"
	"sweet/internal/reduce"
	"sweet/internal/snapshot"
	"sweet/internal/source"
)

var snapshotFlags diagFlags

var snapshotCmd = &cobra.Command{
	Use:   "snapshot (-o out.snap [--script s] file.js | --load in.snap)",
	Short: "Save an expanded unit or resolve a saved one",
	Long: `Snapshot writes the expanded syntax of a unit together with its bindings
to a msgpack file. With --load it reads such a file back with fresh scopes
and prints the resolved code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().String("script", "", "scenario script (TOML)")
	snapshotCmd.Flags().StringP("output", "o", "", "snapshot file to write")
	snapshotCmd.Flags().String("load", "", "snapshot file to resolve")
	snapshotCmd.MarkFlagsMutuallyExclusive("output", "load")
	snapshotCmd.MarkFlagsOneRequired("output", "load")
	addDiagFlags(snapshotCmd, &snapshotFlags)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if err := snapshotFlags.validate(); err != nil {
		return err
	}
	load, err := cmd.Flags().GetString("load")
	if err != nil {
		return err
	}
	if load != "" {
		if len(args) > 0 {
			return errors.New("--load takes no source file")
		}
		return loadSnapshot(cmd, load)
	}
	if len(args) != 1 {
		return errors.New("snapshot needs exactly one source file")
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	return writeSnapshot(cmd, args[0], output)
}

func writeSnapshot(cmd *cobra.Command, path, output string) error {
	script, err := loadScript(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, false)
	if err != nil {
		return err
	}

	end := driverSpan(cmd)
	fs, results, err := driver.Run(cmd.Context(), []driver.Unit{{Path: path, Script: script}}, opts)
	end()
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}
	if err := printDiagnostics(cmd, fs, results, snapshotFlags); err != nil {
		return err
	}
	res := results[0]
	if res.Items == nil {
		return fmt.Errorf("%s could not be expanded", path)
	}
	if err := snapshot.WriteFile(output, path, res.Items, res.Bindings); err != nil {
		return reportSnapshotError(cmd, output, err)
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
	}
	return nil
}

func loadSnapshot(cmd *cobra.Command, path string) error {
	opts, err := driverOptions(cmd, false)
	if err != nil {
		return err
	}
	unit, err := snapshot.ReadFile(path)
	if err != nil {
		return reportSnapshotError(cmd, path, err)
	}

	// Spans still point into the original file set, where a single source
	// was file 0; reload it so locations render when it is still around.
	fs := source.NewFileSet()
	if unit.Source != "" {
		_, _ = fs.Load(unit.Source)
	}

	res := &driver.Result{Path: unit.Source, Items: unit.Items, Bindings: unit.Bindings, Bag: diag.NewBag(opts.MaxDiagnostics)}
	end := driverSpan(cmd)
	res.Output, res.OK = reduce.Unit(cmd.Context(), unit.Items, reduce.Options{
		Phase:    opts.Phase,
		Reporter: diag.NewBagReporter(res.Bag),
	})
	end()

	if res.OK {
		fmt.Fprintln(cmd.OutOrStdout(), res.Output.Text)
	}
	if err := printDiagnostics(cmd, fs, []*driver.Result{res}, snapshotFlags); err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("%s: resolution failed", path)
	}
	return nil
}

// reportSnapshotError prints err as an IO diagnostic and returns it.
func reportSnapshotError(cmd *cobra.Command, path string, err error) error {
	res := &driver.Result{Path: path, Bag: diag.NewBag(1)}
	res.Bag.Add(diag.NewError(diag.IOSnapshotError, source.Span{}, err.Error()))
	if printErr := printDiagnostics(cmd, source.NewFileSet(), []*driver.Result{res}, snapshotFlags); printErr != nil {
		return printErr
	}
	return fmt.Errorf("%s: %w", path, err)
}
