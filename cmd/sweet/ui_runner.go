package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sweet/internal/driver"
	"sweet/internal/source"
	"sweet/internal/ui"
)

type runOutcome struct {
	fs      *source.FileSet
	results []*driver.Result
	err     error
}

// runWithProgress runs units under a progress view drawn on stderr.
func runWithProgress(ctx context.Context, title string, units []driver.Unit, opts driver.Options) (*source.FileSet, []*driver.Result, error) {
	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan runOutcome, 1)

	files := make([]string, len(units))
	for i, u := range units {
		files[i] = u.Path
	}

	go func() {
		optsCopy := opts
		optsCopy.Observer = func(ev driver.PhaseEvent) { events <- ev }
		fs, results, err := driver.Run(ctx, units, optsCopy)
		outcomeCh <- runOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
