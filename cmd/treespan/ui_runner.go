package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"treespan/internal/driver"
	"treespan/internal/treebank"
	"treespan/internal/ui"
)

type loadOutcome struct {
	result *driver.LoadResult
	err    error
}

// runLoadWithUI runs driver.Load while a progress view renders on stderr,
// keeping stdout free for the trees.
func runLoadWithUI(ctx context.Context, title string, files []string, req driver.LoadRequest) (*driver.LoadResult, error) {
	events := make(chan treebank.Event, 256)
	outcomeCh := make(chan loadOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Options.Progress = treebank.ChannelSink{Ch: events}
		res, err := driver.Load(ctx, reqCopy)
		outcomeCh <- loadOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
