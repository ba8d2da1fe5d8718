package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"umlts/internal/driver"
	"umlts/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// runDirWithUI compiles a directory while rendering progress to out.
func runDirWithUI(ctx context.Context, out io.Writer, dir string, files []string, opts driver.DiagnoseOptions) (*driver.DirResult, error) {
	// queued + working + done на файл: отправка никогда не блокируется
	events := make(chan driver.ProgressEvent, len(files)*3+1)
	outcomeCh := make(chan dirOutcome, 1)

	prev := opts.Progress
	opts.Progress = func(ev driver.ProgressEvent) {
		if prev != nil {
			prev(ev)
		}
		events <- ev
	}

	go func() {
		res, err := driver.DiagnoseDir(ctx, dir, &opts)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("umlts diag "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
