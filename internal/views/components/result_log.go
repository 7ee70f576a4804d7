package components

import (
	"fmt"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"flexiblur/internal/services"
)

// ResultLog lists per-file outcomes of the last batch.
type ResultLog struct {
	container *fyne.Container
	list      *widget.List
	entries   []string
}

func NewResultLog() *ResultLog {
	rl := &ResultLog{}

	rl.list = widget.NewList(
		func() int { return len(rl.entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(rl.entries[id])
		},
	)

	rl.container = container.NewStack(rl.list)
	return rl
}

func (rl *ResultLog) GetContainer() *fyne.Container {
	return rl.container
}

// Append adds one file outcome to the log.
func (rl *ResultLog) Append(result services.FileResult) {
	name := filepath.Base(result.InputPath)

	var entry string
	if result.Err != nil {
		entry = fmt.Sprintf("✗ %s: %v", name, result.Err)
	} else {
		entry = fmt.Sprintf("✓ %s (%s)", name, result.Duration.Round(time.Millisecond))
	}

	rl.entries = append(rl.entries, entry)
	rl.list.Refresh()
}

// Clear drops all entries.
func (rl *ResultLog) Clear() {
	rl.entries = nil
	rl.list.Refresh()
}
