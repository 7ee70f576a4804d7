package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"flexiblur/internal/blur"
)

// Toolbar holds the main action buttons and the blur mode dropdown.
type Toolbar struct {
	container      *fyne.Container
	loadButton     *widget.Button
	roiButton      *widget.Button
	clearROIButton *widget.Button
	startButton    *widget.Button
	cancelButton   *widget.Button
	saveButton     *widget.Button
	modeSelect     *widget.Select

	loadHandler       func()
	roiHandler        func()
	clearROIHandler   func()
	startHandler      func()
	cancelHandler     func()
	saveHandler       func()
	modeChangeHandler func(string)
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.loadButton = widget.NewButton("Load Media", func() {
		if t.loadHandler != nil {
			t.loadHandler()
		}
	})
	t.loadButton.Importance = widget.HighImportance

	t.roiButton = widget.NewButton("Select ROI", func() {
		if t.roiHandler != nil {
			t.roiHandler()
		}
	})

	t.clearROIButton = widget.NewButton("Clear ROI", func() {
		if t.clearROIHandler != nil {
			t.clearROIHandler()
		}
	})

	t.startButton = widget.NewButton("Start Processing", func() {
		if t.startHandler != nil {
			t.startHandler()
		}
	})
	t.startButton.Importance = widget.HighImportance

	t.cancelButton = widget.NewButton("Cancel", func() {
		if t.cancelHandler != nil {
			t.cancelHandler()
		}
	})
	t.cancelButton.Disable()

	t.saveButton = widget.NewButton("Save Results", func() {
		if t.saveHandler != nil {
			t.saveHandler()
		}
	})
	t.saveButton.Disable()

	t.modeSelect = widget.NewSelect(blur.ModeNames(), func(name string) {
		if t.modeChangeHandler != nil {
			t.modeChangeHandler(name)
		}
	})
	t.modeSelect.SetSelected(string(blur.ModeHeavy))
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.loadButton,
		t.roiButton,
		t.clearROIButton,
		widget.NewSeparator(),
		widget.NewLabel("Mode:"),
		t.modeSelect,
		widget.NewSeparator(),
		t.startButton,
		t.cancelButton,
		t.saveButton,
	)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetLoadHandler(handler func())             { t.loadHandler = handler }
func (t *Toolbar) SetROIHandler(handler func())              { t.roiHandler = handler }
func (t *Toolbar) SetClearROIHandler(handler func())         { t.clearROIHandler = handler }
func (t *Toolbar) SetStartHandler(handler func())            { t.startHandler = handler }
func (t *Toolbar) SetCancelHandler(handler func())           { t.cancelHandler = handler }
func (t *Toolbar) SetSaveHandler(handler func())             { t.saveHandler = handler }
func (t *Toolbar) SetModeChangeHandler(handler func(string)) { t.modeChangeHandler = handler }

// SetProcessingActive flips the buttons between idle and running states.
func (t *Toolbar) SetProcessingActive(active bool) {
	if active {
		t.startButton.Disable()
		t.loadButton.Disable()
		t.cancelButton.Enable()
	} else {
		t.startButton.Enable()
		t.loadButton.Enable()
		t.cancelButton.Disable()
	}
}

// EnableSave unlocks the save button once results exist.
func (t *Toolbar) EnableSave() {
	t.saveButton.Enable()
}
