package components

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"flexiblur/internal/blur"
)

// SettingsPanel edits the custom blur parameters and the video time range.
type SettingsPanel struct {
	container *fyne.Container

	ksizeEntry      *widget.Entry
	sigmaEntry      *widget.Entry
	directionSelect *widget.Select
	angleEntry      *widget.Entry
	settingsForm    *fyne.Container

	fullVideoCheck *widget.Check
	startEntry     *widget.Entry
	endEntry       *widget.Entry

	settingsChangeHandler     func(blur.Settings)
	videoOptionsChangeHandler func(fullVideo bool, start, end float64)
}

func NewSettingsPanel() *SettingsPanel {
	sp := &SettingsPanel{}
	sp.createComponents()
	sp.buildLayout()
	sp.ShowSettings(blur.ModeHeavy, blur.DefaultSettings())
	return sp
}

func (sp *SettingsPanel) createComponents() {
	sp.ksizeEntry = widget.NewEntry()
	sp.sigmaEntry = widget.NewEntry()
	sp.angleEntry = widget.NewEntry()

	sp.directionSelect = widget.NewSelect(
		[]string{blur.DirectionHorizontal, blur.DirectionVertical},
		func(string) { sp.emitSettings() },
	)

	sp.ksizeEntry.OnChanged = func(string) { sp.emitSettings() }
	sp.sigmaEntry.OnChanged = func(string) { sp.emitSettings() }
	sp.angleEntry.OnChanged = func(string) { sp.emitSettings() }

	sp.startEntry = widget.NewEntry()
	sp.startEntry.SetText("0")
	sp.endEntry = widget.NewEntry()
	sp.endEntry.SetText("0")

	sp.fullVideoCheck = widget.NewCheck("Blur Full Video", func(checked bool) {
		sp.toggleTimeEntries(checked)
		sp.emitVideoOptions()
	})
	sp.fullVideoCheck.SetChecked(true)

	sp.startEntry.OnChanged = func(string) { sp.emitVideoOptions() }
	sp.endEntry.OnChanged = func(string) { sp.emitVideoOptions() }
	sp.toggleTimeEntries(true)
}

func (sp *SettingsPanel) buildLayout() {
	sp.settingsForm = container.New(layout.NewFormLayout(),
		widget.NewLabel("Kernel Size:"), sp.ksizeEntry,
		widget.NewLabel("Sigma:"), sp.sigmaEntry,
		widget.NewLabel("Direction:"), sp.directionSelect,
		widget.NewLabel("Angle:"), sp.angleEntry,
	)

	videoOptions := container.New(layout.NewFormLayout(),
		widget.NewLabel("Start Time (s):"), sp.startEntry,
		widget.NewLabel("End Time (s):"), sp.endEntry,
	)

	sp.container = container.NewVBox(
		widget.NewLabel("Blur Settings"),
		sp.settingsForm,
		widget.NewSeparator(),
		sp.fullVideoCheck,
		videoOptions,
	)
}

func (sp *SettingsPanel) GetContainer() *fyne.Container {
	return sp.container
}

func (sp *SettingsPanel) SetSettingsChangeHandler(handler func(blur.Settings)) {
	sp.settingsChangeHandler = handler
}

func (sp *SettingsPanel) SetVideoOptionsHandler(handler func(bool, float64, float64)) {
	sp.videoOptionsChangeHandler = handler
}

// ShowSettings fills the entries for the given mode and hides the ones
// the mode ignores.
func (sp *SettingsPanel) ShowSettings(mode blur.Mode, settings blur.Settings) {
	sp.ksizeEntry.SetText(strconv.Itoa(settings.KernelSize))
	sp.sigmaEntry.SetText(strconv.FormatFloat(settings.Sigma, 'f', -1, 64))
	sp.directionSelect.SetSelected(settings.Direction)
	sp.angleEntry.SetText(strconv.Itoa(settings.Angle))

	switch mode {
	case blur.ModeCustom, blur.ModeMotion, blur.ModeRadial:
		sp.settingsForm.Show()
	default:
		sp.settingsForm.Hide()
	}
}

func (sp *SettingsPanel) emitSettings() {
	if sp.settingsChangeHandler == nil {
		return
	}

	settings, ok := sp.currentSettings()
	if !ok {
		return // entry mid-edit; controller sees the next complete value
	}

	sp.settingsChangeHandler(settings)
}

func (sp *SettingsPanel) currentSettings() (blur.Settings, bool) {
	ksize, err := strconv.Atoi(sp.ksizeEntry.Text)
	if err != nil {
		return blur.Settings{}, false
	}

	sigma, err := strconv.ParseFloat(sp.sigmaEntry.Text, 64)
	if err != nil {
		return blur.Settings{}, false
	}

	angle, err := strconv.Atoi(sp.angleEntry.Text)
	if err != nil {
		return blur.Settings{}, false
	}

	return blur.Settings{
		KernelSize: ksize,
		Sigma:      sigma,
		Direction:  sp.directionSelect.Selected,
		Angle:      angle,
	}, true
}

func (sp *SettingsPanel) toggleTimeEntries(fullVideo bool) {
	if fullVideo {
		sp.startEntry.Disable()
		sp.endEntry.Disable()
	} else {
		sp.startEntry.Enable()
		sp.endEntry.Enable()
	}
}

func (sp *SettingsPanel) emitVideoOptions() {
	if sp.videoOptionsChangeHandler == nil {
		return
	}

	start, err := strconv.ParseFloat(sp.startEntry.Text, 64)
	if err != nil {
		return
	}

	end, err := strconv.ParseFloat(sp.endEntry.Text, 64)
	if err != nil {
		return
	}

	sp.videoOptionsChangeHandler(sp.fullVideoCheck.Checked, start, end)
}
