package views

import (
	"image"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"flexiblur/internal/blur"
	"flexiblur/internal/services"
	"flexiblur/internal/views/components"
)

var mediaExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".mp4", ".avi", ".mov"}

// MainView assembles the application window from its components.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	mediaDisplay  *components.MediaDisplay
	settingsPanel *components.SettingsPanel
	statusBar     *components.StatusBar
	progressBar   *components.ProgressBar
	resultLog     *components.ResultLog

	// Connected to the controller.
	loadMediaHandler func(paths []string)

	// Files picked so far; Fyne's open dialog selects one at a time.
	selectedPaths []string
}

func NewMainView(window fyne.Window) *MainView {
	view := &MainView{window: window}

	view.toolbar = components.NewToolbar()
	view.mediaDisplay = components.NewMediaDisplay()
	view.settingsPanel = components.NewSettingsPanel()
	view.statusBar = components.NewStatusBar()
	view.progressBar = components.NewProgressBar()
	view.resultLog = components.NewResultLog()

	view.buildLayout()
	view.toolbar.SetLoadHandler(view.showLoadDialog)

	return view
}

func (mv *MainView) buildLayout() {
	topArea := container.NewVBox(
		mv.toolbar.GetContainer(),
		mv.progressBar.GetContainer(),
	)

	contentArea := container.NewHSplit(
		mv.mediaDisplay.GetContainer(),
		container.NewVSplit(
			mv.settingsPanel.GetContainer(),
			mv.resultLog.GetContainer(),
		),
	)

	mv.mainContainer = container.NewBorder(
		topArea,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		contentArea,
	)

	mv.window.SetContent(mv.mainContainer)
}

// Handler setters, called by the controller.

func (mv *MainView) SetLoadMediaHandler(handler func([]string)) {
	mv.loadMediaHandler = handler
}

func (mv *MainView) SetSelectROIHandler(handler func()) {
	mv.toolbar.SetROIHandler(handler)
}

func (mv *MainView) SetClearROIHandler(handler func()) {
	mv.toolbar.SetClearROIHandler(handler)
}

func (mv *MainView) SetStartHandler(handler func()) {
	mv.toolbar.SetStartHandler(handler)
}

func (mv *MainView) SetCancelHandler(handler func()) {
	mv.toolbar.SetCancelHandler(handler)
}

func (mv *MainView) SetSaveHandler(handler func()) {
	mv.toolbar.SetSaveHandler(handler)
}

func (mv *MainView) SetModeChangeHandler(handler func(string)) {
	mv.toolbar.SetModeChangeHandler(handler)
}

func (mv *MainView) SetSettingsChangeHandler(handler func(blur.Settings)) {
	mv.settingsPanel.SetSettingsChangeHandler(handler)
}

func (mv *MainView) SetVideoOptionsHandler(handler func(bool, float64, float64)) {
	mv.settingsPanel.SetVideoOptionsHandler(handler)
}

// showLoadDialog picks media files one at a time, accumulating the set
// and re-staging it after each pick.
func (mv *MainView) showLoadDialog() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("File selection failed", err)
			return
		}
		if reader == nil {
			return // cancelled
		}

		path := reader.URI().Path()
		reader.Close()

		mv.selectedPaths = appendUnique(mv.selectedPaths, path)
		if mv.loadMediaHandler != nil {
			go mv.loadMediaHandler(append([]string(nil), mv.selectedPaths...))
		}
	}, mv.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(mediaExtensions))
	fileDialog.Show()
}

// ResetSelection clears the accumulated file picks.
func (mv *MainView) ResetSelection() {
	mv.selectedPaths = nil
}

// ShowROISelector opens a modal window with the drag-to-select frame.
func (mv *MainView) ShowROISelector(frame image.Image, onSelected func(blur.ROI)) {
	roiWindow := fyne.CurrentApp().NewWindow("Select ROI")

	selector := components.NewRegionSelector(frame)
	selector.OnSelected = func(roi blur.ROI) {
		roiWindow.Close()
		onSelected(roi)
	}

	roiWindow.SetContent(container.NewScroll(selector))
	roiWindow.Resize(fyne.NewSize(800, 600))
	roiWindow.Show()
}

// ShowSaveDialog asks for a target directory and per-file output names.
func (mv *MainView) ShowSaveDialog(processedPaths []string, onConfirm func(names []string, dir string)) {
	dirDialog := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			mv.ShowError("Directory selection failed", err)
			return
		}
		if dir == nil {
			return // cancelled
		}

		mv.showNameEntries(processedPaths, dir.Path(), onConfirm)
	}, mv.window)

	dirDialog.Show()
}

func (mv *MainView) showNameEntries(processedPaths []string, dir string, onConfirm func([]string, string)) {
	entries := make([]*widget.Entry, len(processedPaths))
	formItems := make([]*widget.FormItem, len(processedPaths))

	for i, path := range processedPaths {
		base := filepath.Base(path)
		entry := widget.NewEntry()
		entry.SetText(base[:len(base)-len(filepath.Ext(base))])
		entries[i] = entry
		formItems[i] = widget.NewFormItem(base, entry)
	}

	dialog.ShowForm("Output Names", "Save", "Cancel", formItems, func(confirmed bool) {
		if !confirmed {
			return
		}

		names := make([]string, len(entries))
		for i, entry := range entries {
			names[i] = entry.Text
		}

		onConfirm(names, dir)
	}, mv.window)
}

// Display updates, all called on the Fyne thread.

func (mv *MainView) ShowPreview(img image.Image, name string) {
	mv.mediaDisplay.ShowImage(img, name)
}

func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

func (mv *MainView) SetMediaInfo(width, height int, format, kind string) {
	mv.statusBar.SetMediaInfo(width, height, format, kind)
}

func (mv *MainView) SetROIInfo(roi blur.ROI) {
	mv.statusBar.SetROI(roi)
}

func (mv *MainView) ClearROIInfo() {
	mv.statusBar.ClearROI()
}

func (mv *MainView) ShowSettings(mode blur.Mode, settings blur.Settings) {
	mv.settingsPanel.ShowSettings(mode, settings)
}

func (mv *MainView) SetProcessingActive(active bool) {
	mv.toolbar.SetProcessingActive(active)
	mv.progressBar.SetActive(active)
	if active {
		mv.resultLog.Clear()
	}
}

func (mv *MainView) SetProgress(fraction float64) {
	mv.progressBar.SetValue(fraction)
}

func (mv *MainView) AppendResult(result services.FileResult) {
	mv.resultLog.Append(result)
	if result.Err == nil {
		mv.toolbar.EnableSave()
	}
}

func (mv *MainView) ShowError(title string, err error) {
	dialog.ShowError(err, mv.window)
	mv.statusBar.SetStatus(title)
}

func appendUnique(paths []string, path string) []string {
	for _, existing := range paths {
		if existing == path {
			return paths
		}
	}
	return append(paths, path)
}
