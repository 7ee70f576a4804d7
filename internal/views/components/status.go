package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"flexiblur/internal/blur"
)

// StatusBar displays application status, media info and the selected ROI.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	mediaInfo   *widget.Label
	roiInfo     *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		statusLabel: widget.NewLabel("Ready"),
		mediaInfo:   widget.NewLabel("No media loaded"),
		roiInfo:     widget.NewLabel("ROI: full frame"),
	}

	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.mediaInfo,
		widget.NewSeparator(),
		sb.roiInfo,
	)

	return sb
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) SetMediaInfo(width, height int, format, kind string) {
	sb.mediaInfo.SetText(fmt.Sprintf("%s: %dx%d %s", kind, width, height, format))
}

func (sb *StatusBar) SetROI(roi blur.ROI) {
	sb.roiInfo.SetText("ROI: " + roi.String())
}

func (sb *StatusBar) ClearROI() {
	sb.roiInfo.SetText("ROI: full frame")
}
