package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ProgressBar wraps the batch progress indicator; hidden while idle.
type ProgressBar struct {
	container *fyne.Container
	bar       *widget.ProgressBar
}

func NewProgressBar() *ProgressBar {
	pb := &ProgressBar{
		bar: widget.NewProgressBar(),
	}

	pb.container = container.NewVBox(pb.bar)
	pb.container.Hide()

	return pb
}

func (pb *ProgressBar) GetContainer() *fyne.Container {
	return pb.container
}

func (pb *ProgressBar) SetValue(fraction float64) {
	pb.bar.SetValue(fraction)
}

func (pb *ProgressBar) SetActive(active bool) {
	if active {
		pb.bar.SetValue(0)
		pb.container.Show()
	} else {
		pb.container.Hide()
	}
}
