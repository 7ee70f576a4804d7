package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MediaDisplay shows the preview thumbnail of the current media file.
type MediaDisplay struct {
	container *fyne.Container
	image     *canvas.Image
	nameLabel *widget.Label
}

func NewMediaDisplay() *MediaDisplay {
	md := &MediaDisplay{
		nameLabel: widget.NewLabel("No media loaded"),
	}

	md.image = canvas.NewImageFromImage(nil)
	md.image.FillMode = canvas.ImageFillContain
	md.image.SetMinSize(fyne.NewSize(400, 400))

	md.container = container.NewBorder(nil, md.nameLabel, nil, nil, md.image)
	return md
}

func (md *MediaDisplay) GetContainer() *fyne.Container {
	return md.container
}

// ShowImage replaces the preview with the given image.
func (md *MediaDisplay) ShowImage(img image.Image, name string) {
	md.image.Image = img
	md.image.Refresh()
	md.nameLabel.SetText(name)
}
