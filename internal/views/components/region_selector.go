package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"flexiblur/internal/blur"
)

// RegionSelector displays a frame at native resolution and lets the user
// drag a rectangle over it. The resulting ROI is reported in image pixel
// coordinates through the OnSelected callback.
type RegionSelector struct {
	widget.BaseWidget

	frame      *canvas.Image
	rect       *canvas.Rectangle
	imgWidth   int
	imgHeight  int
	startPos   fyne.Position
	currentPos fyne.Position
	dragging   bool

	// OnSelected fires when the drag finishes.
	OnSelected func(blur.ROI)
}

func NewRegionSelector(frame image.Image) *RegionSelector {
	bounds := frame.Bounds()

	rs := &RegionSelector{
		imgWidth:  bounds.Dx(),
		imgHeight: bounds.Dy(),
	}

	rs.frame = canvas.NewImageFromImage(frame)
	rs.frame.FillMode = canvas.ImageFillOriginal

	rs.rect = canvas.NewRectangle(color.Transparent)
	rs.rect.StrokeColor = color.NRGBA{R: 255, A: 255}
	rs.rect.StrokeWidth = 2
	rs.rect.Hide()

	rs.ExtendBaseWidget(rs)
	return rs
}

func (rs *RegionSelector) CreateRenderer() fyne.WidgetRenderer {
	rs.frame.Resize(fyne.NewSize(float32(rs.imgWidth), float32(rs.imgHeight)))
	rs.frame.Move(fyne.NewPos(0, 0))

	content := container.NewWithoutLayout(rs.frame, rs.rect)
	return widget.NewSimpleRenderer(content)
}

func (rs *RegionSelector) MinSize() fyne.Size {
	return fyne.NewSize(float32(rs.imgWidth), float32(rs.imgHeight))
}

// Dragged tracks the rubber-band rectangle while the mouse moves.
func (rs *RegionSelector) Dragged(event *fyne.DragEvent) {
	if !rs.dragging {
		rs.dragging = true
		rs.startPos = fyne.NewPos(event.Position.X-event.Dragged.DX, event.Position.Y-event.Dragged.DY)
	}

	rs.currentPos = event.Position
	rs.updateRect()
}

// DragEnd finalizes the selection and reports it.
func (rs *RegionSelector) DragEnd() {
	if !rs.dragging {
		return
	}
	rs.dragging = false

	roi := rs.selectionROI()
	if rs.OnSelected != nil && !roi.Empty() {
		rs.OnSelected(roi)
	}
}

func (rs *RegionSelector) updateRect() {
	x1, y1 := rs.clamp(rs.startPos)
	x2, y2 := rs.clamp(rs.currentPos)

	minX, maxX := min(x1, x2), max(x1, x2)
	minY, maxY := min(y1, y2), max(y1, y2)

	rs.rect.Move(fyne.NewPos(float32(minX), float32(minY)))
	rs.rect.Resize(fyne.NewSize(float32(maxX-minX), float32(maxY-minY)))
	rs.rect.Show()
	rs.rect.Refresh()
}

func (rs *RegionSelector) selectionROI() blur.ROI {
	x1, y1 := rs.clamp(rs.startPos)
	x2, y2 := rs.clamp(rs.currentPos)

	return blur.ROI{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}.Normalized()
}

// clamp converts a widget position to image pixel coordinates inside the
// frame bounds.
func (rs *RegionSelector) clamp(pos fyne.Position) (int, int) {
	x := int(pos.X)
	y := int(pos.Y)

	x = max(0, min(x, rs.imgWidth))
	y = max(0, min(y, rs.imgHeight))

	return x, y
}
