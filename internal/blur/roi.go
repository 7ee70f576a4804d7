package blur

import "fmt"

// ROI is a rectangular pixel region selected for targeted blurring.
// A zero ROI means the whole frame.
type ROI struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether no region was selected.
func (r ROI) Empty() bool {
	return r.Width == 0 && r.Height == 0
}

// Validate checks the rectangle against the target image bounds.
func (r ROI) Validate(imageWidth, imageHeight int) error {
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("ROI origin (%d,%d) must be non-negative", r.X, r.Y)
	}

	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("ROI size %dx%d must be positive", r.Width, r.Height)
	}

	if r.X+r.Width > imageWidth || r.Y+r.Height > imageHeight {
		return fmt.Errorf("ROI (%d,%d %dx%d) exceeds image bounds %dx%d",
			r.X, r.Y, r.Width, r.Height, imageWidth, imageHeight)
	}

	return nil
}

// Normalized flips negative width/height rectangles produced by dragging
// up or left so the origin is the top-left corner.
func (r ROI) Normalized() ROI {
	out := r
	if out.Width < 0 {
		out.X += out.Width
		out.Width = -out.Width
	}
	if out.Height < 0 {
		out.Y += out.Height
		out.Height = -out.Height
	}
	return out
}

func (r ROI) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
