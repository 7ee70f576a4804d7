package blur

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"flexiblur/internal/opencv/safe"
)

// motionKernelLength matches the fixed streak length of the motion effect.
const motionKernelLength = 15

// MotionBlurrer convolves with a directional averaging kernel to simulate
// linear camera motion.
type MotionBlurrer struct{}

func NewMotionBlurrer() *MotionBlurrer {
	return &MotionBlurrer{}
}

func (m *MotionBlurrer) Name() string {
	return string(ModeMotion)
}

func (m *MotionBlurrer) ValidateSettings(settings Settings) error {
	switch settings.Direction {
	case DirectionHorizontal, DirectionVertical:
		return nil
	default:
		return fmt.Errorf("unknown motion blur direction: %q", settings.Direction)
	}
}

func (m *MotionBlurrer) DefaultSettings() Settings {
	return DefaultSettings()
}

func (m *MotionBlurrer) Apply(ctx context.Context, input *safe.Mat, settings Settings) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := m.ValidateSettings(settings); err != nil {
		return nil, err
	}

	if err := safe.ValidateMatForOperation(input, "motion blur"); err != nil {
		return nil, err
	}

	kernel, err := motionKernel(settings.Direction)
	if err != nil {
		return nil, err
	}
	defer kernel.Close()

	dst, err := safe.NewMat(input.Rows(), input.Cols(), input.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	srcMat := input.GetMat()
	dstMat := dst.GetMat()

	gocv.Filter2D(srcMat, &dstMat, -1, kernel, image.Point{X: -1, Y: -1}, 0, gocv.BorderDefault)

	return dst, nil
}

// motionKernel builds the normalized 1xN (horizontal) or Nx1 (vertical)
// averaging kernel.
func motionKernel(direction string) (gocv.Mat, error) {
	rows, cols := 1, motionKernelLength
	if direction == DirectionVertical {
		rows, cols = motionKernelLength, 1
	}

	weight := 1.0 / float64(motionKernelLength)
	kernel := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(weight, 0, 0, 0),
		rows, cols, gocv.MatTypeCV64FC1,
	)
	if kernel.Empty() {
		kernel.Close()
		return gocv.Mat{}, fmt.Errorf("failed to build %s motion kernel", direction)
	}

	return kernel, nil
}
