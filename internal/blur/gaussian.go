package blur

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"flexiblur/internal/opencv/safe"
)

const (
	heavyKernelSize  = 51
	slightKernelSize = 15
)

// HeavyBlurrer applies a strong fixed Gaussian blur.
type HeavyBlurrer struct{}

func NewHeavyBlurrer() *HeavyBlurrer {
	return &HeavyBlurrer{}
}

func (h *HeavyBlurrer) Name() string {
	return string(ModeHeavy)
}

func (h *HeavyBlurrer) ValidateSettings(Settings) error {
	return nil
}

func (h *HeavyBlurrer) DefaultSettings() Settings {
	return DefaultSettings()
}

func (h *HeavyBlurrer) Apply(ctx context.Context, input *safe.Mat, _ Settings) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return applyGaussian(input, heavyKernelSize, 0)
}

// SlightBlurrer applies a mild fixed Gaussian blur.
type SlightBlurrer struct{}

func NewSlightBlurrer() *SlightBlurrer {
	return &SlightBlurrer{}
}

func (s *SlightBlurrer) Name() string {
	return string(ModeSlight)
}

func (s *SlightBlurrer) ValidateSettings(Settings) error {
	return nil
}

func (s *SlightBlurrer) DefaultSettings() Settings {
	return DefaultSettings()
}

func (s *SlightBlurrer) Apply(ctx context.Context, input *safe.Mat, _ Settings) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return applyGaussian(input, slightKernelSize, 0)
}

// CustomBlurrer applies a Gaussian blur with user-chosen kernel and sigma.
type CustomBlurrer struct{}

func NewCustomBlurrer() *CustomBlurrer {
	return &CustomBlurrer{}
}

func (c *CustomBlurrer) Name() string {
	return string(ModeCustom)
}

func (c *CustomBlurrer) ValidateSettings(settings Settings) error {
	if err := safe.ValidateKernelSize(settings.KernelSize, "custom blur"); err != nil {
		return err
	}

	if settings.Sigma < 0 {
		return fmt.Errorf("sigma must be non-negative, got %v", settings.Sigma)
	}

	return nil
}

func (c *CustomBlurrer) DefaultSettings() Settings {
	return DefaultSettings()
}

func (c *CustomBlurrer) Apply(ctx context.Context, input *safe.Mat, settings Settings) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := c.ValidateSettings(settings); err != nil {
		return nil, err
	}

	return applyGaussian(input, settings.KernelSize, settings.Sigma)
}

// RadialBlurrer approximates a radial soft-focus with a Gaussian whose
// radius comes from the Angle setting.
type RadialBlurrer struct{}

func NewRadialBlurrer() *RadialBlurrer {
	return &RadialBlurrer{}
}

func (r *RadialBlurrer) Name() string {
	return string(ModeRadial)
}

func (r *RadialBlurrer) ValidateSettings(settings Settings) error {
	if settings.Angle <= 0 {
		return fmt.Errorf("radial blur angle must be positive, got %d", settings.Angle)
	}

	return nil
}

func (r *RadialBlurrer) DefaultSettings() Settings {
	return DefaultSettings()
}

func (r *RadialBlurrer) Apply(ctx context.Context, input *safe.Mat, settings Settings) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := r.ValidateSettings(settings); err != nil {
		return nil, err
	}

	sigma := float64(settings.Angle)
	return applyGaussian(input, KernelSizeForSigma(sigma), sigma)
}

// KernelSizeForSigma derives an odd kernel size wide enough to cover the
// Gaussian's support at the given sigma.
func KernelSizeForSigma(sigma float64) int {
	size := int(sigma*6) + 1
	if size%2 == 0 {
		size++
	}
	if size < 3 {
		size = 3
	}
	return size
}

func applyGaussian(src *safe.Mat, kernelSize int, sigma float64) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "gaussian blur"); err != nil {
		return nil, err
	}

	if err := safe.ValidateKernelSize(kernelSize, "gaussian blur"); err != nil {
		return nil, err
	}

	dst, err := safe.NewMat(src.Rows(), src.Cols(), src.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()

	gocv.GaussianBlur(srcMat, &dstMat, image.Point{X: kernelSize, Y: kernelSize}, sigma, sigma, gocv.BorderDefault)

	return dst, nil
}
