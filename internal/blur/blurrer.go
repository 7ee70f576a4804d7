package blur

import (
	"context"

	"flexiblur/internal/opencv/safe"
)

// Blurrer is the interface implemented by each blur mode.
type Blurrer interface {
	// Apply returns a new Mat holding the blurred pixels; the input is
	// left untouched. Output dimensions always match the input.
	Apply(ctx context.Context, input *safe.Mat, settings Settings) (*safe.Mat, error)
	Name() string
	ValidateSettings(settings Settings) error
	DefaultSettings() Settings
}
