package blur

import (
	"context"
	"fmt"

	"flexiblur/internal/opencv/safe"
)

// ApplyRegion blurs the ROI of input with the given blurrer and returns a
// new Mat; pixels outside the region are copied through unchanged. An
// empty ROI blurs the whole frame.
func ApplyRegion(ctx context.Context, input *safe.Mat, roi ROI, blurrer Blurrer, settings Settings) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(input, "region blur"); err != nil {
		return nil, err
	}

	if roi.Empty() {
		return blurrer.Apply(ctx, input, settings)
	}

	if err := roi.Validate(input.Cols(), input.Rows()); err != nil {
		return nil, err
	}

	output, err := input.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to copy input: %w", err)
	}

	if err := blurIntoRegion(ctx, output, roi, blurrer, settings); err != nil {
		output.Close()
		return nil, err
	}

	return output, nil
}

// ApplyRegionInPlace blurs the ROI of frame directly, avoiding the full
// frame copy. Used by the video loop where the decoded frame is already a
// private buffer.
func ApplyRegionInPlace(ctx context.Context, frame *safe.Mat, roi ROI, blurrer Blurrer, settings Settings) error {
	if err := safe.ValidateMatForOperation(frame, "region blur"); err != nil {
		return err
	}

	if roi.Empty() {
		blurred, err := blurrer.Apply(ctx, frame, settings)
		if err != nil {
			return err
		}
		defer blurred.Close()

		return blurred.CopyTo(frame)
	}

	if err := roi.Validate(frame.Cols(), frame.Rows()); err != nil {
		return err
	}

	return blurIntoRegion(ctx, frame, roi, blurrer, settings)
}

func blurIntoRegion(ctx context.Context, target *safe.Mat, roi ROI, blurrer Blurrer, settings Settings) error {
	view, err := target.Region(roi.X, roi.Y, roi.Width, roi.Height)
	if err != nil {
		return err
	}
	defer view.Close()

	// Filters need a contiguous buffer, region views are strided.
	section, err := view.Clone()
	if err != nil {
		return fmt.Errorf("failed to extract region: %w", err)
	}
	defer section.Close()

	blurred, err := blurrer.Apply(ctx, section, settings)
	if err != nil {
		return fmt.Errorf("%s blur failed: %w", blurrer.Name(), err)
	}
	defer blurred.Close()

	if err := blurred.CopyTo(view); err != nil {
		return fmt.Errorf("failed to write region back: %w", err)
	}

	return nil
}
