package blur

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"flexiblur/internal/opencv/safe"
)

// checkerboardMat builds a single-channel test image with alternating
// 0/255 pixels so any smoothing is observable at every position.
func checkerboardMat(t *testing.T, rows, cols int) *safe.Mat {
	t.Helper()

	mat, err := safe.NewMat(rows, cols, gocv.MatTypeCV8UC1)
	require.NoError(t, err)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			value := uint8(0)
			if (r+c)%2 == 0 {
				value = 255
			}
			require.NoError(t, mat.SetUCharAt(r, c, value))
		}
	}

	return mat
}

func TestApplyRegionPreservesOutsidePixels(t *testing.T) {
	input := checkerboardMat(t, 64, 64)
	defer input.Close()

	roi := ROI{X: 16, Y: 16, Width: 24, Height: 24}
	settings := Settings{KernelSize: 5, Sigma: 0}

	output, err := ApplyRegion(context.Background(), input, roi, NewCustomBlurrer(), settings)
	require.NoError(t, err)
	defer output.Close()

	require.Equal(t, input.Rows(), output.Rows())
	require.Equal(t, input.Cols(), output.Cols())

	outside := [][2]int{{0, 0}, {5, 60}, {63, 63}, {15, 15}, {40, 40}}
	for _, pos := range outside {
		want, err := input.GetUCharAt(pos[0], pos[1])
		require.NoError(t, err)
		got, err := output.GetUCharAt(pos[0], pos[1])
		require.NoError(t, err)
		require.Equal(t, want, got, "pixel (%d,%d) outside the ROI changed", pos[0], pos[1])
	}

	// The checkerboard center must have been smoothed away from 0/255.
	got, err := output.GetUCharAt(28, 28)
	require.NoError(t, err)
	require.NotContains(t, []uint8{0, 255}, got, "ROI interior was not blurred")
}

func TestApplyRegionFullFrame(t *testing.T) {
	input := checkerboardMat(t, 32, 32)
	defer input.Close()

	output, err := ApplyRegion(context.Background(), input, ROI{}, NewSlightBlurrer(), Settings{})
	require.NoError(t, err)
	defer output.Close()

	require.Equal(t, 32, output.Rows())
	require.Equal(t, 32, output.Cols())

	got, err := output.GetUCharAt(16, 16)
	require.NoError(t, err)
	require.NotContains(t, []uint8{0, 255}, got)
}

func TestApplyRegionRejectsOutOfBoundsROI(t *testing.T) {
	input := checkerboardMat(t, 32, 32)
	defer input.Close()

	_, err := ApplyRegion(context.Background(), input, ROI{X: 20, Y: 20, Width: 20, Height: 20}, NewHeavyBlurrer(), Settings{})
	require.Error(t, err)
}

func TestApplyRegionDeterministic(t *testing.T) {
	input := checkerboardMat(t, 32, 32)
	defer input.Close()

	roi := ROI{X: 4, Y: 4, Width: 16, Height: 16}
	settings := Settings{Direction: DirectionVertical}

	first, err := ApplyRegion(context.Background(), input, roi, NewMotionBlurrer(), settings)
	require.NoError(t, err)
	defer first.Close()

	second, err := ApplyRegion(context.Background(), input, roi, NewMotionBlurrer(), settings)
	require.NoError(t, err)
	defer second.Close()

	for _, pos := range [][2]int{{4, 4}, {10, 12}, {19, 19}, {0, 0}, {31, 31}} {
		a, err := first.GetUCharAt(pos[0], pos[1])
		require.NoError(t, err)
		b, err := second.GetUCharAt(pos[0], pos[1])
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestApplyRegionInPlace(t *testing.T) {
	frame := checkerboardMat(t, 32, 32)
	defer frame.Close()

	before, err := frame.GetUCharAt(0, 0)
	require.NoError(t, err)

	roi := ROI{X: 8, Y: 8, Width: 16, Height: 16}
	err = ApplyRegionInPlace(context.Background(), frame, roi, NewHeavyBlurrer(), Settings{})
	require.NoError(t, err)

	after, err := frame.GetUCharAt(0, 0)
	require.NoError(t, err)
	require.Equal(t, before, after, "corner outside the ROI changed")

	center, err := frame.GetUCharAt(16, 16)
	require.NoError(t, err)
	require.NotContains(t, []uint8{0, 255}, center)
}

func TestApplyHonorsCancelledContext(t *testing.T) {
	input := checkerboardMat(t, 16, 16)
	defer input.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, mode := range Modes() {
		b, err := NewManager().GetBlurrer(mode)
		require.NoError(t, err)

		_, err = b.Apply(ctx, input, DefaultSettings())
		require.ErrorIs(t, err, context.Canceled, "mode %s", mode)
	}
}
