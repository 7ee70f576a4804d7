package blur

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomBlurrerValidateSettings(t *testing.T) {
	c := NewCustomBlurrer()

	require.NoError(t, c.ValidateSettings(Settings{KernelSize: 25, Sigma: 5}))
	require.NoError(t, c.ValidateSettings(Settings{KernelSize: 3, Sigma: 0}))

	require.Error(t, c.ValidateSettings(Settings{KernelSize: 24, Sigma: 5}), "even kernel size")
	require.Error(t, c.ValidateSettings(Settings{KernelSize: 0, Sigma: 5}))
	require.Error(t, c.ValidateSettings(Settings{KernelSize: -3, Sigma: 5}))
	require.Error(t, c.ValidateSettings(Settings{KernelSize: 25, Sigma: -1}))
}

func TestMotionBlurrerValidateSettings(t *testing.T) {
	m := NewMotionBlurrer()

	require.NoError(t, m.ValidateSettings(Settings{Direction: DirectionHorizontal}))
	require.NoError(t, m.ValidateSettings(Settings{Direction: DirectionVertical}))

	require.Error(t, m.ValidateSettings(Settings{Direction: "diagonal"}))
	require.Error(t, m.ValidateSettings(Settings{}))
}

func TestRadialBlurrerValidateSettings(t *testing.T) {
	r := NewRadialBlurrer()

	require.NoError(t, r.ValidateSettings(Settings{Angle: 45}))
	require.Error(t, r.ValidateSettings(Settings{Angle: 0}))
	require.Error(t, r.ValidateSettings(Settings{Angle: -10}))
}

func TestFixedBlurrersAcceptAnySettings(t *testing.T) {
	require.NoError(t, NewHeavyBlurrer().ValidateSettings(Settings{}))
	require.NoError(t, NewSlightBlurrer().ValidateSettings(Settings{KernelSize: -1}))
}

func TestKernelSizeForSigma(t *testing.T) {
	require.Equal(t, 3, KernelSizeForSigma(0), "floor at minimum odd size")
	require.Equal(t, 7, KernelSizeForSigma(1))
	require.Equal(t, 31, KernelSizeForSigma(5))

	for _, sigma := range []float64{0.3, 1, 2.5, 10, 45} {
		size := KernelSizeForSigma(sigma)
		require.Equal(t, 1, size%2, "kernel size must be odd for sigma %v", sigma)
		require.GreaterOrEqual(t, size, 3)
	}
}
