package blur

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, name := range []string{"Heavy", "Slight", "Custom", "Motion", "Radial"} {
		mode, err := ParseMode(name)
		require.NoError(t, err)
		require.Equal(t, name, mode.String())
	}

	_, err := ParseMode("Gaussian")
	require.Error(t, err)

	_, err = ParseMode("heavy")
	require.Error(t, err, "mode names are case sensitive")
}

func TestModeNames(t *testing.T) {
	names := ModeNames()
	require.Equal(t, []string{"Heavy", "Slight", "Custom", "Motion", "Radial"}, names)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.Equal(t, 25, s.KernelSize)
	require.Equal(t, 5.0, s.Sigma)
	require.Equal(t, DirectionHorizontal, s.Direction)
	require.Equal(t, 45, s.Angle)
}
