package safe

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestNewMatRejectsInvalidDimensions(t *testing.T) {
	_, err := NewMat(0, 10, gocv.MatTypeCV8UC1)
	require.Error(t, err)

	_, err = NewMat(10, -1, gocv.MatTypeCV8UC1)
	require.Error(t, err)

	// Oversized requests are refused before any allocation happens.
	_, err = NewMat(40000, 10, gocv.MatTypeCV8UC1)
	require.Error(t, err)
}

func TestValidateDimensions(t *testing.T) {
	require.NoError(t, ValidateDimensions(640, 480, "test"))
	require.NoError(t, ValidateDimensions(32768, 32768, "test"))

	require.Error(t, ValidateDimensions(0, 480, "test"))
	require.Error(t, ValidateDimensions(640, -1, "test"))
	require.Error(t, ValidateDimensions(32769, 480, "test"))
	require.Error(t, ValidateDimensions(640, 40000, "test"))
}

func TestMatLifecycle(t *testing.T) {
	mat, err := NewMat(8, 8, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	require.True(t, mat.IsValid())
	require.Equal(t, 8, mat.Rows())
	require.Equal(t, 8, mat.Cols())

	mat.Close()
	require.False(t, mat.IsValid())
	require.Equal(t, 0, mat.Rows(), "closed Mat must report zero size")

	// Second Close must be a no-op, not a crash.
	mat.Close()
}

func TestWrapMatRejectsEmpty(t *testing.T) {
	_, err := WrapMat(gocv.NewMat())
	require.Error(t, err)
}

func TestWrapEmptyMatAllowsEmpty(t *testing.T) {
	mat, err := WrapEmptyMat(gocv.NewMat())
	require.NoError(t, err)
	require.True(t, mat.Empty())
	mat.Close()
}

func TestMatPixelAccessBounds(t *testing.T) {
	mat, err := NewMat(4, 4, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	defer mat.Close()

	require.NoError(t, mat.SetUCharAt(2, 3, 42))
	value, err := mat.GetUCharAt(2, 3)
	require.NoError(t, err)
	require.Equal(t, uint8(42), value)

	_, err = mat.GetUCharAt(4, 0)
	require.Error(t, err)
	require.Error(t, mat.SetUCharAt(0, -1, 1))
}

func TestRegionSharesStorage(t *testing.T) {
	parent, err := NewMat(16, 16, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	defer parent.Close()

	require.NoError(t, parent.SetUCharAt(5, 5, 0))

	view, err := parent.Region(4, 4, 8, 8)
	require.NoError(t, err)
	require.Equal(t, 8, view.Rows())
	require.Equal(t, 8, view.Cols())

	// Writing through the view must land in the parent.
	require.NoError(t, view.SetUCharAt(1, 1, 200))
	view.Close()

	value, err := parent.GetUCharAt(5, 5)
	require.NoError(t, err)
	require.Equal(t, uint8(200), value)
}

func TestRegionRejectsOutOfBounds(t *testing.T) {
	parent, err := NewMat(16, 16, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	defer parent.Close()

	_, err = parent.Region(10, 10, 10, 10)
	require.Error(t, err)

	_, err = parent.Region(-1, 0, 4, 4)
	require.Error(t, err)

	_, err = parent.Region(0, 0, 0, 4)
	require.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	src, err := NewMat(8, 8, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	defer src.Close()
	require.NoError(t, src.SetUCharAt(0, 0, 10))

	clone, err := src.Clone()
	require.NoError(t, err)
	defer clone.Close()

	require.NoError(t, clone.SetUCharAt(0, 0, 99))

	original, err := src.GetUCharAt(0, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(10), original)
}

func TestValidateKernelSize(t *testing.T) {
	require.NoError(t, ValidateKernelSize(3, "test"))
	require.NoError(t, ValidateKernelSize(51, "test"))

	require.Error(t, ValidateKernelSize(0, "test"))
	require.Error(t, ValidateKernelSize(-3, "test"))
	require.Error(t, ValidateKernelSize(4, "test"))
}
