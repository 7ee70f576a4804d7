package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"flexiblur/internal/logger"
)

func testLogger() logger.Logger {
	return logger.NewZerolog(io.Discard, zerolog.Disabled)
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	return img
}

func TestEncodeImage(t *testing.T) {
	saver := NewSaver(testLogger())

	var buf bytes.Buffer
	require.NoError(t, saver.EncodeImage(&buf, testImage(), "jpeg"))
	_, err := jpeg.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, saver.EncodeImage(&buf, testImage(), "png"))
	_, err = png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, saver.EncodeImage(&buf, testImage(), "bmp"))
	_, err = bmp.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	// Unrecognized formats fall back to PNG.
	buf.Reset()
	require.NoError(t, saver.EncodeImage(&buf, testImage(), "tiff"))
	_, err = png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
}

func TestEncodeImageNilImage(t *testing.T) {
	saver := NewSaver(testLogger())
	require.Error(t, saver.EncodeImage(&bytes.Buffer{}, nil, "png"))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	require.NoError(t, os.WriteFile(src, []byte("frame data"), 0o644))

	dst := filepath.Join(dir, "nested", "out", "dst.bin")
	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, []byte("frame data"), data)
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "missing.bin"), filepath.Join(dir, "dst.bin"))
	require.Error(t, err)
}
