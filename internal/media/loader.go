package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"

	"gocv.io/x/gocv"

	"flexiblur/internal/logger"
	"flexiblur/internal/opencv/safe"
)

// LoadedImage pairs the OpenCV matrix used for processing with the
// standard library decode used for display.
type LoadedImage struct {
	Mat    *safe.Mat
	Image  image.Image
	Width  int
	Height int
	Format string
}

func (li *LoadedImage) Close() {
	if li.Mat != nil {
		li.Mat.Close()
	}
}

// Loader reads image files from disk for processing and preview.
type Loader struct {
	logger logger.Logger
}

func NewLoader(log logger.Logger) *Loader {
	return &Loader{logger: log}
}

// LoadImage decodes the file both with OpenCV (BGR Mat for filtering) and
// the standard library (for Fyne display).
func (l *Loader) LoadImage(path string) (*LoadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s with OpenCV: %w", path, err)
	}

	safeMat, err := safe.WrapMat(mat)
	if err != nil {
		mat.Close()
		return nil, fmt.Errorf("decoded Mat unusable for %s: %w", path, err)
	}

	img, stdFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		safeMat.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	format := FormatForExtension(filepath.Ext(path))
	if format == "" {
		format = stdFormat
	}

	bounds := img.Bounds()
	loaded := &LoadedImage{
		Mat:    safeMat,
		Image:  img,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}

	l.logger.Debug("Loader", "image loaded", map[string]interface{}{
		"path":   path,
		"width":  loaded.Width,
		"height": loaded.Height,
		"format": format,
	})

	return loaded, nil
}

// FirstFrame grabs the opening frame of a video for ROI selection and
// preview.
func (l *Loader) FirstFrame(path string) (*LoadedImage, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	defer capture.Close()

	frame := gocv.NewMat()
	if ok := capture.Read(&frame); !ok || frame.Empty() {
		frame.Close()
		return nil, fmt.Errorf("failed to read first frame of %s", path)
	}

	safeMat, err := safe.WrapMat(frame)
	if err != nil {
		frame.Close()
		return nil, fmt.Errorf("first frame of %s unusable: %w", path, err)
	}

	return &LoadedImage{
		Mat:    safeMat,
		Width:  safeMat.Cols(),
		Height: safeMat.Rows(),
		Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	}, nil
}
