package media

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"

	"gocv.io/x/gocv"

	"flexiblur/internal/logger"
	"flexiblur/internal/opencv/safe"
)

const jpegQuality = 95

// Saver writes processed images back to disk.
type Saver struct {
	logger logger.Logger
}

func NewSaver(log logger.Logger) *Saver {
	return &Saver{logger: log}
}

// SaveMat encodes a Mat to the path, with the format chosen by the
// extension.
func (s *Saver) SaveMat(path string, mat *safe.Mat) error {
	if err := safe.ValidateMatForOperation(mat, "image save"); err != nil {
		return err
	}

	if ok := gocv.IMWrite(path, mat.GetMat()); !ok {
		return fmt.Errorf("failed to write image to %s", path)
	}

	s.logger.Debug("Saver", "image written", map[string]interface{}{
		"path":   path,
		"width":  mat.Cols(),
		"height": mat.Rows(),
	})

	return nil
}

// EncodeImage writes a decoded image to the writer in the requested
// format, falling back to PNG for anything unrecognized.
func (s *Saver) EncodeImage(writer io.Writer, img image.Image, format string) error {
	if img == nil {
		return fmt.Errorf("no image data to save")
	}

	switch format {
	case "jpeg":
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		return png.Encode(writer, img)
	case "bmp":
		return bmp.Encode(writer, img)
	default:
		s.logger.Warning("Saver", "format not supported, using PNG", map[string]interface{}{
			"requested_format": format,
		})
		return png.Encode(writer, img)
	}
}

// CopyFile duplicates an already-processed file into the export location.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	return out.Sync()
}
