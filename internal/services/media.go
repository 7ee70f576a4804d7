package services

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"

	"flexiblur/internal/logger"
	"flexiblur/internal/media"
	"flexiblur/internal/models"
	"flexiblur/internal/opencv/conversion"
)

// Preview dimensions for the GUI media display.
const (
	previewWidth  = 400
	previewHeight = 400
)

// MediaService stages user-selected files and produces previews for the
// GUI.
type MediaService struct {
	logger logger.Logger
	loader *media.Loader
	repo   *models.MediaRepository
}

func NewMediaService(log logger.Logger, repo *models.MediaRepository) *MediaService {
	return &MediaService{
		logger: log,
		loader: media.NewLoader(log),
		repo:   repo,
	}
}

// LoadMedia stages working copies of the selected files and probes their
// dimensions.
func (ms *MediaService) LoadMedia(paths []string) ([]*models.MediaItem, error) {
	items, err := ms.repo.Stage(paths)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := ms.probe(item); err != nil {
			ms.repo.Clear()
			return nil, err
		}
	}

	ms.logger.Info("MediaService", "media staged", map[string]interface{}{
		"count": len(items),
	})

	return items, nil
}

func (ms *MediaService) probe(item *models.MediaItem) error {
	loaded, err := ms.loadFrame(item)
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", item.SourcePath, err)
	}
	defer loaded.Close()

	item.Width = loaded.Width
	item.Height = loaded.Height
	item.Format = loaded.Format
	return nil
}

// Preview returns a display-sized thumbnail of the item: the image itself
// or the first frame of a video.
func (ms *MediaService) Preview(item *models.MediaItem) (image.Image, error) {
	if item == nil {
		return nil, fmt.Errorf("no media item")
	}

	img, err := ms.FullFrame(item)
	if err != nil {
		return nil, err
	}

	return imaging.Fit(img, previewWidth, previewHeight, imaging.Lanczos), nil
}

// FullFrame returns the item at native resolution, for ROI selection.
func (ms *MediaService) FullFrame(item *models.MediaItem) (image.Image, error) {
	loaded, err := ms.loadFrame(item)
	if err != nil {
		return nil, err
	}
	defer loaded.Close()

	if loaded.Image != nil {
		return loaded.Image, nil
	}

	return conversion.MatToImage(loaded.Mat)
}

func (ms *MediaService) loadFrame(item *models.MediaItem) (*media.LoadedImage, error) {
	if item.Kind == media.KindVideo {
		return ms.loader.FirstFrame(item.StagedPath)
	}
	return ms.loader.LoadImage(item.StagedPath)
}

// ExportResults copies processed files into the chosen directory under the
// given names, keeping each file's extension.
func (ms *MediaService) ExportResults(processedPaths, outputNames []string, outputDir string) ([]string, error) {
	if len(processedPaths) == 0 {
		return nil, fmt.Errorf("no processed media to save")
	}

	if len(outputNames) != len(processedPaths) {
		return nil, fmt.Errorf("expected %d output names, got %d", len(processedPaths), len(outputNames))
	}

	exported := make([]string, 0, len(processedPaths))
	for i, src := range processedPaths {
		name := outputNames[i]
		if name == "" {
			name = filepath.Base(src)
			name = name[:len(name)-len(filepath.Ext(name))]
		}

		dst := filepath.Join(outputDir, name+filepath.Ext(src))
		if err := media.CopyFile(src, dst); err != nil {
			return exported, err
		}

		ms.logger.Info("MediaService", "result exported", map[string]interface{}{
			"path": dst,
		})
		exported = append(exported, dst)
	}

	return exported, nil
}
