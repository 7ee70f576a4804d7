package services

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"flexiblur/internal/blur"
	"flexiblur/internal/logger"
	"flexiblur/internal/media"
	"flexiblur/internal/models"
)

func testLogger() logger.Logger {
	return logger.NewZerolog(io.Discard, zerolog.Disabled)
}

func newTestProcessingService() (*ProcessingService, *models.ProcessingStateRepository) {
	stateRepo := models.NewProcessingStateRepository()
	svc := NewProcessingService(testLogger(), blur.NewManager(), stateRepo, 2)
	return svc, stateRepo
}

func TestProcessMediaRejectsEmptyBatch(t *testing.T) {
	svc, _ := newTestProcessingService()

	_, err := svc.ProcessMedia(context.Background(), Request{Mode: "Heavy"}, nil)
	require.Error(t, err)
}

func TestProcessMediaRejectsUnknownMode(t *testing.T) {
	svc, _ := newTestProcessingService()

	req := Request{Paths: []string{"a.jpg"}, Mode: "Pixelate"}
	_, err := svc.ProcessMedia(context.Background(), req, nil)
	require.Error(t, err)
}

func TestProcessMediaRejectsInvalidSettings(t *testing.T) {
	svc, _ := newTestProcessingService()

	req := Request{
		Paths:    []string{"a.jpg"},
		Mode:     "Custom",
		Settings: blur.Settings{KernelSize: 24, Sigma: 5},
	}
	_, err := svc.ProcessMedia(context.Background(), req, nil)
	require.Error(t, err)
}

func TestProcessMediaRejectsInvalidTimeRange(t *testing.T) {
	svc, _ := newTestProcessingService()

	req := Request{
		Paths:     []string{"clip.mp4"},
		Mode:      "Heavy",
		TimeRange: media.TimeRange{Start: 5, End: 2},
	}
	_, err := svc.ProcessMedia(context.Background(), req, nil)
	require.Error(t, err)
}

func TestProcessMediaRejectsConcurrentBatch(t *testing.T) {
	svc, stateRepo := newTestProcessingService()
	stateRepo.StartProcessing("Heavy", 1)

	req := Request{Paths: []string{"a.jpg"}, Mode: "Heavy"}
	_, err := svc.ProcessMedia(context.Background(), req, nil)
	require.Error(t, err)
}

func TestProcessMediaReportsMissingFiles(t *testing.T) {
	svc, stateRepo := newTestProcessingService()

	var lastCompleted, lastTotal int
	req := Request{
		Paths:     []string{"/nonexistent/a.jpg", "/nonexistent/b.doc"},
		Mode:      "Slight",
		OutputDir: t.TempDir(),
	}
	batch, err := svc.ProcessMedia(context.Background(), req, func(completed, total int) {
		lastCompleted, lastTotal = completed, total
	})
	require.NoError(t, err, "per-file failures must not abort the batch")
	require.Equal(t, 0, batch.Succeeded)
	require.Equal(t, 2, batch.Failed)
	require.Len(t, batch.Results, 2)
	for _, r := range batch.Results {
		require.Error(t, r.Err)
	}

	require.Equal(t, 2, lastCompleted)
	require.Equal(t, 2, lastTotal)
	require.False(t, stateRepo.IsProcessing())
}

func TestCancelWithoutBatchIsNoop(t *testing.T) {
	svc, stateRepo := newTestProcessingService()
	svc.Cancel()
	require.False(t, stateRepo.IsProcessing())
}
