package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"flexiblur/internal/models"
)

func TestExportResults(t *testing.T) {
	svc := NewMediaService(testLogger(), models.NewMediaRepository())

	workDir := t.TempDir()
	processed := make([]string, 0, 2)
	for _, name := range []string{"photo.jpg", "clip.mp4"} {
		path := filepath.Join(workDir, name)
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
		processed = append(processed, path)
	}

	outDir := t.TempDir()
	exported, err := svc.ExportResults(processed, []string{"blurred_photo", "blurred_clip"}, outDir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(outDir, "blurred_photo.jpg"),
		filepath.Join(outDir, "blurred_clip.mp4"),
	}, exported)

	for i, path := range exported {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, filepath.Base(processed[i]), string(data))
	}
}

func TestExportResultsDefaultsNameFromSource(t *testing.T) {
	svc := NewMediaService(testLogger(), models.NewMediaRepository())

	workDir := t.TempDir()
	src := filepath.Join(workDir, "photo.png")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	outDir := t.TempDir()
	exported, err := svc.ExportResults([]string{src}, []string{""}, outDir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(outDir, "photo.png")}, exported)
}

func TestExportResultsValidation(t *testing.T) {
	svc := NewMediaService(testLogger(), models.NewMediaRepository())

	_, err := svc.ExportResults(nil, nil, t.TempDir())
	require.Error(t, err)

	_, err = svc.ExportResults([]string{"a.jpg"}, []string{"x", "y"}, t.TempDir())
	require.Error(t, err)
}
