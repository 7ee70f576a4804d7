package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessingStateLifecycle(t *testing.T) {
	repo := NewProcessingStateRepository()
	require.False(t, repo.IsProcessing())

	repo.StartProcessing("Heavy", 4)
	require.True(t, repo.IsProcessing())

	state := repo.State()
	require.Equal(t, "Heavy", state.Mode)
	require.Equal(t, 4, state.FilesTotal)
	require.Equal(t, 0, state.FilesCompleted)
	require.False(t, state.StartedAt.IsZero())

	repo.UpdateProgress("clip.mp4", 2)
	state = repo.State()
	require.Equal(t, "clip.mp4", state.Stage)
	require.Equal(t, 2, state.FilesCompleted)
	require.InDelta(t, 0.5, state.Progress, 1e-9)

	repo.CompleteProcessing()
	require.False(t, repo.IsProcessing())
	state = repo.State()
	require.Equal(t, "Complete", state.Stage)
	require.Equal(t, 1.0, state.Progress)
}

func TestProcessingStateCancel(t *testing.T) {
	repo := NewProcessingStateRepository()
	repo.StartProcessing("Motion", 2)

	repo.CancelProcessing()
	require.False(t, repo.IsProcessing())
	require.Equal(t, "Cancelled", repo.State().Stage)
}
