package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"flexiblur/internal/media"
)

func writeTestFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
	return path
}

func TestMediaRepositoryStage(t *testing.T) {
	dir := t.TempDir()
	photo := writeTestFile(t, dir, "photo.jpg")
	clip := writeTestFile(t, dir, "clip.mp4")

	repo := NewMediaRepository()
	defer repo.Shutdown()

	items, err := repo.Stage([]string{photo, clip})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 2, repo.Count())

	require.Equal(t, media.KindImage, items[0].Kind)
	require.Equal(t, media.KindVideo, items[1].Kind)
	require.Equal(t, "photo.jpg", items[0].Name())

	for _, item := range items {
		require.NotEqual(t, item.SourcePath, item.StagedPath)
		data, err := os.ReadFile(item.StagedPath)
		require.NoError(t, err)
		require.Equal(t, filepath.Base(item.SourcePath), string(data))
	}

	first := repo.First()
	require.NotNil(t, first)
	require.Equal(t, photo, first.SourcePath)
}

func TestMediaRepositoryStageRejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	doc := writeTestFile(t, dir, "notes.txt")

	repo := NewMediaRepository()
	_, err := repo.Stage([]string{doc})
	require.Error(t, err)
	require.Equal(t, 0, repo.Count())
}

func TestMediaRepositoryStageRejectsEmptySet(t *testing.T) {
	repo := NewMediaRepository()
	_, err := repo.Stage(nil)
	require.Error(t, err)
}

func TestMediaRepositoryClearRemovesStagedCopies(t *testing.T) {
	dir := t.TempDir()
	photo := writeTestFile(t, dir, "photo.png")

	repo := NewMediaRepository()
	items, err := repo.Stage([]string{photo})
	require.NoError(t, err)
	staged := items[0].StagedPath

	repo.Clear()
	require.Equal(t, 0, repo.Count())
	require.Nil(t, repo.First())

	_, err = os.Stat(staged)
	require.True(t, os.IsNotExist(err), "staged copy must be deleted")

	_, err = os.Stat(photo)
	require.NoError(t, err, "original must survive Clear")
}

func TestMediaRepositoryStageDisambiguatesDuplicateNames(t *testing.T) {
	first := filepath.Join(t.TempDir(), "x.jpg")
	require.NoError(t, os.WriteFile(first, []byte("from dirA"), 0o644))
	second := filepath.Join(t.TempDir(), "x.jpg")
	require.NoError(t, os.WriteFile(second, []byte("from dirB"), 0o644))

	repo := NewMediaRepository()
	defer repo.Shutdown()

	items, err := repo.Stage([]string{first, second})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotEqual(t, items[0].StagedPath, items[1].StagedPath)

	// Both staged copies must hold their own source's content.
	for i, want := range []string{"from dirA", "from dirB"} {
		data, err := os.ReadFile(items[i].StagedPath)
		require.NoError(t, err)
		require.Equal(t, want, string(data))
	}
}

func TestMediaRepositoryRestageReplacesSet(t *testing.T) {
	dir := t.TempDir()
	first := writeTestFile(t, dir, "a.jpg")
	second := writeTestFile(t, dir, "b.jpg")

	repo := NewMediaRepository()
	defer repo.Shutdown()

	items, err := repo.Stage([]string{first})
	require.NoError(t, err)
	oldStaged := items[0].StagedPath

	_, err = repo.Stage([]string{second})
	require.NoError(t, err)
	require.Equal(t, 1, repo.Count())
	require.Equal(t, second, repo.First().SourcePath)

	_, err = os.Stat(oldStaged)
	require.True(t, os.IsNotExist(err), "previous staging directory must be removed")
}
