package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"flexiblur/internal/media"
)

// MediaItem tracks one loaded media file and its staged working copy.
// Processing always runs on the staged copy so the user's original is
// never mutated.
type MediaItem struct {
	SourcePath string
	StagedPath string
	Kind       media.Kind
	Width      int
	Height     int
	Format     string
	LoadTime   time.Time
}

// Name returns the base file name of the source.
func (mi *MediaItem) Name() string {
	return filepath.Base(mi.SourcePath)
}

// MediaRepository stores the loaded media set and the temp directory the
// working copies live in.
type MediaRepository struct {
	mu       sync.RWMutex
	items    []*MediaItem
	stageDir string
}

func NewMediaRepository() *MediaRepository {
	return &MediaRepository{}
}

// Stage copies the given files into a fresh temp directory and replaces
// the current media set.
func (r *MediaRepository) Stage(paths []string) ([]*MediaItem, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no media files selected")
	}

	stageDir, err := os.MkdirTemp("", "flexiblur-media-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	items := make([]*MediaItem, 0, len(paths))
	staged := make(map[string]bool, len(paths))
	for _, path := range paths {
		kind := media.DetectKind(path)
		if kind == media.KindUnknown {
			os.RemoveAll(stageDir)
			return nil, fmt.Errorf("unsupported media type: %s", path)
		}

		// Inputs from different directories can share a base name.
		name := filepath.Base(path)
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		for n := 1; staged[name]; n++ {
			name = fmt.Sprintf("%s_%d%s", stem, n, ext)
		}
		staged[name] = true

		stagedPath := filepath.Join(stageDir, name)
		if err := media.CopyFile(path, stagedPath); err != nil {
			os.RemoveAll(stageDir)
			return nil, fmt.Errorf("failed to stage %s: %w", path, err)
		}

		items = append(items, &MediaItem{
			SourcePath: path,
			StagedPath: stagedPath,
			Kind:       kind,
			LoadTime:   time.Now(),
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cleanupLocked()
	r.items = items
	r.stageDir = stageDir

	return items, nil
}

// Items returns the current media set.
func (r *MediaRepository) Items() []*MediaItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*MediaItem, len(r.items))
	copy(items, r.items)
	return items
}

// First returns the first loaded item, used for preview and ROI selection.
func (r *MediaRepository) First() *MediaItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.items) == 0 {
		return nil
	}
	return r.items[0]
}

// Count returns the number of loaded items.
func (r *MediaRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Clear removes the media set and its staged copies.
func (r *MediaRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleanupLocked()
	r.items = nil
}

func (r *MediaRepository) cleanupLocked() {
	if r.stageDir != "" {
		os.RemoveAll(r.stageDir)
		r.stageDir = ""
	}
}

// Shutdown releases staged files.
func (r *MediaRepository) Shutdown() {
	r.Clear()
}
