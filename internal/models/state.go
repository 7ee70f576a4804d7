package models

import (
	"sync"
	"time"
)

// ProcessingState is a point-in-time snapshot of the batch run.
type ProcessingState struct {
	Active         bool
	Mode           string
	Stage          string
	Progress       float64
	FilesTotal     int
	FilesCompleted int
	StartedAt      time.Time
}

// ProcessingStateRepository tracks whether a batch is running and how far
// along it is. The GUI polls it for progress display.
type ProcessingStateRepository struct {
	mu    sync.RWMutex
	state ProcessingState
}

func NewProcessingStateRepository() *ProcessingStateRepository {
	return &ProcessingStateRepository{}
}

func (r *ProcessingStateRepository) StartProcessing(mode string, filesTotal int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = ProcessingState{
		Active:     true,
		Mode:       mode,
		Stage:      "Starting",
		FilesTotal: filesTotal,
		StartedAt:  time.Now(),
	}
}

func (r *ProcessingStateRepository) UpdateProgress(stage string, completed int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Stage = stage
	r.state.FilesCompleted = completed
	if r.state.FilesTotal > 0 {
		r.state.Progress = float64(completed) / float64(r.state.FilesTotal)
	}
}

func (r *ProcessingStateRepository) CompleteProcessing() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Active = false
	r.state.Stage = "Complete"
	r.state.Progress = 1.0
}

func (r *ProcessingStateRepository) CancelProcessing() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Active = false
	r.state.Stage = "Cancelled"
}

func (r *ProcessingStateRepository) IsProcessing() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Active
}

func (r *ProcessingStateRepository) State() ProcessingState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}
