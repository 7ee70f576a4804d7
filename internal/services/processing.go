package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"flexiblur/internal/blur"
	"flexiblur/internal/logger"
	"flexiblur/internal/media"
	"flexiblur/internal/models"
)

// Request describes one batch run: which files, what blur, where the
// output goes. This is the scriptable surface of the application; the GUI
// builds the same Request the batch CLI does.
type Request struct {
	Paths     []string
	ROI       blur.ROI
	Mode      string
	Settings  blur.Settings
	TimeRange media.TimeRange
	OutputDir string
}

// FileResult is the per-file outcome. A failed file carries its error and
// never aborts the rest of the batch.
type FileResult struct {
	InputPath  string
	OutputPath string
	Duration   time.Duration
	Err        error
}

// BatchResult aggregates the outcomes of one Request.
type BatchResult struct {
	Results   []FileResult
	Succeeded int
	Failed    int
}

// ProgressFunc is invoked after each file completes.
type ProgressFunc func(completed, total int)

// ProcessingService runs blur requests over a bounded worker pool. Files
// are independent, so no state is shared between workers.
type ProcessingService struct {
	logger      logger.Logger
	blurManager *blur.Manager
	stateRepo   *models.ProcessingStateRepository
	loader      *media.Loader
	saver       *media.Saver
	video       *media.VideoProcessor
	workerPool  chan struct{}

	mu         sync.Mutex
	cancelFunc context.CancelFunc
}

func NewProcessingService(
	log logger.Logger,
	blurManager *blur.Manager,
	stateRepo *models.ProcessingStateRepository,
	maxWorkers int,
) *ProcessingService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	workers := make(chan struct{}, maxWorkers)
	for i := 0; i < maxWorkers; i++ {
		workers <- struct{}{}
	}

	return &ProcessingService{
		logger:      log,
		blurManager: blurManager,
		stateRepo:   stateRepo,
		loader:      media.NewLoader(log),
		saver:       media.NewSaver(log),
		video:       media.NewVideoProcessor(log),
		workerPool:  workers,
	}
}

// ProcessMedia applies the requested blur to every file concurrently and
// returns the collected per-file results. Blocks until the batch finishes
// or ctx is cancelled.
func (ps *ProcessingService) ProcessMedia(ctx context.Context, req Request, progress ProgressFunc) (*BatchResult, error) {
	if len(req.Paths) == 0 {
		return nil, fmt.Errorf("no media files to process")
	}

	mode, err := blur.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	blurrer, err := ps.blurManager.GetBlurrer(mode)
	if err != nil {
		return nil, err
	}

	if err := blurrer.ValidateSettings(req.Settings); err != nil {
		return nil, err
	}

	if err := req.TimeRange.Validate(); err != nil {
		return nil, err
	}

	if ps.stateRepo.IsProcessing() {
		return nil, fmt.Errorf("processing already in progress")
	}

	if req.OutputDir != "" {
		if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ps.mu.Lock()
	ps.cancelFunc = cancel
	ps.mu.Unlock()

	total := len(req.Paths)
	ps.stateRepo.StartProcessing(req.Mode, total)
	defer ps.stateRepo.CompleteProcessing()

	ps.logger.Info("ProcessingService", "starting batch", map[string]interface{}{
		"files": total,
		"mode":  req.Mode,
		"roi":   req.ROI.String(),
	})

	results := make([]FileResult, total)
	var completed int
	var completedMu sync.Mutex
	var wg sync.WaitGroup

	for i, path := range req.Paths {
		select {
		case <-ctx.Done():
			results[i] = FileResult{InputPath: path, Err: ctx.Err()}
			continue
		case <-ps.workerPool:
		}

		wg.Add(1)
		go func(idx int, inputPath string) {
			defer wg.Done()
			defer func() { ps.workerPool <- struct{}{} }()

			results[idx] = ps.processFile(ctx, inputPath, req, blurrer)

			completedMu.Lock()
			completed++
			done := completed
			completedMu.Unlock()

			ps.stateRepo.UpdateProgress(filepath.Base(inputPath), done)
			if progress != nil {
				progress(done, total)
			}
		}(i, path)
	}

	wg.Wait()

	batch := &BatchResult{Results: results}
	for _, r := range results {
		if r.Err != nil {
			batch.Failed++
		} else {
			batch.Succeeded++
		}
	}

	ps.logger.Info("ProcessingService", "batch finished", map[string]interface{}{
		"succeeded": batch.Succeeded,
		"failed":    batch.Failed,
	})

	return batch, nil
}

// Cancel aborts the in-flight batch, if any.
func (ps *ProcessingService) Cancel() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.cancelFunc != nil {
		ps.cancelFunc()
		ps.stateRepo.CancelProcessing()
	}
}

// IsProcessing reports whether a batch is currently running.
func (ps *ProcessingService) IsProcessing() bool {
	return ps.stateRepo.IsProcessing()
}

func (ps *ProcessingService) processFile(ctx context.Context, path string, req Request, blurrer blur.Blurrer) FileResult {
	start := time.Now()
	result := FileResult{InputPath: path}

	switch media.DetectKind(path) {
	case media.KindImage:
		result.OutputPath, result.Err = ps.processImage(ctx, path, req, blurrer)
	case media.KindVideo:
		result.OutputPath, result.Err = ps.processVideo(ctx, path, req, blurrer)
	default:
		result.Err = fmt.Errorf("unsupported media type: %s", path)
	}

	result.Duration = time.Since(start)

	if result.Err != nil {
		ps.logger.Error("ProcessingService", result.Err, map[string]interface{}{
			"path": path,
		})
	} else {
		ps.logger.Info("ProcessingService", "file processed", map[string]interface{}{
			"path":        path,
			"output":      result.OutputPath,
			"duration_ms": result.Duration.Milliseconds(),
		})
	}

	return result
}

// processImage blurs a still image and writes the result back over the
// staged working copy.
func (ps *ProcessingService) processImage(ctx context.Context, path string, req Request, blurrer blur.Blurrer) (string, error) {
	loaded, err := ps.loader.LoadImage(path)
	if err != nil {
		return "", err
	}
	defer loaded.Close()

	processed, err := blur.ApplyRegion(ctx, loaded.Mat, req.ROI, blurrer, req.Settings)
	if err != nil {
		return "", err
	}
	defer processed.Close()

	if err := ps.saver.SaveMat(path, processed); err != nil {
		return "", err
	}

	return path, nil
}

// processVideo blurs a clip frame by frame into the output directory.
func (ps *ProcessingService) processVideo(ctx context.Context, path string, req Request, blurrer blur.Blurrer) (string, error) {
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(path)
	}

	outputPath := filepath.Join(outputDir, filepath.Base(path))
	if outputPath == path {
		ext := filepath.Ext(path)
		outputPath = path[:len(path)-len(ext)] + ".blurred" + ext
	}

	if err := ps.video.Process(ctx, path, outputPath, req.ROI, blurrer, req.Settings, req.TimeRange); err != nil {
		return "", err
	}

	return outputPath, nil
}
