package controllers

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"flexiblur/internal/blur"
	"flexiblur/internal/logger"
	"flexiblur/internal/media"
	"flexiblur/internal/models"
	"flexiblur/internal/services"
	"flexiblur/internal/views"
)

// MainController mediates between the Fyne view and the services.
type MainController struct {
	logger            logger.Logger
	mediaService      *services.MediaService
	processingService *services.ProcessingService
	blurManager       *blur.Manager

	mediaRepo *models.MediaRepository
	stateRepo *models.ProcessingStateRepository

	mainView *views.MainView

	mu            sync.RWMutex
	currentWindow fyne.Window
	roi           blur.ROI
	timeRange     media.TimeRange
	fullVideo     bool
	lastBatch     *services.BatchResult
	outputDir     string
	appCtx        context.Context
}

func NewMainController(
	log logger.Logger,
	mediaService *services.MediaService,
	processingService *services.ProcessingService,
	blurManager *blur.Manager,
	mediaRepo *models.MediaRepository,
	stateRepo *models.ProcessingStateRepository,
	outputDir string,
) *MainController {
	return &MainController{
		logger:            log,
		mediaService:      mediaService,
		processingService: processingService,
		blurManager:       blurManager,
		mediaRepo:         mediaRepo,
		stateRepo:         stateRepo,
		fullVideo:         true,
		outputDir:         outputDir,
		appCtx:            context.Background(),
	}
}

// SetMainView associates the view and wires its events to this controller.
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view

	view.SetLoadMediaHandler(mc.LoadMedia)
	view.SetSelectROIHandler(mc.SelectROI)
	view.SetClearROIHandler(mc.ClearROI)
	view.SetStartHandler(mc.StartProcessing)
	view.SetCancelHandler(mc.CancelProcessing)
	view.SetSaveHandler(mc.SaveResults)
	view.SetModeChangeHandler(mc.ChangeMode)
	view.SetSettingsChangeHandler(mc.UpdateSettings)
	view.SetVideoOptionsHandler(mc.UpdateVideoOptions)
}

// SetWindow sets the main application window used for dialogs.
func (mc *MainController) SetWindow(window fyne.Window) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.currentWindow = window
}

// SetContext sets the application lifetime context processing runs under.
func (mc *MainController) SetContext(ctx context.Context) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.appCtx = ctx
}

// LoadMedia stages the selected files and shows the first one.
func (mc *MainController) LoadMedia(paths []string) {
	items, err := mc.mediaService.LoadMedia(paths)
	if err != nil {
		// Staging failed, so nothing is loaded; the pick list must match.
		fyne.Do(mc.mainView.ResetSelection)
		mc.showError("Media load failed", err)
		return
	}

	// ROI from a previous media set no longer applies.
	mc.mu.Lock()
	mc.roi = blur.ROI{}
	mc.lastBatch = nil
	mc.mu.Unlock()

	first := items[0]
	preview, err := mc.mediaService.Preview(first)
	if err != nil {
		mc.showError("Preview failed", err)
		return
	}

	fyne.Do(func() {
		mc.mainView.ShowPreview(preview, first.Name())
		mc.mainView.UpdateStatus(fmt.Sprintf("%d media files loaded", len(items)))
		mc.mainView.SetMediaInfo(first.Width, first.Height, first.Format, first.Kind.String())
		mc.mainView.ClearROIInfo()
	})
}

// SelectROI opens the drag-to-select window over the first loaded media.
func (mc *MainController) SelectROI() {
	first := mc.mediaRepo.First()
	if first == nil {
		mc.showError("No media", fmt.Errorf("load media files before selecting a region"))
		return
	}

	frame, err := mc.mediaService.FullFrame(first)
	if err != nil {
		mc.showError("ROI selection failed", err)
		return
	}

	fyne.Do(func() {
		mc.mainView.ShowROISelector(frame, func(roi blur.ROI) {
			roi = roi.Normalized()
			if err := roi.Validate(first.Width, first.Height); err != nil {
				mc.showError("Invalid region", err)
				return
			}

			mc.mu.Lock()
			mc.roi = roi
			mc.mu.Unlock()

			mc.logger.Info("MainController", "region selected", map[string]interface{}{
				"roi": roi.String(),
			})

			fyne.Do(func() {
				mc.mainView.SetROIInfo(roi)
			})
		})
	})
}

// ClearROI drops the selected region so the whole frame gets blurred.
func (mc *MainController) ClearROI() {
	mc.mu.Lock()
	mc.roi = blur.ROI{}
	mc.mu.Unlock()

	fyne.Do(func() {
		mc.mainView.ClearROIInfo()
	})
}

// ChangeMode switches the active blur mode.
func (mc *MainController) ChangeMode(name string) {
	if err := mc.blurManager.SetCurrentMode(name); err != nil {
		mc.showError("Mode change failed", err)
		return
	}

	mode := mc.blurManager.CurrentMode()
	settings := mc.blurManager.GetSettings(mode)

	fyne.Do(func() {
		mc.mainView.ShowSettings(mode, settings)
		mc.mainView.UpdateStatus(fmt.Sprintf("Blur mode: %s", name))
	})
}

// UpdateSettings stores edited custom settings after validation. Even
// kernel sizes are rounded up rather than rejected, matching the
// settings dialog behavior.
func (mc *MainController) UpdateSettings(settings blur.Settings) {
	if settings.KernelSize%2 == 0 {
		settings.KernelSize++
	}

	mode := mc.blurManager.CurrentMode()
	if err := mc.blurManager.SetSettings(mode, settings); err != nil {
		mc.showError("Invalid settings", err)
		return
	}
}

// UpdateVideoOptions stores the time range selection.
func (mc *MainController) UpdateVideoOptions(fullVideo bool, start, end float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.fullVideo = fullVideo
	if fullVideo {
		mc.timeRange = media.TimeRange{}
	} else {
		mc.timeRange = media.TimeRange{Start: start, End: end}
	}
}

// StartProcessing launches the batch on a background goroutine.
func (mc *MainController) StartProcessing() {
	items := mc.mediaRepo.Items()
	if len(items) == 0 {
		mc.showError("No media", fmt.Errorf("load media files before starting processing"))
		return
	}

	if mc.processingService.IsProcessing() {
		return
	}

	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = item.StagedPath
	}

	mc.mu.RLock()
	req := services.Request{
		Paths:     paths,
		ROI:       mc.roi,
		Mode:      string(mc.blurManager.CurrentMode()),
		Settings:  mc.blurManager.GetSettings(mc.blurManager.CurrentMode()),
		TimeRange: mc.timeRange,
		OutputDir: mc.outputDir,
	}
	ctx := mc.appCtx
	mc.mu.RUnlock()

	fyne.Do(func() {
		mc.mainView.SetProcessingActive(true)
		mc.mainView.UpdateStatus("Processing...")
	})

	go mc.runBatch(ctx, req)
}

func (mc *MainController) runBatch(ctx context.Context, req services.Request) {
	batch, err := mc.processingService.ProcessMedia(ctx, req, func(completed, total int) {
		fyne.Do(func() {
			mc.mainView.SetProgress(float64(completed) / float64(total))
		})
	})

	fyne.Do(func() {
		mc.mainView.SetProcessingActive(false)
	})

	if err != nil {
		mc.showError("Processing failed", err)
		return
	}

	mc.mu.Lock()
	mc.lastBatch = batch
	mc.mu.Unlock()

	for _, result := range batch.Results {
		fyne.Do(func() {
			mc.mainView.AppendResult(result)
		})
	}

	// Show the first successful result.
	for i, result := range batch.Results {
		if result.Err == nil {
			item := mc.mediaRepo.Items()[i]
			if preview, previewErr := mc.mediaService.Preview(item); previewErr == nil {
				fyne.Do(func() {
					mc.mainView.ShowPreview(preview, item.Name())
				})
			}
			break
		}
	}

	fyne.Do(func() {
		mc.mainView.UpdateStatus(fmt.Sprintf("Processing complete: %d succeeded, %d failed",
			batch.Succeeded, batch.Failed))
	})
}

// CancelProcessing aborts the running batch.
func (mc *MainController) CancelProcessing() {
	mc.processingService.Cancel()

	fyne.Do(func() {
		mc.mainView.SetProcessingActive(false)
		mc.mainView.UpdateStatus("Processing cancelled")
	})
}

// SaveResults exports processed files to a user-chosen directory.
func (mc *MainController) SaveResults() {
	mc.mu.RLock()
	batch := mc.lastBatch
	mc.mu.RUnlock()

	if batch == nil || batch.Succeeded == 0 {
		mc.showError("Nothing to save", fmt.Errorf("process media before saving"))
		return
	}

	processedPaths := make([]string, 0, batch.Succeeded)
	for _, result := range batch.Results {
		if result.Err == nil {
			processedPaths = append(processedPaths, result.OutputPath)
		}
	}

	fyne.Do(func() {
		mc.mainView.ShowSaveDialog(processedPaths, func(names []string, dir string) {
			go mc.exportResults(processedPaths, names, dir)
		})
	})
}

func (mc *MainController) exportResults(processedPaths, names []string, dir string) {
	exported, err := mc.mediaService.ExportResults(processedPaths, names, dir)
	if err != nil {
		mc.showError("Save failed", err)
		return
	}

	fyne.Do(func() {
		mc.mainView.UpdateStatus(fmt.Sprintf("Saved %d files to %s", len(exported), dir))
	})
}

func (mc *MainController) showError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{
		"context": title,
	})

	fyne.Do(func() {
		mc.mainView.ShowError(title, err)
	})
}
