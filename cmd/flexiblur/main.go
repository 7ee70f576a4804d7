package main

import (
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"flexiblur/internal/blur"
	"flexiblur/internal/config"
	"flexiblur/internal/controllers"
	"flexiblur/internal/logger"
	"flexiblur/internal/models"
	"flexiblur/internal/services"
	"flexiblur/internal/shutdown"
	"flexiblur/internal/views"
)

const (
	AppName    = "FlexiBlur"
	AppID      = "com.flexiblur.app"
	AppVersion = "1.0.0"
)

// Application wires the GUI, controller, services and repositories.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView

	mediaService      *services.MediaService
	processingService *services.ProcessingService

	mediaRepo   *models.MediaRepository
	stateRepo   *models.ProcessingStateRepository
	blurManager *blur.Manager

	shutdownManager *shutdown.Manager
}

func main() {
	configureRuntime()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration load failed: %v", err)
	}

	application := NewApplication(cfg)
	application.Run()
}

// configureRuntime tunes the Go runtime for large image allocations.
func configureRuntime() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Large frame buffers churn quickly; give the GC more headroom.
	debug.SetGCPercent(200)

	if os.Getenv("GOMEMLIMIT") == "" {
		debug.SetMemoryLimit(4 << 30)
	}
}

// NewApplication builds the full dependency graph.
func NewApplication(cfg *config.Config) *Application {
	appLogger := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))

	shutdownManager := shutdown.NewManager(appLogger)
	shutdownManager.Listen()

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	mediaRepo := models.NewMediaRepository()
	stateRepo := models.NewProcessingStateRepository()
	blurManager := blur.NewManager()

	mediaService := services.NewMediaService(appLogger, mediaRepo)
	processingService := services.NewProcessingService(appLogger, blurManager, stateRepo, cfg.MaxWorkers)

	view := views.NewMainView(window)
	controller := controllers.NewMainController(
		appLogger,
		mediaService,
		processingService,
		blurManager,
		mediaRepo,
		stateRepo,
		cfg.OutputDir,
	)

	controller.SetWindow(window)
	controller.SetContext(shutdownManager.Context())
	controller.SetMainView(view)

	// Staged media copies must be removed on exit.
	shutdownManager.Register(mediaRepo)

	appLogger.Info("Application", "initialized", map[string]interface{}{
		"version":     AppVersion,
		"max_workers": cfg.MaxWorkers,
		"output_dir":  cfg.OutputDir,
	})

	return &Application{
		fyneApp:           fyneApp,
		window:            window,
		logger:            appLogger,
		controller:        controller,
		view:              view,
		mediaService:      mediaService,
		processingService: processingService,
		mediaRepo:         mediaRepo,
		stateRepo:         stateRepo,
		blurManager:       blurManager,
		shutdownManager:   shutdownManager,
	}
}

// Run shows the main window and blocks until it closes.
func (a *Application) Run() {
	a.window.Resize(fyne.NewSize(1000, 700))
	a.window.SetOnClosed(func() {
		a.processingService.Cancel()
		a.shutdownManager.Shutdown()
	})

	a.window.ShowAndRun()

	a.logger.Info("Application", "terminated", nil)
}
