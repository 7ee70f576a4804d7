// flexiblur-batch runs blur processing headless over explicit paths, for
// scripted use:
//
//	flexiblur-batch -mode Heavy -roi 50,50,200,200 -out output/ clip.mp4 photo.jpg
//
// Originals are never modified: files are staged to a temp directory and
// results land in the output directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"flexiblur/internal/blur"
	"flexiblur/internal/config"
	"flexiblur/internal/logger"
	"flexiblur/internal/media"
	"flexiblur/internal/models"
	"flexiblur/internal/services"
	"flexiblur/internal/shutdown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		modeName  = flag.String("mode", string(blur.ModeHeavy), "blur mode: Heavy, Slight, Custom, Motion, Radial")
		roiSpec   = flag.String("roi", "", "region of interest as x,y,w,h (default: full frame)")
		ksize     = flag.Int("ksize", 25, "kernel size for Custom mode (positive odd)")
		sigma     = flag.Float64("sigma", 5, "sigma for Custom mode")
		direction = flag.String("direction", blur.DirectionHorizontal, "motion blur direction: horizontal or vertical")
		angle     = flag.Int("angle", 45, "radius for Radial mode")
		start     = flag.Float64("start", 0, "video start time in seconds")
		end       = flag.Float64("end", 0, "video end time in seconds (0 = clip end)")
		outputDir = flag.String("out", "", "output directory (default: from config)")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: flexiblur-batch [flags] <media files>")
		flag.PrintDefaults()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration load failed: %v\n", err)
		return 1
	}

	if *outputDir == "" {
		*outputDir = cfg.OutputDir
	}

	roi, err := parseROI(*roiSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -roi: %v\n", err)
		return 2
	}

	appLogger := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))

	shutdownManager := shutdown.NewManager(appLogger)
	shutdownManager.Listen()

	mediaRepo := models.NewMediaRepository()
	defer mediaRepo.Shutdown()
	shutdownManager.Register(mediaRepo)

	items, err := mediaRepo.Stage(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "staging failed: %v\n", err)
		return 1
	}

	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = item.StagedPath
	}

	stateRepo := models.NewProcessingStateRepository()
	processingService := services.NewProcessingService(appLogger, blur.NewManager(), stateRepo, cfg.MaxWorkers)

	req := services.Request{
		Paths: paths,
		ROI:   roi,
		Mode:  *modeName,
		Settings: blur.Settings{
			KernelSize: *ksize,
			Sigma:      *sigma,
			Direction:  *direction,
			Angle:      *angle,
		},
		TimeRange: media.TimeRange{Start: *start, End: *end},
		OutputDir: *outputDir,
	}

	batch, err := processingService.ProcessMedia(shutdownManager.Context(), req, func(completed, total int) {
		fmt.Printf("processed %d/%d\n", completed, total)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "processing failed: %v\n", err)
		return 1
	}

	for _, result := range batch.Results {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", result.InputPath, result.Err)
			continue
		}

		outputPath, err := exportResult(result.OutputPath, *outputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", result.InputPath, err)
			continue
		}

		fmt.Printf("wrote %s\n", outputPath)
	}

	if batch.Succeeded == 0 {
		return 1
	}
	return 0
}

// exportResult moves a processed file into the output directory. Videos
// are written there directly; blurred images sit on the staged copy and
// need the final copy out.
func exportResult(processedPath, outputDir string) (string, error) {
	if media.DetectKind(processedPath) != media.KindImage {
		return processedPath, nil
	}

	outputPath := filepath.Join(outputDir, filepath.Base(processedPath))
	if err := media.CopyFile(processedPath, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// parseROI parses "x,y,w,h".
func parseROI(spec string) (blur.ROI, error) {
	if spec == "" {
		return blur.ROI{}, nil
	}

	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return blur.ROI{}, fmt.Errorf("expected x,y,w,h, got %q", spec)
	}

	values := make([]int, 4)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return blur.ROI{}, fmt.Errorf("component %d of %q: %w", i+1, spec, err)
		}
		values[i] = v
	}

	return blur.ROI{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, nil
}
