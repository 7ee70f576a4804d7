package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"flexiblur/internal/blur"
	"flexiblur/internal/logger"
	"flexiblur/internal/opencv/safe"
)

// VideoProcessor applies a blur mode frame by frame over a time window of
// a clip.
type VideoProcessor struct {
	logger logger.Logger
	audio  *AudioRemuxer
}

func NewVideoProcessor(log logger.Logger) *VideoProcessor {
	return &VideoProcessor{
		logger: log,
		audio:  NewAudioRemuxer(log),
	}
}

// Process reads inputPath, blurs each frame inside the time range and
// writes the trimmed result to outputPath. The source audio track is
// remuxed into the output when ffmpeg is available.
func (vp *VideoProcessor) Process(
	ctx context.Context,
	inputPath, outputPath string,
	roi blur.ROI,
	blurrer blur.Blurrer,
	settings blur.Settings,
	timeRange TimeRange,
) error {
	capture, err := gocv.VideoCaptureFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open video %s: %w", inputPath, err)
	}
	defer capture.Close()

	fps := capture.Get(gocv.VideoCaptureFPS)
	width := int(capture.Get(gocv.VideoCaptureFrameWidth))
	height := int(capture.Get(gocv.VideoCaptureFrameHeight))
	totalFrames := int(capture.Get(gocv.VideoCaptureFrameCount))

	startFrame, endFrame, err := timeRange.FrameWindow(fps, totalFrames)
	if err != nil {
		return fmt.Errorf("invalid time range for %s: %w", inputPath, err)
	}

	if !roi.Empty() {
		if err := roi.Validate(width, height); err != nil {
			return fmt.Errorf("invalid ROI for %s: %w", inputPath, err)
		}
	}

	vp.logger.Info("VideoProcessor", "processing video", map[string]interface{}{
		"path":        inputPath,
		"fps":         fps,
		"size":        fmt.Sprintf("%dx%d", width, height),
		"frame_start": startFrame,
		"frame_end":   endFrame,
		"mode":        blurrer.Name(),
	})

	writer, err := gocv.VideoWriterFile(outputPath, codecForPath(outputPath), fps, width, height, true)
	if err != nil {
		return fmt.Errorf("failed to open video writer for %s: %w", outputPath, err)
	}
	defer writer.Close()

	if startFrame > 0 {
		capture.Set(gocv.VideoCapturePosFrames, float64(startFrame))
	}

	// One decode buffer reused across the whole loop; capture.Read refills
	// it in place.
	frame := gocv.NewMat()
	safeFrame, err := safe.WrapEmptyMat(frame)
	if err != nil {
		frame.Close()
		return err
	}
	defer safeFrame.Close()

	for frameIdx := startFrame; frameIdx < endFrame; frameIdx++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if ok := capture.Read(&frame); !ok || frame.Empty() {
			// Container frame counts overestimate on some codecs.
			vp.logger.Warning("VideoProcessor", "stream ended early", map[string]interface{}{
				"path":     inputPath,
				"frame":    frameIdx,
				"expected": endFrame,
			})
			break
		}

		err = blur.ApplyRegionInPlace(ctx, safeFrame, roi, blurrer, settings)
		if err != nil {
			return fmt.Errorf("frame %d of %s failed: %w", frameIdx, inputPath, err)
		}

		if err := writer.Write(frame); err != nil {
			return fmt.Errorf("failed to write frame %d to %s: %w", frameIdx, outputPath, err)
		}
	}

	if err := vp.audio.Remux(ctx, inputPath, outputPath, timeRange); err != nil {
		// Video output is complete; losing audio is not fatal.
		vp.logger.Warning("VideoProcessor", "audio remux skipped", map[string]interface{}{
			"path":   outputPath,
			"reason": err.Error(),
		})
	}

	return nil
}

// codecForPath picks a FourCC the container supports.
func codecForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".avi":
		return "MJPG"
	default:
		return "mp4v"
	}
}
