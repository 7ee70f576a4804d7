package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"flexiblur/internal/logger"
)

// AudioRemuxer copies the source audio track into a processed clip using
// ffmpeg. The OpenCV video writer produces video-only files, so without
// ffmpeg on PATH the output simply stays silent.
type AudioRemuxer struct {
	logger logger.Logger
	binary string
}

func NewAudioRemuxer(log logger.Logger) *AudioRemuxer {
	return &AudioRemuxer{logger: log, binary: "ffmpeg"}
}

// Available reports whether the ffmpeg binary can be found.
func (ar *AudioRemuxer) Available() bool {
	_, err := exec.LookPath(ar.binary)
	return err == nil
}

// Remux muxes the audio of sourcePath (trimmed to the time range) into
// processedPath, replacing the file on success.
func (ar *AudioRemuxer) Remux(ctx context.Context, sourcePath, processedPath string, timeRange TimeRange) error {
	if !ar.Available() {
		return fmt.Errorf("%s not found on PATH", ar.binary)
	}

	// Keep the extension so ffmpeg picks the same container.
	tmpPath := processedPath + ".remux" + filepath.Ext(processedPath)

	// The processed clip is already trimmed, so the trim window applies to
	// the audio source input only.
	args := []string{"-y", "-i", processedPath}
	if !timeRange.Full() {
		args = append(args, "-ss", strconv.FormatFloat(timeRange.Start, 'f', -1, 64))
		if timeRange.End > 0 {
			args = append(args, "-to", strconv.FormatFloat(timeRange.End, 'f', -1, 64))
		}
	}
	args = append(args,
		"-i", sourcePath,
		"-map", "0:v:0",
		"-map", "1:a:0?",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		tmpPath,
	)

	cmd := exec.CommandContext(ctx, ar.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ffmpeg remux failed: %w: %s", err, string(output))
	}

	if err := os.Rename(tmpPath, processedPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s with remuxed file: %w", processedPath, err)
	}

	ar.logger.Debug("AudioRemuxer", "audio track restored", map[string]interface{}{
		"path": processedPath,
	})

	return nil
}
