package media

import (
	"fmt"
	"math"
)

// TimeRange selects the [Start, End) portion of a clip, in seconds.
// End <= 0 means "until clip end".
type TimeRange struct {
	Start float64
	End   float64
}

// Full reports whether the whole clip is selected.
func (tr TimeRange) Full() bool {
	return tr.Start == 0 && tr.End <= 0
}

// Validate rejects negative starts and inverted ranges.
func (tr TimeRange) Validate() error {
	if tr.Start < 0 {
		return fmt.Errorf("start time must be non-negative, got %v", tr.Start)
	}

	if tr.End > 0 && tr.End <= tr.Start {
		return fmt.Errorf("end time %v must be after start time %v", tr.End, tr.Start)
	}

	return nil
}

// FrameWindow converts the time range into an inclusive-exclusive frame
// index window for a clip with the given fps and frame count.
func (tr TimeRange) FrameWindow(fps float64, totalFrames int) (startFrame, endFrame int, err error) {
	if err := tr.Validate(); err != nil {
		return 0, 0, err
	}

	if fps <= 0 {
		return 0, 0, fmt.Errorf("invalid fps: %v", fps)
	}

	if totalFrames <= 0 {
		return 0, 0, fmt.Errorf("invalid frame count: %d", totalFrames)
	}

	startFrame = int(math.Floor(tr.Start * fps))
	if startFrame >= totalFrames {
		return 0, 0, fmt.Errorf("start time %vs is past clip end (%d frames at %.2f fps)",
			tr.Start, totalFrames, fps)
	}

	endFrame = totalFrames
	if tr.End > 0 {
		endFrame = int(math.Ceil(tr.End * fps))
		if endFrame > totalFrames {
			endFrame = totalFrames
		}
	}

	return startFrame, endFrame, nil
}
