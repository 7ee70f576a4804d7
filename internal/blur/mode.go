package blur

import "fmt"

// Mode identifies one of the supported blur effects.
type Mode string

const (
	ModeHeavy  Mode = "Heavy"
	ModeSlight Mode = "Slight"
	ModeCustom Mode = "Custom"
	ModeMotion Mode = "Motion"
	ModeRadial Mode = "Radial"
)

// Motion blur directions accepted in Settings.Direction.
const (
	DirectionHorizontal = "horizontal"
	DirectionVertical   = "vertical"
)

// Modes lists all supported modes in menu order.
func Modes() []Mode {
	return []Mode{ModeHeavy, ModeSlight, ModeCustom, ModeMotion, ModeRadial}
}

// ModeNames returns the mode names for dropdown population.
func ModeNames() []string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}

// ParseMode validates a mode name coming from the GUI dropdown or CLI flag.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown blur mode: %q", name)
}

func (m Mode) String() string {
	return string(m)
}

// Settings carries the tunable parameters. KernelSize and Sigma apply to
// Custom, Direction to Motion, Angle to Radial; the other modes ignore it.
type Settings struct {
	KernelSize int
	Sigma      float64
	Direction  string
	Angle      int
}

// DefaultSettings mirrors the settings the GUI starts with.
func DefaultSettings() Settings {
	return Settings{
		KernelSize: 25,
		Sigma:      5,
		Direction:  DirectionHorizontal,
		Angle:      45,
	}
}
