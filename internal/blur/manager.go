package blur

import (
	"fmt"
	"sync"
)

// Manager holds the registered blur modes and their current settings.
type Manager struct {
	blurrers    map[Mode]Blurrer
	currentMode Mode
	settings    map[Mode]Settings
	mu          sync.RWMutex
}

func NewManager() *Manager {
	manager := &Manager{
		blurrers:    make(map[Mode]Blurrer),
		currentMode: ModeHeavy,
		settings:    make(map[Mode]Settings),
	}

	manager.registerBlurrers()

	return manager
}

func (m *Manager) registerBlurrers() {
	for _, b := range []Blurrer{
		NewHeavyBlurrer(),
		NewSlightBlurrer(),
		NewCustomBlurrer(),
		NewMotionBlurrer(),
		NewRadialBlurrer(),
	} {
		mode := Mode(b.Name())
		m.blurrers[mode] = b
		m.settings[mode] = b.DefaultSettings()
	}
}

func (m *Manager) SetCurrentMode(name string) error {
	mode, err := ParseMode(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentMode = mode
	return nil
}

func (m *Manager) CurrentMode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentMode
}

func (m *Manager) GetBlurrer(mode Mode) (Blurrer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if b, exists := m.blurrers[mode]; exists {
		return b, nil
	}

	return nil, fmt.Errorf("unknown blur mode: %s", mode)
}

func (m *Manager) GetSettings(mode Mode) Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, exists := m.settings[mode]; exists {
		return s
	}

	return DefaultSettings()
}

func (m *Manager) SetSettings(mode Mode, settings Settings) error {
	m.mu.RLock()
	b, exists := m.blurrers[mode]
	m.mu.RUnlock()

	if !exists {
		return fmt.Errorf("unknown blur mode: %s", mode)
	}

	if err := b.ValidateSettings(settings); err != nil {
		return fmt.Errorf("invalid settings for %s: %w", mode, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[mode] = settings
	return nil
}
