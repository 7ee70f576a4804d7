package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FLEXIBLUR_OUTPUT_DIR", "")
	t.Setenv("FLEXIBLUR_MAX_WORKERS", "")
	t.Setenv("FLEXIBLUR_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "output", cfg.OutputDir)
	require.Equal(t, 4, cfg.MaxWorkers)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FLEXIBLUR_OUTPUT_DIR", "/tmp/blurred")
	t.Setenv("FLEXIBLUR_MAX_WORKERS", "8")
	t.Setenv("FLEXIBLUR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/blurred", cfg.OutputDir)
	require.Equal(t, 8, cfg.MaxWorkers)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadWorkerCount(t *testing.T) {
	t.Setenv("FLEXIBLUR_MAX_WORKERS", "many")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("FLEXIBLUR_MAX_WORKERS", "0")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("FLEXIBLUR_MAX_WORKERS", "-2")
	_, err = Load()
	require.Error(t, err)
}
