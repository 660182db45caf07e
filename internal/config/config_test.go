package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	d, err := cfg.WaitDuration()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDuration, d)
	assert.Equal(t, logger.LevelNormal, cfg.Level())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
duration: "1:30"
alarm: /tmp/bell.ogg
volume: -2
tick_interval: 250ms
ring_timeout: 2m
desktop_notify: false
log_level: verbose
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	d, err := cfg.WaitDuration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
	assert.Equal(t, "/tmp/bell.ogg", cfg.Alarm)
	assert.Equal(t, -2.0, cfg.Volume)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 2*time.Minute, cfg.RingTimeout)
	assert.False(t, cfg.DesktopNotify)
	assert.Equal(t, logger.LevelVerbose, cfg.Level())
	assert.Equal(t, 50*time.Millisecond, cfg.LeadIn, "unset keys keep defaults")
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":   "colour: red\n",
		"bad yaml":      "duration: [\n",
		"bad duration":  "duration: soon\n",
		"tick too fast": "tick_interval: 1ms\n",
		"tick too slow": "tick_interval: 5s\n",
		"loud":          "volume: 9\n",
		"negative lead": "lead_in: -1s\n",
		"negative ring": "ring_timeout: -1s\n",
		"bad log level": "log_level: chatty\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
