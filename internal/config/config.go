// Package config loads the optional YAML settings file. Settings are only
// read; the timer never writes them back.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
	"github.com/hammamikhairi/ottotimer/internal/timeinput"
)

// Bounds enforced by Validate.
const (
	MinTickInterval = 10 * time.Millisecond
	MaxTickInterval = time.Second
	MinVolume       = -10.0
	MaxVolume       = 4.0
)

// Config holds every tunable setting.
type Config struct {
	// Duration is the initial wait time. Accepts "5m", "1:30" or "130".
	Duration      string        `yaml:"duration"`
	Alarm         string        `yaml:"alarm"`
	Volume        float64       `yaml:"volume"`
	Mute          bool          `yaml:"mute"`
	LeadIn        time.Duration `yaml:"lead_in"`
	TickInterval  time.Duration `yaml:"tick_interval"`
	RingTimeout   time.Duration `yaml:"ring_timeout"`
	DesktopNotify bool          `yaml:"desktop_notify"`
	LogLevel      string        `yaml:"log_level"`
	LogFile       string        `yaml:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Duration:      "5m",
		LeadIn:        50 * time.Millisecond,
		TickInterval:  100 * time.Millisecond,
		RingTimeout:   time.Minute,
		DesktopNotify: true,
		LogLevel:      "normal",
		LogFile:       filepath.Join(".ottotimer", "ottotimer.log"),
	}
}

// DefaultPath returns the per-user config file location, or an empty
// string when the platform has no config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ottotimer", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error; a
// malformed one is. Unknown keys are rejected so typos surface.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and parses the textual fields.
func (c *Config) Validate() error {
	if _, err := c.WaitDuration(); err != nil {
		return err
	}
	if c.LeadIn < 0 {
		return fmt.Errorf("%w: lead_in %s is negative", domain.ErrInvalidDuration, c.LeadIn)
	}
	if c.RingTimeout < 0 {
		return fmt.Errorf("%w: ring_timeout %s is negative", domain.ErrInvalidDuration, c.RingTimeout)
	}
	if c.TickInterval < MinTickInterval || c.TickInterval > MaxTickInterval {
		return fmt.Errorf("%w: tick_interval %s outside [%s, %s]",
			domain.ErrInvalidDuration, c.TickInterval, MinTickInterval, MaxTickInterval)
	}
	if c.Volume < MinVolume || c.Volume > MaxVolume {
		return fmt.Errorf("volume %.1f outside [%.0f, %.0f]", c.Volume, MinVolume, MaxVolume)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// WaitDuration parses Duration.
func (c *Config) WaitDuration() (time.Duration, error) {
	d, err := timeinput.ParseDuration(c.Duration)
	if err != nil {
		return 0, fmt.Errorf("duration: %w", err)
	}
	return d, nil
}

// Level parses LogLevel, falling back to normal.
func (c *Config) Level() logger.Level {
	l, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelNormal
	}
	return l
}
