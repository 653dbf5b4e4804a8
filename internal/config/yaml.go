package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/joefrost01/retro-compositor/pkg/bitint"
)

// ErrInvalidConfig is the sentinel wrapped by every configuration validation
// failure. All checks run before any decoding begins, so a pipeline that
// starts can never fail on configuration mid-run.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig loads configuration from a YAML file specified by path. If path
// is empty, it searches default locations ("retro.yaml"). If no file is found,
// it uses built-in defaults. After loading, it applies environment variable
// overrides and validates the final configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		candidates := []string{"retro.yaml", "retro-compositor.yaml"}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every configurable value against its documented bounds.
// It returns an error wrapping ErrInvalidConfig on the first violation.
func (c *Config) Validate() error {
	if !bitint.IsPowerOfTwo(c.Audio.WindowSize) {
		return fmt.Errorf("%w: audio.window_size must be a power of two, got %d",
			ErrInvalidConfig, c.Audio.WindowSize)
	}
	if c.Audio.WindowSize < MinWindowSize || c.Audio.WindowSize > MaxWindowSize {
		return fmt.Errorf("%w: audio.window_size must be in [%d, %d], got %d",
			ErrInvalidConfig, MinWindowSize, MaxWindowSize, c.Audio.WindowSize)
	}
	if c.Audio.MonoMix != "average" && c.Audio.MonoMix != "first" {
		return fmt.Errorf("%w: audio.mono_mix must be \"average\" or \"first\", got %q",
			ErrInvalidConfig, c.Audio.MonoMix)
	}
	if c.Analysis.BandCount < MinBandCount || c.Analysis.BandCount > c.Audio.WindowSize/2 {
		return fmt.Errorf("%w: analysis.band_count must be in [%d, window_size/2], got %d",
			ErrInvalidConfig, MinBandCount, c.Analysis.BandCount)
	}
	if c.Analysis.Attack <= 0 || c.Analysis.Attack > 1 {
		return fmt.Errorf("%w: analysis.attack must be in (0, 1], got %g",
			ErrInvalidConfig, c.Analysis.Attack)
	}
	if c.Analysis.Release <= 0 || c.Analysis.Release > 1 {
		return fmt.Errorf("%w: analysis.release must be in (0, 1], got %g",
			ErrInvalidConfig, c.Analysis.Release)
	}
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("%w: video dimensions must be positive, got %dx%d",
			ErrInvalidConfig, c.Video.Width, c.Video.Height)
	}
	if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		return fmt.Errorf("%w: video dimensions must be even, got %dx%d",
			ErrInvalidConfig, c.Video.Width, c.Video.Height)
	}
	if c.Video.FPS <= 0 || c.Video.FPS > MaxFPS {
		return fmt.Errorf("%w: video.fps must be in (0, %d], got %d",
			ErrInvalidConfig, MaxFPS, c.Video.FPS)
	}
	switch c.Style.Name {
	case "vhs", "film", "vintage", "boards":
	default:
		return fmt.Errorf("%w: style.name %q unknown (available: vhs, film, vintage, boards)",
			ErrInvalidConfig, c.Style.Name)
	}
	if c.Style.Intensity < 0 || c.Style.Intensity > 1 {
		return fmt.Errorf("%w: style.intensity must be in [0, 1], got %g",
			ErrInvalidConfig, c.Style.Intensity)
	}
	if c.Style.PaletteSize != 16 && c.Style.PaletteSize != 256 {
		return fmt.Errorf("%w: style.palette_size must be 16 or 256, got %d",
			ErrInvalidConfig, c.Style.PaletteSize)
	}
	switch c.Style.Dither {
	case "none", "ordered", "random":
	default:
		return fmt.Errorf("%w: style.dither %q unknown (available: none, ordered, random)",
			ErrInvalidConfig, c.Style.Dither)
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("%w: pipeline.workers must be >= 0, got %d",
			ErrInvalidConfig, c.Pipeline.Workers)
	}
	if c.Pipeline.QueueDepth < 1 {
		return fmt.Errorf("%w: pipeline.queue_depth must be >= 1, got %d",
			ErrInvalidConfig, c.Pipeline.QueueDepth)
	}
	return nil
}

// applyEnvOverrides applies RETRO_* environment variables on top of whatever
// the file (or the defaults) provided. Invalid values are ignored rather than
// fatal; Validate catches anything that matters afterwards.
func (cfg *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("RETRO_LOG_LEVEL"); ok {
		cfg.LogLevel = val
	}
	if val, ok := os.LookupEnv("RETRO_STYLE"); ok {
		cfg.Style.Name = val
	}
	if val, ok := os.LookupEnv("RETRO_WORKERS"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			cfg.Pipeline.Workers = iVal
		}
	}
	if val, ok := os.LookupEnv("RETRO_FPS"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			cfg.Video.FPS = iVal
		}
	}
}
