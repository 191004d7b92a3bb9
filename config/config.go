// Package config loads visualizer settings from YAML with PATHVIZ_* environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pathviz/navigation"
)

var validate = newValidator()

// newValidator registers "algorithm", which accepts every name navigation parses
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("algorithm", func(fl validator.FieldLevel) bool {
		_, err := navigation.ParseAlgorithm(fl.Field().String())
		return err == nil
	})
	return v
}

// Config is the root configuration document
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Playback PlaybackConfig `yaml:"playback"`
	Search   SearchConfig   `yaml:"search"`
	Maze     MazeConfig     `yaml:"maze"`
	Audio    AudioConfig    `yaml:"audio"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type GridConfig struct {
	Rows int `yaml:"rows" validate:"min=3,max=512"`
	Cols int `yaml:"cols" validate:"min=3,max=512"`
}

type PlaybackConfig struct {
	Interval time.Duration `yaml:"interval" validate:"min=0,max=10s"`
}

type SearchConfig struct {
	Algorithm string `yaml:"algorithm" validate:"algorithm"`
}

// MazeConfig seed 0 selects a time-based seed per generation
type MazeConfig struct {
	Seed int64 `yaml:"seed"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume" validate:"gte=0,lte=1"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Grid:     GridConfig{Rows: 27, Cols: 85},
		Playback: PlaybackConfig{Interval: 10 * time.Millisecond},
		Search:   SearchConfig{Algorithm: "dijkstra"},
		Audio:    AudioConfig{Enabled: false, Volume: 0.5},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads path (optional), applies environment overrides and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and grid shape
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ErrInvalidOverride is wrapped by errors from malformed environment values
var ErrInvalidOverride = errors.New("invalid environment override")

func applyEnv(cfg *Config, getenv func(string) string) error {
	// Grid dimensions
	if v := getenv("PATHVIZ_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_ROWS=%q", ErrInvalidOverride, v)
		}
		cfg.Grid.Rows = n
	}
	if v := getenv("PATHVIZ_COLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_COLS=%q", ErrInvalidOverride, v)
		}
		cfg.Grid.Cols = n
	}

	if v := getenv("PATHVIZ_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_INTERVAL=%q", ErrInvalidOverride, v)
		}
		cfg.Playback.Interval = d
	}

	if v := getenv("PATHVIZ_ALGORITHM"); v != "" {
		cfg.Search.Algorithm = v
	}

	if v := getenv("PATHVIZ_MAZE_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_MAZE_SEED=%q", ErrInvalidOverride, v)
		}
		cfg.Maze.Seed = n
	}

	// Audio, volume given as 0-100
	if v := getenv("PATHVIZ_AUDIO_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_AUDIO_ENABLED=%q", ErrInvalidOverride, v)
		}
		cfg.Audio.Enabled = b
	}
	if v := getenv("PATHVIZ_AUDIO_VOLUME"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PATHVIZ_AUDIO_VOLUME=%q", ErrInvalidOverride, v)
		}
		cfg.Audio.Volume = min(max(float64(n)/100.0, 0), 1)
	}

	if v := getenv("PATHVIZ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv("PATHVIZ_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := getenv("PATHVIZ_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	return nil
}
