package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/renderer"
	"github.com/pelletier/go-toml/v2"
)

// defaultConfigPath is read when no -config flag is given and the file exists.
const defaultConfigPath = "oxy-canvas.toml"

// Config represents the oxy-canvas.toml configuration file.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Canvas   CanvasConfig   `toml:"canvas"`
	Renderer RendererConfig `toml:"renderer"`
	Log      LogConfig      `toml:"log"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// Size limits; 0 leaves the bound unset.
	MinWidth  int `toml:"min_width"`
	MinHeight int `toml:"min_height"`
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
}

type CanvasConfig struct {
	// LocksCursor selects pointer-lock input with relative motion.
	LocksCursor bool `toml:"locks_cursor"`
	// FrameLimit caps frames per second; 0 is uncapped.
	FrameLimit float64 `toml:"frame_limit"`
	Profiling  bool    `toml:"profiling"`
}

type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode string     `toml:"present_mode"`
	ClearColor  [4]float64 `toml:"clear_color"`
	Software    bool       `toml:"software"`
}

type LogConfig struct {
	// Level is a golog level name: debug, info, warn, error or disable.
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "oxy-canvas",
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 240,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			ClearColor:  [4]float64{0.1, 0.1, 0.1, 1},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from path. An empty path reads oxy-canvas.toml from the
// working directory when it exists and returns the defaults otherwise.
//
// Parameters:
//   - path: the config file path, or "" for the default location
//
// Returns:
//   - Config: the loaded configuration with defaults filled in
//   - error: error if the file could not be read, parsed or validated
func LoadConfig(path string) (Config, error) {
	defaults := DefaultConfig()
	config := defaults

	if path == "" {
		path = defaultConfigPath
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Absent keys keep their defaults. Empty strings and zero sizes also fall back to them; the
	// clear color is taken as written, [0, 0, 0, 0] being transparent black.
	config.Window.Title = common.Coalesce(config.Window.Title, defaults.Window.Title)
	config.Window.Width = common.Coalesce(config.Window.Width, defaults.Window.Width)
	config.Window.Height = common.Coalesce(config.Window.Height, defaults.Window.Height)
	config.Renderer.PresentMode = common.Coalesce(config.Renderer.PresentMode, defaults.Renderer.PresentMode)
	config.Log.Level = common.Coalesce(config.Log.Level, defaults.Log.Level)

	if _, ok := renderer.ParsePresentMode(config.Renderer.PresentMode); !ok {
		return config, fmt.Errorf("%s: unknown present_mode %q", path, config.Renderer.PresentMode)
	}
	if config.Canvas.FrameLimit < 0 {
		return config, fmt.Errorf("%s: frame_limit must not be negative", path)
	}
	return config, nil
}
