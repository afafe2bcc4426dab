package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oxy-canvas.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config != DefaultConfig() {
		t.Fatalf("config = %+v, want defaults", config)
	}
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "viewer"
width = 800

[canvas]
locks_cursor = true
frame_limit = 120

[log]
level = "debug"
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	defaults := DefaultConfig()

	if config.Window.Title != "viewer" || config.Window.Width != 800 {
		t.Fatalf("window = %+v", config.Window)
	}
	if config.Window.Height != defaults.Window.Height {
		t.Fatalf("height = %d, want default %d", config.Window.Height, defaults.Window.Height)
	}
	if !config.Canvas.LocksCursor || config.Canvas.FrameLimit != 120 {
		t.Fatalf("canvas = %+v", config.Canvas)
	}
	if config.Renderer.PresentMode != "vsync" || config.Renderer.ClearColor != defaults.Renderer.ClearColor {
		t.Fatalf("renderer = %+v", config.Renderer)
	}
	if config.Log.Level != "debug" {
		t.Fatalf("log level = %q", config.Log.Level)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"malformed", "[window\n", "failed to parse"},
		{"present mode", "[renderer]\npresent_mode = \"triple\"\n", "unknown present_mode"},
		{"frame limit", "[canvas]\nframe_limit = -1\n", "frame_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.contains) {
				t.Fatalf("LoadConfig = %v, want error containing %q", err, tt.contains)
			}
		})
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing explicit config accepted")
	}
}

func TestLoadConfigKeepsExplicitTransparentClearColor(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "[renderer]\nclear_color = [0.0, 0.0, 0.0, 0.0]\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Renderer.ClearColor != [4]float64{} {
		t.Fatalf("clear color = %v, want transparent black", config.Renderer.ClearColor)
	}

	config, err = LoadConfig(writeConfig(t, "[renderer]\npresent_mode = \"uncapped\"\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Renderer.ClearColor != DefaultConfig().Renderer.ClearColor {
		t.Fatalf("absent clear color = %v, want default", config.Renderer.ClearColor)
	}
}
