// Package config handles demo configuration loading.
package config

import (
	"github.com/phanxgames/kinetic"
)

// Config holds all demo settings.
type Config struct {
	Window   WindowConfig           `yaml:"window"`
	Tunnel   kinetic.TunnelConfig   `yaml:"tunnel"`
	Spring   kinetic.SpringConfig   `yaml:"spring"`
	Cursor   kinetic.SpringConfig   `yaml:"cursor"`
	Gate     kinetic.GateConfig     `yaml:"gate"`
	Carousel kinetic.CarouselConfig `yaml:"carousel"`
	Timeline TimelineConfig         `yaml:"timeline"`
	Logging  LoggingConfig          `yaml:"logging"`
	Debug    DebugConfig            `yaml:"debug"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	ShowFPS bool   `yaml:"show_fps"`
}

// TimelineConfig holds the process timeline settings.
type TimelineConfig struct {
	Path    string  `yaml:"path"`
	Divisor float64 `yaml:"divisor"`
	Compact bool    `yaml:"compact"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds diagnostics settings.
type DebugConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Script        string `yaml:"script"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Default returns a Config with the page's default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Kinetic",
			Width:  1280,
			Height: 720,
		},
		Tunnel:   kinetic.DefaultTunnelConfig(),
		Spring:   kinetic.SpringPath,
		Cursor:   kinetic.SpringCursor,
		Gate:     kinetic.GateConfig{MarginPx: 100, HysteresisPx: 50},
		Carousel: kinetic.DefaultCarouselConfig,
		Timeline: TimelineConfig{
			Path:    kinetic.SnakePath,
			Divisor: kinetic.DefaultTimelineDivisor,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}

// Validate reports settings the demo cannot run with.
func (c *Config) Validate() error {
	if err := c.Tunnel.Validate(); err != nil {
		return err
	}
	if _, err := kinetic.ParsePath(c.Timeline.Path); err != nil {
		return err
	}
	return nil
}
