// Kinetic-demo opens a window with a scrolling page built from the kinetic
// primitives: a gated tunnel hero, a word-by-word reveal, stacked cards, a
// drag carousel, the snake timeline, quote parallax and a cursor spotlight.
//
// Scroll with the mouse wheel or arrow keys; drag the carousel with the left
// button. Run with --help for the flags.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phanxgames/kinetic"
	"github.com/phanxgames/kinetic/internal/config"
	"github.com/phanxgames/kinetic/internal/logger"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	cmd := &cli.Command{
		Name:   "kinetic-demo",
		Usage:  "Scroll-driven animation demo page",
		Flags:  config.Flags(),
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadCommand(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer func() { _ = log.Sync() }()
	kinetic.SetLogger(log)

	engine := kinetic.NewEngine(float64(cfg.Window.Width), float64(cfg.Window.Height))
	engine.SetDebugMode(cfg.Debug.Enabled)

	if cfg.Debug.Script != "" {
		data, err := os.ReadFile(cfg.Debug.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := kinetic.LoadScript(data)
		if err != nil {
			return err
		}
		engine.SetScript(script)
	}

	p, err := buildPage(engine, cfg)
	if err != nil {
		return err
	}
	log.Info("page built",
		zap.Float64("height", p.height),
		zap.Int("width", cfg.Window.Width),
		zap.Bool("debug", cfg.Debug.Enabled))

	return kinetic.Run(engine, p.draw, kinetic.RunConfig{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		ShowFPS:       cfg.Window.ShowFPS,
		ScreenshotDir: cfg.Debug.ScreenshotDir,
		Background:    kinetic.MustParseHexColor("#030303"),
	})
}
