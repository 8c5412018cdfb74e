package kinetic

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// wheelStep is the document scroll in pixels per wheel notch.
const wheelStep = 60

// keyScrollDuration is the length in seconds of keyboard page scrolls.
const keyScrollDuration = 0.45

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	// ScreenshotDir receives PNGs captured by script screenshot actions.
	ScreenshotDir string
	// Background is the clear color drawn before the page.
	Background Color
}

// Host adapts an Engine to ebiten.Game. Window input is translated into
// queued engine events, then the engine runs one frame per tick.
type Host struct {
	engine *Engine
	draw   func(screen *ebiten.Image)
	cfg    RunConfig

	width, height int
	cursorX       int
	cursorY       int
	cursorSeen    bool

	fps      *fpsOverlay
	captures []capture
}

// NewHost wraps e. draw renders the page after the frame's updates.
func NewHost(e *Engine, draw func(screen *ebiten.Image), cfg RunConfig) *Host {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	h := &Host{engine: e, draw: draw, cfg: cfg}
	if cfg.ShowFPS {
		h.fps = newFPSOverlay()
	}
	e.SetScreenshotFunc(h.Screenshot)
	return h
}

// Run opens a window and drives e until the window closes.
func Run(e *Engine, draw func(screen *ebiten.Image), cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(NewHost(e, draw, cfg)); err != nil {
		return fmt.Errorf("run %q: %w", cfg.Title, err)
	}
	return nil
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	dt := 1 / float64(ebiten.TPS())
	h.pollInput()
	h.engine.Update(dt)
	if h.fps != nil {
		h.fps.update(dt, ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	return nil
}

func (h *Host) pollInput() {
	e := h.engine
	x, y := ebiten.CursorPosition()
	if !h.cursorSeen || x != h.cursorX || y != h.cursorY {
		h.cursorX, h.cursorY, h.cursorSeen = x, y, true
		e.PointerMove(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.PointerDown(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		e.PointerUp(float64(x), float64(y))
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		e.ScrollBy(-wy * wheelStep)
	}

	vy := e.Viewport().Y
	page := float64(h.height) * 0.9
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		e.ScrollTo(vy+page, keyScrollDuration, RevealEase)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		e.ScrollTo(vy-page, keyScrollDuration, RevealEase)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		e.ScrollTo(0, 2*keyScrollDuration, RevealEase)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd) && e.docHeight > 0:
		e.ScrollTo(e.docHeight, 2*keyScrollDuration, RevealEase)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		e.ScrollBy(wheelStep / 4)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		e.ScrollBy(-wheelStep / 4)
	}
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	bg := h.cfg.Background
	screen.Fill(color.NRGBA{
		R: uint8(clamp(bg.R, 0, 1) * 255),
		G: uint8(clamp(bg.G, 0, 1) * 255),
		B: uint8(clamp(bg.B, 0, 1) * 255),
		A: 255,
	})
	if h.draw != nil {
		h.draw(screen)
	}
	if h.fps != nil {
		h.fps.draw(screen)
	}
	h.flushScreenshots(screen)
}

// Layout implements ebiten.Game. A changed outside size becomes a queued
// engine resize.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		log.Debug("window resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
		h.width, h.height = outsideWidth, outsideHeight
		h.engine.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
