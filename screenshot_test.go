package kinetic

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hero", "hero"},
		{"after-scroll", "after-scroll"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"café", "caf_"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		if got := fileLabel(tt.in); got != tt.want {
			t.Errorf("fileLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotNamedByEngineFrame(t *testing.T) {
	e := NewEngine(800, 600)
	h := NewHost(e, nil, RunConfig{})
	for i := 0; i < 3; i++ {
		e.Update(1.0 / 60)
	}
	h.Screenshot("hero")
	h.Screenshot("hero/top")
	if len(h.captures) != 2 {
		t.Fatalf("captures = %d, want 2", len(h.captures))
	}
	if got := h.captures[0].name(); got != "f000003_hero.png" {
		t.Errorf("name = %q, want f000003_hero.png", got)
	}
	if got := h.captures[1].name(); got != "f000003_hero_top.png" {
		t.Errorf("name = %q, want f000003_hero_top.png", got)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	h := NewHost(NewEngine(800, 600), nil, RunConfig{})
	if h.cfg.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", h.cfg.ScreenshotDir, "screenshots")
	}
}

func TestScriptScreenshotReachesHost(t *testing.T) {
	e := NewEngine(800, 600)
	h := NewHost(e, nil, RunConfig{ScreenshotDir: t.TempDir()})
	s, err := LoadScript([]byte("steps:\n  - action: wait\n    frames: 2\n  - action: screenshot\n    label: hero"))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	e.SetScript(s)
	for i := 0; i < 3; i++ {
		e.Update(1.0 / 60)
	}
	if len(h.captures) != 1 {
		t.Fatalf("captures = %v, want one", h.captures)
	}
	if got := h.captures[0].name(); got != "f000002_hero.png" {
		t.Errorf("name = %q, want f000002_hero.png", got)
	}
}

func TestSavePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 0, color.RGBA{R: 70, G: 206, B: 246, A: 255})

	path, err := SavePNG(dir, "shot.png", img)
	if err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if path != filepath.Join(dir, "shot.png") {
		t.Errorf("path = %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds().Dx() != 2 || got.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", got.Bounds())
	}
	r, g, b, a := got.At(1, 0).RGBA()
	if r>>8 != 70 || g>>8 != 206 || b>>8 != 246 || a>>8 != 255 {
		t.Errorf("pixel = (%d, %d, %d, %d), want (70, 206, 246, 255)", r>>8, g>>8, b>>8, a>>8)
	}
}
