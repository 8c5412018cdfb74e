package kinetic

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// capture is a screenshot requested during the update of engine frame frame.
type capture struct {
	frame uint64
	label string
}

// Screenshot captures the next drawn frame into the host's screenshot
// directory. Files are named after the engine frame that requested them, so
// a scripted run writes the same file names every time.
func (h *Host) Screenshot(label string) {
	h.captures = append(h.captures, capture{frame: h.engine.Frame(), label: label})
}

// name returns the file name of c, e.g. "f000120_hero.png".
func (c capture) name() string {
	return fmt.Sprintf("f%06d_%s.png", c.frame, fileLabel(c.label))
}

func (h *Host) flushScreenshots(screen *ebiten.Image) {
	if len(h.captures) == 0 {
		return
	}
	img := snapshot(screen)
	written := make(map[string]bool, len(h.captures))
	for _, c := range h.captures {
		name := c.name()
		if written[name] {
			continue
		}
		written[name] = true
		path, err := SavePNG(h.cfg.ScreenshotDir, name, img)
		if err != nil {
			log.Error("screenshot failed", zap.Uint64("frame", c.frame), zap.Error(err))
			continue
		}
		log.Info("screenshot saved", zap.String("path", path), zap.Uint64("frame", c.frame))
	}
	h.captures = h.captures[:0]
}

// snapshot copies img's pixels. ebiten reads back premultiplied RGBA, which
// is image.RGBA's own layout.
func snapshot(img *ebiten.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	img.ReadPixels(out.Pix)
	return out
}

// SavePNG writes img to dir/name, creating dir if needed, and returns the
// file's path.
func SavePNG(dir, name string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save png: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("save png %s: %w", path, err)
	}
	return path, f.Close()
}

// fileLabel keeps ASCII letters, digits, '-' and '.' of label and turns
// everything else into '_'.
func fileLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, label)
}
