package kinetic

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxSurfaceSize is the largest offscreen image the surface will allocate.
const maxSurfaceSize = 8192

// lineWidth is the stroke width of wireframe lines in pixels.
const lineWidth = 1

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the source of untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// EbitenSurface renders into an offscreen ebiten image that the host
// composites onto the screen with Draw. Lines and points are expanded into
// quads and submitted with one DrawTriangles32 call per batch.
type EbitenSurface struct {
	img           *ebiten.Image
	width, height int
	disposed      bool

	verts []ebiten.Vertex
	inds  []uint32
}

// NewEbitenSurface is a SurfaceFactory backed by ebiten. The image is
// allocated lazily, so a zero size is valid until the first Resize.
func NewEbitenSurface(width, height int) (Surface, error) {
	if width > maxSurfaceSize || height > maxSurfaceSize {
		return nil, fmt.Errorf("ebiten surface %dx%d: %w", width, height, ErrSurfaceUnavailable)
	}
	return &EbitenSurface{width: max(width, 0), height: max(height, 0)}, nil
}

// Resize implements Surface. The image is reallocated on the next Begin.
func (s *EbitenSurface) Resize(width, height int) {
	if s.disposed || (width == s.width && height == s.height) {
		return
	}
	s.width = min(max(width, 0), maxSurfaceSize)
	s.height = min(max(height, 0), maxSurfaceSize)
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}

// Begin implements Surface.
func (s *EbitenSurface) Begin() {
	if s.disposed || s.width == 0 || s.height == 0 {
		return
	}
	if s.img == nil {
		s.img = ebiten.NewImage(s.width, s.height)
	}
	s.img.Clear()
}

// DrawLines implements Surface.
func (s *EbitenSurface) DrawLines(lines []LineSegment, blend BlendMode) {
	if s.img == nil || len(lines) == 0 {
		return
	}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	for i := range lines {
		l := &lines[i]
		dx, dy := l.X1-l.X0, l.Y1-l.Y0
		n := float32(math.Hypot(float64(dx), float64(dy)))
		if n == 0 {
			continue
		}
		// Half-width normal.
		nx, ny := -dy/n*lineWidth/2, dx/n*lineWidth/2
		s.quad(
			l.X0+nx, l.Y0+ny, l.X1+nx, l.Y1+ny,
			l.X0-nx, l.Y0-ny, l.X1-nx, l.Y1-ny,
			l.Color,
		)
	}
	s.flush(blend)
}

// DrawPoints implements Surface.
func (s *EbitenSurface) DrawPoints(points []PointSprite, blend BlendMode) {
	if s.img == nil || len(points) == 0 {
		return
	}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	for i := range points {
		p := &points[i]
		h := p.Size / 2
		s.quad(
			p.X-h, p.Y-h, p.X+h, p.Y-h,
			p.X-h, p.Y+h, p.X+h, p.Y+h,
			p.Color,
		)
	}
	s.flush(blend)
}

// quad appends two triangles covering the corners a, b, c, d where a-b is
// the top edge and c-d the bottom edge.
func (s *EbitenSurface) quad(ax, ay, bx, by, cx, cy, dx, dy float32, c Color) {
	a := float32(clamp(c.A, 0, 1))
	r, g, b := float32(c.R)*a, float32(c.G)*a, float32(c.B)*a
	base := uint32(len(s.verts))
	for _, p := range [4][2]float32{{ax, ay}, {bx, by}, {cx, cy}, {dx, dy}} {
		s.verts = append(s.verts, ebiten.Vertex{
			DstX: p[0], DstY: p[1],
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	s.inds = append(s.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

func (s *EbitenSurface) flush(blend BlendMode) {
	if len(s.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = blend.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	s.img.DrawTriangles32(s.verts, s.inds, ensureWhitePixel(), &op)
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

// End implements Surface.
func (s *EbitenSurface) End() {}

// Draw composites the surface onto dst at (x, y).
func (s *EbitenSurface) Draw(dst *ebiten.Image, x, y float64) {
	if s.img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	dst.DrawImage(s.img, &op)
}

// Dispose implements Surface.
func (s *EbitenSurface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.verts = nil
	s.inds = nil
}
