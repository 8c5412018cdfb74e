package kinetic

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RevealDuration is the duration in seconds of the one-shot reveal tweens.
const RevealDuration = 0.8

// RevealEase is the site-wide reveal curve, cubic-bezier(0.25, 1, 0.5, 1).
var RevealEase = CubicBezier(0.25, 1, 0.5, 1)

// CubicBezier returns a gween easing function following the CSS
// cubic-bezier curve through (0,0), (x0,y0), (x1,y1), (1,1).
func CubicBezier(x0, y0, x1, y1 float64) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		x := clamp(float64(t/d), 0, 1)
		return b + c*float32(bezierY(x, x0, y0, x1, y1))
	}
}

// bezierY solves the curve's x(s) = x with Newton's method, then returns y(s).
func bezierY(x, x0, y0, x1, y1 float64) float64 {
	s := x
	for i := 0; i < 8; i++ {
		d := 1 - s
		nx := 3*d*d*s*x0 + 3*d*s*s*x1 + s*s*s
		dx := 3*d*d*x0 + 6*d*s*(x1-x0) + 3*s*s*(1-x1)
		if dx == 0 {
			break
		}
		s -= (nx - x) / dx
		if s <= 0 || s >= 1 {
			break
		}
	}
	s = clamp(s, 0, 1)
	d := 1 - s
	return 3*d*d*s*y0 + 3*d*s*s*y1 + s*s*s
}

// TweenGroup animates up to 4 float64 fields of a Style simultaneously.
// Create one via TweenStyle and call Update(dt) each frame; values are
// written straight into the target. An optional delay holds the start values.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	delay  float32
	Done   bool
}

// StyleField selects a Style field for tweening.
type StyleField uint8

const (
	FieldOpacity StyleField = iota
	FieldX
	FieldY
	FieldScale
	FieldGlow
)

func (f StyleField) ptr(s *Style) *float64 {
	switch f {
	case FieldX:
		return &s.X
	case FieldY:
		return &s.Y
	case FieldScale:
		return &s.Scale
	case FieldGlow:
		return &s.Glow
	default:
		return &s.Opacity
	}
}

// StyleTarget is a destination value for one Style field.
type StyleTarget struct {
	Field StyleField
	To    float64
}

// TweenStyle creates a TweenGroup animating the given fields of target from
// their current values. Only the first four targets are used.
func TweenStyle(target *Style, duration, delay float32, fn ease.TweenFunc, to ...StyleTarget) *TweenGroup {
	g := &TweenGroup{delay: delay}
	for _, st := range to {
		if g.count == len(g.tweens) {
			break
		}
		p := st.Field.ptr(target)
		g.tweens[g.count] = gween.New(float32(*p), float32(st.To), duration, fn)
		g.fields[g.count] = p
		g.count++
	}
	return g
}

// Update advances all tweens by dt seconds and writes values to the target.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.delay > 0 {
		g.delay -= dt
		if g.delay > 0 {
			return
		}
		// Carry the overshoot into the tween.
		dt = -g.delay
		g.delay = 0
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}
