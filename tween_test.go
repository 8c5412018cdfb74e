package kinetic

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCubicBezierEndpoints(t *testing.T) {
	fn := CubicBezier(0.25, 1, 0.5, 1)
	if got := fn(0, 0, 1, 1); got != 0 {
		t.Errorf("f(0) = %v, want 0", got)
	}
	if got := fn(1, 0, 1, 1); math.Abs(float64(got)-1) > 1e-5 {
		t.Errorf("f(1) = %v, want 1", got)
	}
	if got := fn(0.5, 10, 5, 0); got != 15 {
		t.Errorf("zero duration = %v, want 15", got)
	}
}

func TestCubicBezierLinear(t *testing.T) {
	fn := CubicBezier(0, 0, 1, 1)
	for _, x := range []float32{0.1, 0.25, 0.5, 0.9} {
		if got := fn(x, 0, 1, 1); math.Abs(float64(got-x)) > 1e-4 {
			t.Errorf("f(%v) = %v, want %v", x, got, x)
		}
	}
}

func TestRevealEaseMonotonic(t *testing.T) {
	prev := float32(-1)
	for i := 0; i <= 50; i++ {
		v := RevealEase(float32(i)/50, 0, 1, 1)
		if v < prev-1e-6 {
			t.Fatalf("RevealEase decreases at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
	// An ease-out curve is well ahead of linear at the midpoint.
	if mid := RevealEase(0.5, 0, 1, 1); mid < 0.8 {
		t.Errorf("RevealEase(0.5) = %v, want > 0.8", mid)
	}
}

func TestTweenStyleDelay(t *testing.T) {
	s := Style{Opacity: 0, Y: 20}
	g := TweenStyle(&s, 1, 0.5, ease.Linear,
		StyleTarget{Field: FieldOpacity, To: 1},
		StyleTarget{Field: FieldY, To: 0},
	)

	g.Update(0.25)
	if s.Opacity != 0 || s.Y != 20 {
		t.Fatalf("style changed during delay: %+v", s)
	}
	g.Update(0.5)
	if math.Abs(s.Opacity-0.25) > 0.01 {
		t.Errorf("Opacity = %v, want ~0.25", s.Opacity)
	}
	g.Update(0.5)
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(s.Opacity-1) > 0.01 || math.Abs(s.Y) > 0.01 {
		t.Errorf("final style = %+v", s)
	}
}

func TestTweenStyleCapsTargets(t *testing.T) {
	var s Style
	g := TweenStyle(&s, 1, 0, ease.Linear,
		StyleTarget{Field: FieldOpacity, To: 1},
		StyleTarget{Field: FieldX, To: 1},
		StyleTarget{Field: FieldY, To: 1},
		StyleTarget{Field: FieldScale, To: 1},
		StyleTarget{Field: FieldGlow, To: 1},
	)
	g.Update(0.5)
	g.Update(0.5)
	if s.Glow != 0 {
		t.Errorf("fifth target was applied: Glow = %v", s.Glow)
	}
	if math.Abs(s.Scale-1) > 0.01 {
		t.Errorf("Scale = %v, want ~1", s.Scale)
	}
}
