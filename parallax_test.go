package kinetic

import "testing"

func TestQuoteDrift(t *testing.T) {
	tests := []struct {
		dir          DriftDirection
		p            float64
		wantX, wantO float64
	}{
		{DriftRight, 0, -200, 0},
		{DriftRight, 0.1, -160, 0.05},
		{DriftRight, 0.5, 0, 0.1},
		{DriftRight, 1, 200, 0},
		{DriftLeft, 0.5, -400, 0.1},
		{DriftLeft, 1, -600, 0},
	}
	for _, tt := range tests {
		x, o := QuoteDrift(tt.dir, tt.p, 1000)
		if !approxEqual(x, tt.wantX, 1e-9) || !approxEqual(o, tt.wantO, 1e-9) {
			t.Errorf("QuoteDrift(%d, %v) = (%v, %v), want (%v, %v)", tt.dir, tt.p, x, o, tt.wantX, tt.wantO)
		}
	}
}

func TestDriftAndSink(t *testing.T) {
	if got := DriftY(0, 100); got != 100 {
		t.Errorf("DriftY(0) = %v, want 100", got)
	}
	if got := DriftY(1, 100); got != -100 {
		t.Errorf("DriftY(1) = %v, want -100", got)
	}
	if got := ImageSink(1, 500); got != 100 {
		t.Errorf("ImageSink(1, 500) = %v, want 100", got)
	}
	if got := ImageSink(0, 500); got != 0 {
		t.Errorf("ImageSink(0, 500) = %v, want 0", got)
	}
}

func TestLogoScale(t *testing.T) {
	tests := []struct {
		scroll, want float64
	}{
		{-10, 1.5},
		{0, 1.5},
		{50, 1.25},
		{100, 1},
		{400, 1},
	}
	for _, tt := range tests {
		if got := LogoScale(tt.scroll); got != tt.want {
			t.Errorf("LogoScale(%v) = %v, want %v", tt.scroll, got, tt.want)
		}
	}
}

func TestParallaxSignal(t *testing.T) {
	progress := NewSignal(0.0)
	px := NewParallax(progress, func(p float64) Vec2 {
		x, o := QuoteDrift(DriftRight, p, 1000)
		return Vec2{X: x, Y: o}
	})
	if got := px.Value().Get(); got != (Vec2{-200, 0}) {
		t.Errorf("initial = %v, want (-200, 0)", got)
	}
	progress.Set(1)
	if got := px.Value().Get(); !approxEqual(got.X, 200, 1e-9) {
		t.Errorf("X at end = %v, want 200", got.X)
	}
	px.Stop()
	px.Stop()
	if progress.SubscriberCount() != 0 {
		t.Error("parallax still subscribed after Stop")
	}
}
