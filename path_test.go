package kinetic

import (
	"errors"
	"testing"
)

func TestParsePathPolyline(t *testing.T) {
	p, err := ParsePath("M 0 0 L 10 0 L 10 10")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if p.Length() != 20 {
		t.Errorf("Length = %v, want 20", p.Length())
	}
	tests := []struct {
		f    float64
		want Vec2
	}{
		{-1, Vec2{0, 0}},
		{0, Vec2{0, 0}},
		{0.25, Vec2{5, 0}},
		{0.5, Vec2{10, 0}},
		{0.75, Vec2{10, 5}},
		{1, Vec2{10, 10}},
		{2, Vec2{10, 10}},
	}
	for _, tt := range tests {
		if got := p.PointAt(tt.f); got != tt.want {
			t.Errorf("PointAt(%v) = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestParsePathRelativeAndClose(t *testing.T) {
	p, err := ParsePath("m0,0 l10,0 v10 h-10 z")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if p.Length() != 40 {
		t.Errorf("Length = %v, want 40", p.Length())
	}
	if got := p.PointAt(0.5); got != (Vec2{10, 10}) {
		t.Errorf("PointAt(0.5) = %v, want (10, 10)", got)
	}
	if got := p.PointAt(1); got != (Vec2{0, 0}) {
		t.Errorf("closed path does not return to its start: %v", got)
	}
}

func TestParsePathImplicitLineTo(t *testing.T) {
	p, err := ParsePath("M-5-5 5-5 5 5")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if n := len(p.Points()); n != 3 {
		t.Fatalf("points = %d, want 3", n)
	}
	if p.Length() != 20 {
		t.Errorf("Length = %v, want 20", p.Length())
	}
}

func TestParsePathExponent(t *testing.T) {
	p, err := ParsePath("M 0 0 H 1e1")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if p.Length() != 10 {
		t.Errorf("Length = %v, want 10", p.Length())
	}
}

func TestParsePathSmoothCurves(t *testing.T) {
	tests := []struct {
		smooth, explicit string
	}{
		{"M 0 0 Q 10 10 20 0 T 40 0", "M 0 0 Q 10 10 20 0 Q 30 -10 40 0"},
		{"m0 0 q10 10 20 0 t20 0", "M 0 0 Q 10 10 20 0 Q 30 -10 40 0"},
		{"M 0 0 C 0 10 10 10 10 0 S 20 -10 20 0", "M 0 0 C 0 10 10 10 10 0 C 10 -10 20 -10 20 0"},
		{"M 0 0 L 10 0 S 20 10 30 0", "M 0 0 L 10 0 C 10 0 20 10 30 0"},
		{"M 0 0 C 0 10 10 10 10 0 T 20 0", "M 0 0 C 0 10 10 10 10 0 Q 10 0 20 0"},
	}
	for _, tt := range tests {
		got, err := ParsePath(tt.smooth)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", tt.smooth, err)
		}
		want := MustParsePath(tt.explicit)
		gp, wp := got.Points(), want.Points()
		if len(gp) != len(wp) {
			t.Fatalf("%q: points = %d, want %d", tt.smooth, len(gp), len(wp))
		}
		for i := range gp {
			if !approxEqual(gp[i].X, wp[i].X, epsilon) || !approxEqual(gp[i].Y, wp[i].Y, epsilon) {
				t.Errorf("%q: point %d = %v, want %v", tt.smooth, i, gp[i], wp[i])
				break
			}
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	tests := []string{
		"",
		"M 0 0",
		"L 10 10",
		"M 0 0 L 1",
		"M 0 0 A 1 1 0 0 0 1 1",
		"M 0 0 L 1 1 M 2 2 L 3 3",
		"0 0 L 1 1",
	}
	for _, d := range tests {
		_, err := ParsePath(d)
		if !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ParsePath(%q) err = %v, want ErrInvalidPath", d, err)
		}
	}
}

func TestSnakePath(t *testing.T) {
	p := MustParsePath(SnakePath)
	if n := len(p.Points()); n != 3+2*curveSegments {
		t.Errorf("points = %d, want %d", n, 3+2*curveSegments)
	}
	if got := p.PointAt(0); got != (Vec2{50, 150}) {
		t.Errorf("start = %v", got)
	}
	if got := p.PointAt(1); got != (Vec2{50, 450}) {
		t.Errorf("end = %v", got)
	}
	// Two 800px runs plus the bend, which is longer than its 300px chord.
	if l := p.Length(); l <= 1900 || l >= 2100 {
		t.Errorf("Length = %v, want within (1900, 2100)", l)
	}
	mid := p.PointAt(0.5)
	if !approxEqual(mid.Y, 300, 1) || mid.X < 940 {
		t.Errorf("midpoint = %v, want on the bend near (950, 300)", mid)
	}
}

func TestPathDrawn(t *testing.T) {
	p := MustParsePath("M 0 0 L 10 0 L 10 10")
	var buf []Vec2
	buf = p.Drawn(0, buf)
	if len(buf) != 0 {
		t.Errorf("Drawn(0) = %v, want empty", buf)
	}
	buf = p.Drawn(0.75, buf)
	want := []Vec2{{0, 0}, {10, 0}, {10, 5}}
	if len(buf) != len(want) {
		t.Fatalf("Drawn(0.75) = %v, want %v", buf, want)
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("Drawn(0.75)[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
	buf = p.Drawn(1, buf)
	if len(buf) != 3 || buf[2] != (Vec2{10, 10}) {
		t.Errorf("Drawn(1) = %v", buf)
	}
}

func TestPathProgressFollowsSpring(t *testing.T) {
	e := NewEngine(800, 600)
	path := MustParsePath("M 0 0 L 10 0 L 10 10")
	progress := NewSignal(0.0)
	pp := NewPathProgress(e, path, progress, Mapping{}, SpringPath)
	if pp.Drawn().Get() != 0 || pp.Marker().Get() != (Vec2{0, 0}) {
		t.Fatalf("initial drawn = %v, marker = %v", pp.Drawn().Get(), pp.Marker().Get())
	}

	progress.Set(1)
	e.Update(1.0 / 60)
	if d := pp.Drawn().Get(); d <= 0 || d >= 1 {
		t.Errorf("drawn after one frame = %v, want strictly between 0 and 1", d)
	}
	for i := 0; i < 300; i++ {
		e.Update(1.0 / 60)
	}
	if d := pp.Drawn().Get(); d != 1 {
		t.Errorf("settled drawn = %v, want 1", d)
	}
	if m := pp.Marker().Get(); m != (Vec2{10, 10}) {
		t.Errorf("settled marker = %v, want (10, 10)", m)
	}

	pp.Stop()
	pp.Stop()
	if e.frameHandlers.count() != 0 || progress.SubscriberCount() != 0 {
		t.Error("path progress listeners left after Stop")
	}
}

func TestPathProgressMapping(t *testing.T) {
	e := NewEngine(800, 600)
	progress := NewSignal(0.25)
	pp := NewPathProgress(e, MustParsePath("M 0 0 H 100"), progress, Linear(0, 0.5, 0, 1), SpringPath)
	defer pp.Stop()
	if got := pp.Drawn().Get(); got != 0.5 {
		t.Errorf("drawn = %v, want 0.5", got)
	}
	if got := pp.Marker().Get(); got != (Vec2{50, 0}) {
		t.Errorf("marker = %v, want (50, 0)", got)
	}
}

func TestStepThreshold(t *testing.T) {
	tests := []struct {
		layout TimelineLayout
		i      int
		want   float64
	}{
		{TimelineWide, 0, 0.5 / 6.5},
		{TimelineWide, 5, 5.5 / 6.5},
		{TimelineCompact, 0, 0.1 / 6.5},
		{TimelineCompact, 5, 5.1 / 6.5},
	}
	for _, tt := range tests {
		if got := StepThreshold(tt.layout, tt.i, DefaultTimelineDivisor); !approxEqual(got, tt.want, epsilon) {
			t.Errorf("StepThreshold(%v, %d) = %v, want %v", tt.layout, tt.i, got, tt.want)
		}
	}
	if got := StepThreshold(TimelineWide, 0, 0); !approxEqual(got, 0.5/6.5, epsilon) {
		t.Errorf("zero divisor not defaulted: %v", got)
	}
}

func TestTimeline(t *testing.T) {
	progress := NewSignal(0.0)
	tl := NewTimeline(progress, 6, TimelineWide, DefaultTimelineDivisor)
	defer tl.Stop()

	for i := 0; i < tl.Len(); i++ {
		if tl.Active(i).Get() {
			t.Errorf("step %d active at progress 0", i)
		}
	}

	progress.Set(0.5)
	for i := 0; i < tl.Len(); i++ {
		want := i <= 2
		if got := tl.Active(i).Get(); got != want {
			t.Errorf("progress 0.5: step %d active = %v, want %v", i, got, want)
		}
	}

	// Activation is strict: a step at exactly its threshold is inactive.
	progress.Set(tl.Threshold(3))
	if tl.Active(3).Get() {
		t.Error("step active at its exact threshold")
	}

	progress.Set(1)
	for i := 0; i < tl.Len(); i++ {
		if !tl.Active(i).Get() {
			t.Errorf("step %d inactive at progress 1", i)
		}
	}
}
