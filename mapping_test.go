package kinetic

import "testing"

func TestMappingEvaluate(t *testing.T) {
	m := NewMapping([]float64{0, 0.2, 0.8, 1}, []float64{0, 0.1, 0.1, 0})
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.1, 0.05},
		{0.5, 0.1},
		{0.9, 0.05},
		{1, 0},
		{2, 0},
	}
	for _, tt := range tests {
		if got := m.Evaluate(tt.in); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("Evaluate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMappingSortsInputs(t *testing.T) {
	m := NewMapping([]float64{1, 0}, []float64{100, 0})
	if got := m.Evaluate(0.25); got != 25 {
		t.Errorf("Evaluate(0.25) = %v, want 25", got)
	}
	lo, hi := m.Domain()
	if lo != 0 || hi != 1 {
		t.Errorf("Domain() = %v, %v, want 0, 1", lo, hi)
	}
}

func TestMappingStep(t *testing.T) {
	m := NewMapping([]float64{0, 0.5, 0.5, 1}, []float64{0, 0, 1, 1})
	if got := m.Evaluate(0.49); got != 0 {
		t.Errorf("Evaluate(0.49) = %v, want 0", got)
	}
	if got := m.Evaluate(0.5); got != 1 {
		t.Errorf("Evaluate(0.5) = %v, want 1", got)
	}
}

func TestMappingDegenerate(t *testing.T) {
	var zero Mapping
	if got := zero.Evaluate(3); got != 0 {
		t.Errorf("zero Evaluate = %v, want 0", got)
	}
	one := NewMapping([]float64{0.5}, []float64{7})
	if got := one.Evaluate(-10); got != 7 {
		t.Errorf("single-stop Evaluate = %v, want 7", got)
	}
	short := NewMapping([]float64{0, 1, 2}, []float64{5, 6})
	if n := len(short.Stops()); n != 2 {
		t.Errorf("stops = %d, want 2", n)
	}
}

func TestMappingMonotonic(t *testing.T) {
	m := Linear(0.25, 0.75, 24, 0)
	prev := m.Evaluate(0)
	for i := 1; i <= 100; i++ {
		v := m.Evaluate(float64(i) / 100)
		if v > prev {
			t.Fatalf("Evaluate not monotonic at %d: %v > %v", i, v, prev)
		}
		prev = v
	}
}

func TestMappingEvaluateVec2(t *testing.T) {
	m := Linear(0, 1, 0, 1)
	got := m.EvaluateVec2(0.5, []Vec2{{0, 0}, {10, -20}})
	if got != (Vec2{5, -10}) {
		t.Errorf("EvaluateVec2 = %v, want (5, -10)", got)
	}
	if got := m.EvaluateVec2(0.5, []Vec2{{1, 1}}); got != (Vec2{}) {
		t.Errorf("mismatched outputs = %v, want zero", got)
	}
}

func TestMappingEvaluateColor(t *testing.T) {
	m := Linear(0, 100, 0, 1)
	got := m.EvaluateColor(50, []Color{{0, 0, 0, 1}, {1, 1, 1, 1}})
	if !approxEqual(got.R, 0.5, 1e-9) || got.A != 1 {
		t.Errorf("EvaluateColor = %+v", got)
	}
}

func TestWordWindowsTile(t *testing.T) {
	ws := WordWindows(7, 0, 1)
	if ws[0].Start != 0 || ws[len(ws)-1].End != 1 {
		t.Fatalf("outer edges = %v, %v", ws[0].Start, ws[len(ws)-1].End)
	}
	for i := 1; i < len(ws); i++ {
		if ws[i].Start != ws[i-1].End {
			t.Errorf("gap between window %d and %d: %v != %v", i-1, i, ws[i-1].End, ws[i].Start)
		}
		if ws[i].End <= ws[i].Start {
			t.Errorf("window %d is empty: %+v", i, ws[i])
		}
	}
}
