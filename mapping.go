package kinetic

import "sort"

// Stop is one breakpoint of a Mapping.
type Stop struct {
	In, Out float64
}

// Mapping is a piecewise-linear function defined by breakpoints sorted by In.
// Inputs below the first breakpoint clamp to its output, inputs above the
// last clamp to the last output. Evaluation is pure.
//
// The zero Mapping evaluates to 0 everywhere.
type Mapping struct {
	stops []Stop
}

// NewMapping builds a mapping from parallel input and output slices, the way
// a range transform is usually written: NewMapping([]float64{0, 1}, []float64{0, 100}).
// Extra elements of the longer slice are ignored. Inputs are sorted stably;
// equal inputs form a step.
func NewMapping(in, out []float64) Mapping {
	n := min(len(in), len(out))
	stops := make([]Stop, n)
	for i := 0; i < n; i++ {
		stops[i] = Stop{In: in[i], Out: out[i]}
	}
	sort.SliceStable(stops, func(a, b int) bool { return stops[a].In < stops[b].In })
	return Mapping{stops: stops}
}

// Linear is the two-breakpoint mapping [inLo, inHi] -> [outLo, outHi].
func Linear(inLo, inHi, outLo, outHi float64) Mapping {
	return NewMapping([]float64{inLo, inHi}, []float64{outLo, outHi})
}

// Stops returns a copy of the breakpoints.
func (m Mapping) Stops() []Stop {
	return append([]Stop(nil), m.stops...)
}

// Domain returns the first and last breakpoint inputs.
func (m Mapping) Domain() (lo, hi float64) {
	if len(m.stops) == 0 {
		return 0, 0
	}
	return m.stops[0].In, m.stops[len(m.stops)-1].In
}

// Segment returns the index i of the breakpoint pair [i, i+1] bracketing in
// and the interpolation fraction t within it. Out-of-domain inputs return the
// first or last pair with t clamped to 0 or 1.
func (m Mapping) Segment(in float64) (i int, t float64) {
	n := len(m.stops)
	if n < 2 {
		return 0, 0
	}
	if in <= m.stops[0].In {
		return 0, 0
	}
	if in >= m.stops[n-1].In {
		return n - 2, 1
	}
	// First breakpoint strictly above in; the pair is [j-1, j].
	j := sort.Search(n, func(k int) bool { return m.stops[k].In > in })
	a, b := m.stops[j-1], m.stops[j]
	span := b.In - a.In
	if span <= 0 {
		return j - 1, 1
	}
	return j - 1, (in - a.In) / span
}

// Evaluate maps in through the breakpoints.
func (m Mapping) Evaluate(in float64) float64 {
	switch len(m.stops) {
	case 0:
		return 0
	case 1:
		return m.stops[0].Out
	}
	if in <= m.stops[0].In {
		return m.stops[0].Out
	}
	if last := m.stops[len(m.stops)-1]; in >= last.In {
		return last.Out
	}
	i, t := m.Segment(in)
	return lerp(m.stops[i].Out, m.stops[i+1].Out, t)
}

// EvaluateVec2 interpolates a Vec2 per axis using m's breakpoint inputs and
// the matching outputs in outs. len(outs) must equal the number of stops.
func (m Mapping) EvaluateVec2(in float64, outs []Vec2) Vec2 {
	if len(outs) == 0 || len(outs) != len(m.stops) {
		return Vec2{}
	}
	if len(outs) == 1 {
		return outs[0]
	}
	i, t := m.Segment(in)
	return Vec2{
		X: lerp(outs[i].X, outs[i+1].X, t),
		Y: lerp(outs[i].Y, outs[i+1].Y, t),
	}
}

// EvaluateColor interpolates colors componentwise using m's breakpoint inputs.
// len(outs) must equal the number of stops.
func (m Mapping) EvaluateColor(in float64, outs []Color) Color {
	if len(outs) == 0 || len(outs) != len(m.stops) {
		return Color{}
	}
	if len(outs) == 1 {
		return outs[0]
	}
	i, t := m.Segment(in)
	return outs[i].Lerp(outs[i+1], t)
}

// Window is a sub-range of a scroll-progress domain.
type Window struct {
	Start, End float64
}

// WordWindow returns the window for word i of n when [start, end] is split
// evenly. Consecutive windows share their boundary exactly.
func WordWindow(i, n int, start, end float64) Window {
	if n <= 0 {
		return Window{Start: start, End: end}
	}
	step := (end - start) / float64(n)
	w := Window{Start: start + float64(i)*step, End: start + float64(i+1)*step}
	// Pin the outer edges so float rounding never leaves a gap at the ends.
	if i == 0 {
		w.Start = start
	}
	if i == n-1 {
		w.End = end
	}
	return w
}

// WordWindows returns all n windows of [start, end].
func WordWindows(n int, start, end float64) []Window {
	out := make([]Window, n)
	for i := range out {
		out[i] = WordWindow(i, n, start, end)
	}
	return out
}
