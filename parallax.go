package kinetic

// Parallax mappings for background decoration. All are pure functions of a
// scroll progress (or offset) and hold no state.

// DriftDirection selects which way quote text drifts.
type DriftDirection int

const (
	DriftRight DriftDirection = 1
	DriftLeft  DriftDirection = -1
)

// QuoteDrift returns the horizontal displacement and opacity of oversized
// quote text of the given width at progress p. The text travels from -20% of
// its width to +20% (DriftRight) or -60% (DriftLeft), and fades in to 0.1
// over the first fifth and out over the last.
func QuoteDrift(dir DriftDirection, p, width float64) (x, opacity float64) {
	end := 0.2
	if dir != DriftRight {
		end = -0.6
	}
	x = Linear(0, 1, -0.2*width, end*width).Evaluate(p)
	opacity = quoteEnvelope.Evaluate(p)
	return x, opacity
}

var quoteEnvelope = NewMapping([]float64{0, 0.2, 0.8, 1}, []float64{0, 0.1, 0.1, 0})

// DriftY returns a vertical drift of +amplitude at progress 0 to -amplitude at
// progress 1, used for the marketing backdrop with amplitude 100.
func DriftY(p, amplitude float64) float64 {
	return Linear(0, 1, amplitude, -amplitude).Evaluate(p)
}

// ImageSink returns how far an image of height h sinks into its frame at
// progress p: 0 at the start, 20% of h at the end.
func ImageSink(p, h float64) float64 {
	return Linear(0, 1, 0, 0.2*h).Evaluate(p)
}

// LogoScale shrinks the header logo from 1.5 to 1 over the first 100px of
// document scroll.
func LogoScale(scrollY float64) float64 {
	return logoScale.Evaluate(scrollY)
}

var logoScale = Linear(0, 100, 1.5, 1)

// Parallax binds a pure progress mapping to a signal, publishing the result
// as its own signal.
type Parallax struct {
	out     *Signal[Vec2]
	sub     Subscription
	stopped bool
}

// NewParallax derives a Vec2 signal from progress through fn.
func NewParallax(progress *Signal[float64], fn func(p float64) Vec2) *Parallax {
	px := &Parallax{out: NewSignal(fn(progress.Get()))}
	px.sub = progress.Subscribe(func(p float64) { px.out.Set(fn(p)) })
	return px
}

// Value returns the derived signal.
func (px *Parallax) Value() *Signal[Vec2] {
	return px.out
}

// Stop releases the progress subscription.
func (px *Parallax) Stop() {
	if px.stopped {
		return
	}
	px.stopped = true
	px.sub.Remove()
}
