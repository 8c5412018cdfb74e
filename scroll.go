package kinetic

// Offset pins a point on the tracked region to a point on the viewport. Both
// are fractions of their rectangle's height: 0 is the top edge, 1 the bottom.
type Offset struct {
	Target   float64
	Viewport float64
}

// Common offsets, named target edge first.
var (
	OffsetStartEnd   = Offset{Target: 0, Viewport: 1} // region top meets viewport bottom
	OffsetStartStart = Offset{Target: 0, Viewport: 0}
	OffsetEndEnd     = Offset{Target: 1, Viewport: 1}
	OffsetEndStart   = Offset{Target: 1, Viewport: 0} // region bottom meets viewport top
)

// ProgressBetween returns how far viewport has scrolled from the position
// where from holds to the position where to holds, clamped to [0, 1].
// A region or viewport with no area yields 0.
func ProgressBetween(region, viewport Rect, from, to Offset) float64 {
	if region.Empty() || viewport.Height <= 0 {
		return 0
	}
	s0 := region.Y + from.Target*region.Height - from.Viewport*viewport.Height
	s1 := region.Y + to.Target*region.Height - to.Viewport*viewport.Height
	if s1 == s0 {
		if viewport.Y >= s1 {
			return 1
		}
		return 0
	}
	return clamp((viewport.Y-s0)/(s1-s0), 0, 1)
}

// ScrollProgress is a derived signal tracking a region's passage through
// the viewport. It is recomputed on every scroll and resize, and when the
// region's own layout changes.
type ScrollProgress struct {
	region   *Region
	from, to Offset
	value    *Signal[float64]
	handle   CallbackHandle
	stopped  bool
}

// NewScrollProgress starts tracking r between the two offsets. The value is
// computed immediately so the signal is never undefined.
func NewScrollProgress(r *Region, from, to Offset) *ScrollProgress {
	p := &ScrollProgress{region: r, from: from, to: to}
	p.value = NewSignal(p.compute())
	p.handle = r.engine.OnViewport(func(ev ViewportEvent) {
		if ev.Type == ViewportLayout && ev.Region != r {
			return
		}
		p.value.Set(p.compute())
	})
	Mount(r, p)
	return p
}

func (p *ScrollProgress) compute() float64 {
	return ProgressBetween(p.region.bounds, p.region.engine.viewport, p.from, p.to)
}

// Progress returns the progress signal in [0, 1].
func (p *ScrollProgress) Progress() *Signal[float64] {
	return p.value
}

// Value returns the current progress.
func (p *ScrollProgress) Value() float64 {
	return p.value.Get()
}

// Stop detaches the viewport listener. The signal keeps its last value.
func (p *ScrollProgress) Stop() {
	if p.stopped {
		return
	}
	p.stopped = true
	p.handle.Remove()
}
