package kinetic

import "go.uber.org/zap"

// GateConfig configures a VisibilityGate.
type GateConfig struct {
	// MarginPx grows the viewport on every side before the intersection
	// test. Negative values shrink it, so the region must be further inside.
	MarginPx float64 `yaml:"margin_px"`
	// MarginFraction adds a margin proportional to the viewport height,
	// e.g. -0.1 for a "-10%" root margin.
	MarginFraction float64 `yaml:"margin_fraction"`
	// HysteresisPx widens the exit zone beyond the entry zone so a region
	// resting on the boundary does not flap. Resettable gates only.
	HysteresisPx float64 `yaml:"hysteresis_px"`
	// OneShot gates become active once and never revert.
	OneShot bool `yaml:"one_shot"`
}

// Margin returns the effective margin in pixels for a viewport of height h.
func (c GateConfig) Margin(h float64) float64 {
	return c.MarginPx + c.MarginFraction*h
}

// IsActive reports whether region intersects viewport grown by margin.
// A region that has not been laid out is never active.
func IsActive(region, viewport Rect, margin float64) bool {
	if region.Empty() {
		return false
	}
	zone := viewport.Expand(margin, margin)
	if zone.Empty() {
		return false
	}
	return region.Intersects(zone)
}

// VisibilityGate turns a region's intersection with the viewport into a
// boolean signal. It is re-evaluated on every scroll, resize and on layout
// changes of its own region.
type VisibilityGate struct {
	region *Region
	cfg    GateConfig
	active *Signal[bool]
	handle CallbackHandle
	done   bool
}

// NewVisibilityGate starts observing r. The initial state is evaluated
// immediately. The gate stops itself when r is removed.
func NewVisibilityGate(r *Region, cfg GateConfig) *VisibilityGate {
	g := &VisibilityGate{region: r, cfg: cfg, active: NewSignal(false)}
	g.handle = r.engine.OnViewport(func(ev ViewportEvent) {
		if ev.Type == ViewportLayout && ev.Region != r {
			return
		}
		g.evaluate()
	})
	Mount(r, g)
	g.evaluate()
	return g
}

func (g *VisibilityGate) evaluate() {
	if g.done {
		return
	}
	vp := g.region.engine.viewport
	margin := g.cfg.Margin(vp.Height)
	bounds := g.region.bounds

	if !g.active.Get() {
		if IsActive(bounds, vp, margin) {
			g.active.Set(true)
			if g.cfg.OneShot {
				// Nothing left to observe.
				g.handle.Remove()
			}
		}
		return
	}
	if g.cfg.OneShot {
		return
	}
	if !IsActive(bounds, vp, margin+g.cfg.HysteresisPx) {
		g.active.Set(false)
	}
}

// Active returns the gate's signal.
func (g *VisibilityGate) Active() *Signal[bool] {
	return g.active
}

// IsActive returns the current state.
func (g *VisibilityGate) IsActive() bool {
	return g.active.Get()
}

// Stop detaches the gate from the viewport. The signal keeps its last value.
func (g *VisibilityGate) Stop() {
	if g.done {
		return
	}
	g.done = true
	g.handle.Remove()
}

// Governor runs a subsystem only while a gate is active. Each activation
// starts a fresh instance; deactivation stops it, which must end all of
// its per-frame work.
type Governor struct {
	gate    *VisibilityGate
	start   func() Subsystem
	current Subsystem
	sub     Subscription
	stopped bool
	starts  int
}

// Govern binds start to g. If g is already active the subsystem starts now.
func Govern(g *VisibilityGate, start func() Subsystem) *Governor {
	gov := &Governor{gate: g, start: start}
	gov.sub = g.active.Subscribe(gov.toggle)
	gov.toggle(g.active.Get())
	Mount(g.region, gov)
	return gov
}

func (gov *Governor) toggle(active bool) {
	if gov.stopped {
		return
	}
	switch {
	case active && gov.current == nil:
		gov.current = gov.start()
		gov.starts++
		log.Debug("governed subsystem started",
			zap.String("region", gov.gate.region.Name), zap.Int("starts", gov.starts))
	case !active && gov.current != nil:
		s := gov.current
		gov.current = nil
		s.Stop()
		log.Debug("governed subsystem stopped", zap.String("region", gov.gate.region.Name))
	}
}

// Current returns the running subsystem, or nil while the gate is inactive.
func (gov *Governor) Current() Subsystem {
	return gov.current
}

// Starts returns how many instances have been started.
func (gov *Governor) Starts() int {
	return gov.starts
}

// Stop stops the running subsystem and releases the gate subscription.
func (gov *Governor) Stop() {
	if gov.stopped {
		return
	}
	gov.stopped = true
	gov.sub.Remove()
	if gov.current != nil {
		s := gov.current
		gov.current = nil
		s.Stop()
	}
}
