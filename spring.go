package kinetic

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// MaxSpringStep bounds the dt a single spring step integrates. Longer gaps
// (a resumed background tab, a debugger pause) are treated as this long.
const MaxSpringStep = 1.0 / 15

// SpringConfig describes a damped spring in physical terms.
type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
	// RestDelta and RestSpeed snap the spring onto its target once both the
	// distance and the speed fall below them. Zero disables snapping.
	RestDelta float64 `yaml:"rest_delta"`
	RestSpeed float64 `yaml:"rest_speed"`
}

// Spring presets used across the page.
var (
	// SpringCursor is the cursor-follow spotlight.
	SpringCursor = SpringConfig{Stiffness: 100, Damping: 15, Mass: 0.1, RestDelta: 0.01, RestSpeed: 0.01}
	// SpringPath is the inertial catch-up of the timeline path.
	SpringPath = SpringConfig{Stiffness: 60, Damping: 20, Mass: 1, RestDelta: 0.001, RestSpeed: 0.001}
	// SpringCamera is the tunnel camera parallax.
	SpringCamera = SpringConfig{Stiffness: 12, Damping: 5, Mass: 1, RestDelta: 0.0005, RestSpeed: 0.0005}
)

func (c SpringConfig) withDefaults() SpringConfig {
	if c.Stiffness <= 0 {
		c.Stiffness = 100
	}
	if c.Damping <= 0 {
		c.Damping = 10
	}
	if c.Mass <= 0 {
		c.Mass = 1
	}
	return c
}

// AngularFrequency returns sqrt(k/m).
func (c SpringConfig) AngularFrequency() float64 {
	c = c.withDefaults()
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)). 1 is critical damping.
func (c SpringConfig) DampingRatio() float64 {
	c = c.withDefaults()
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// SpringState is a 1D spring's position, velocity and target.
type SpringState struct {
	Position float64
	Velocity float64
	Target   float64
}

// AtRest reports whether the state sits on its target with no velocity.
func (s SpringState) AtRest() bool {
	return s.Position == s.Target && s.Velocity == 0
}

// Spring integrates a SpringConfig. The damped harmonic step is solved
// analytically by harmonica, which stays stable for any positive dt; the
// coefficients are cached for the last dt seen, so a steady frame rate costs
// no recomputation.
type Spring struct {
	cfg   SpringConfig
	omega float64
	zeta  float64

	lastDt float64
	coeffs harmonica.Spring
}

// NewSpring returns a Spring for cfg. Non-positive parameters fall back to defaults.
func NewSpring(cfg SpringConfig) *Spring {
	cfg = cfg.withDefaults()
	return &Spring{
		cfg:   cfg,
		omega: cfg.AngularFrequency(),
		zeta:  cfg.DampingRatio(),
	}
}

// Config returns the spring's configuration.
func (s *Spring) Config() SpringConfig {
	return s.cfg
}

// Step advances st toward target by dt seconds and returns the new state.
func (s *Spring) Step(st SpringState, target, dt float64) SpringState {
	st.Target = target
	if dt <= 0 || math.IsNaN(dt) {
		return st
	}
	if dt > MaxSpringStep {
		dt = MaxSpringStep
	}
	if dt != s.lastDt {
		s.coeffs = harmonica.NewSpring(dt, s.omega, s.zeta)
		s.lastDt = dt
	}
	st.Position, st.Velocity = s.coeffs.Update(st.Position, st.Velocity, target)

	if s.cfg.RestDelta > 0 &&
		math.Abs(st.Position-target) < s.cfg.RestDelta &&
		math.Abs(st.Velocity) < s.cfg.RestSpeed {
		st.Position = target
		st.Velocity = 0
	}
	return st
}

// Spring2 smooths a Vec2 with one spring per axis.
type Spring2 struct {
	spring *Spring
	X, Y   SpringState
}

// NewSpring2 returns a 2D spring resting at start.
func NewSpring2(cfg SpringConfig, start Vec2) *Spring2 {
	return &Spring2{
		spring: NewSpring(cfg),
		X:      SpringState{Position: start.X, Target: start.X},
		Y:      SpringState{Position: start.Y, Target: start.Y},
	}
}

// Step advances both axes toward target and returns the new position.
func (s *Spring2) Step(target Vec2, dt float64) Vec2 {
	s.X = s.spring.Step(s.X, target.X, dt)
	s.Y = s.spring.Step(s.Y, target.Y, dt)
	return s.Position()
}

// Position returns the current smoothed value.
func (s *Spring2) Position() Vec2 {
	return Vec2{X: s.X.Position, Y: s.Y.Position}
}

// Snap moves the spring onto p with no velocity.
func (s *Spring2) Snap(p Vec2) {
	s.X = SpringState{Position: p.X, Target: p.X}
	s.Y = SpringState{Position: p.Y, Target: p.Y}
}

// CursorFollower tracks the pointer signal with a spring, for cursor-follow
// markers. It samples the shared pointer signal on each frame.
type CursorFollower struct {
	spring *Spring2
	target Vec2
	pos    *Signal[Vec2]

	sub   Subscription
	frame CallbackHandle
	alive bool
}

// NewCursorFollower starts following e's pointer. The returned follower must
// be stopped, or bound to a region with Mount, to release its listeners.
func NewCursorFollower(e *Engine, cfg SpringConfig) *CursorFollower {
	start := e.Pointer().Get()
	f := &CursorFollower{
		spring: NewSpring2(cfg, start),
		target: start,
		pos:    NewSignal(start),
		alive:  true,
	}
	f.sub = e.Pointer().Subscribe(func(p Vec2) { f.target = p })
	f.target = e.Pointer().Get()
	f.frame = e.OnFrame(func(dt float64) {
		f.pos.Set(f.spring.Step(f.target, dt))
	})
	return f
}

// Position returns the smoothed position signal.
func (f *CursorFollower) Position() *Signal[Vec2] {
	return f.pos
}

// Stop releases the pointer subscription and the frame callback. Safe to
// call more than once.
func (f *CursorFollower) Stop() {
	if !f.alive {
		return
	}
	f.alive = false
	f.sub.Remove()
	f.frame.Remove()
}
