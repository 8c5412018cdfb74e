package kinetic

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Tunnel world constants. Advances are per 60Hz frame and scaled by dt.
const (
	tunnelRotationPerFrame = 0.002
	particleSpeedFactor    = 3
	particleNear           = 100.0
	particleFar            = -100.0
	particleSpreadFactor   = 5
	particleSize           = 0.05
	particleOpacity        = 0.6
	baseRadialSegments     = 32
	baseHeightSegments     = 20
	referenceFPS           = 60
)

// TunnelConfig configures a Tunnel.
type TunnelConfig struct {
	// Palette is [wall color, particle color] in hex.
	Palette          []string `yaml:"palette"`
	TravelSpeed      float64  `yaml:"travel_speed"`
	WireframeDensity float64  `yaml:"wireframe_density"`
	ParticleCount    int      `yaml:"particle_count"`
	Opacity          float64  `yaml:"opacity"`

	Radius        float64 `yaml:"radius"`
	SegmentLength float64 `yaml:"segment_length"`
	// CameraThrow is how far the camera drifts for a pointer at the window edge.
	CameraThrow float64      `yaml:"camera_throw"`
	Camera      SpringConfig `yaml:"camera"`
	FovDeg      float64      `yaml:"fov_deg"`
	FogDensity  float64      `yaml:"fog_density"`
	// Seed fixes the particle scatter. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// DefaultTunnelConfig returns the hero tunnel's configuration.
func DefaultTunnelConfig() TunnelConfig {
	return TunnelConfig{
		Palette:          []string{"#46cef6", "#ffffff"},
		TravelSpeed:      0.5,
		WireframeDensity: 1,
		ParticleCount:    1000,
		Opacity:          0.5,
		Radius:           10,
		SegmentLength:    200,
		CameraThrow:      3,
		Camera:           SpringCamera,
		FovDeg:           75,
		FogDensity:       0.03,
	}
}

// Validate reports configuration values that cannot produce a tunnel.
func (c TunnelConfig) Validate() error {
	var errs []error
	if len(c.Palette) > 2 {
		errs = append(errs, fmt.Errorf("palette: want at most 2 colors, got %d", len(c.Palette)))
	}
	for _, s := range c.Palette {
		if _, err := ParseHexColor(s); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		errs = append(errs, fmt.Errorf("opacity %v outside [0, 1]", c.Opacity))
	}
	if c.TravelSpeed < 0 {
		errs = append(errs, fmt.Errorf("travel speed %v is negative", c.TravelSpeed))
	}
	if c.ParticleCount < 0 {
		errs = append(errs, fmt.Errorf("particle count %d is negative", c.ParticleCount))
	}
	return errors.Join(errs...)
}

// withDefaults fills unset palette, geometry and camera fields from
// DefaultTunnelConfig. Speed, counts and opacity are taken as given.
func (c TunnelConfig) withDefaults() TunnelConfig {
	d := DefaultTunnelConfig()
	if len(c.Palette) == 0 {
		c.Palette = d.Palette
	} else if len(c.Palette) == 1 {
		c.Palette = []string{c.Palette[0], d.Palette[1]}
	}
	if c.WireframeDensity <= 0 {
		c.WireframeDensity = d.WireframeDensity
	}
	if c.Radius <= 0 {
		c.Radius = d.Radius
	}
	if c.SegmentLength <= 0 {
		c.SegmentLength = d.SegmentLength
	}
	if c.FovDeg <= 0 || c.FovDeg >= 180 {
		c.FovDeg = d.FovDeg
	}
	if c.Camera == (SpringConfig{}) {
		c.Camera = d.Camera
	}
	if c.FogDensity < 0 {
		c.FogDensity = 0
	}
	return c
}

// TunnelState is the lifecycle state of a Tunnel.
type TunnelState uint8

const (
	TunnelUninitialized TunnelState = iota
	TunnelRunning
	TunnelDisposed
)

func (s TunnelState) String() string {
	switch s {
	case TunnelUninitialized:
		return "uninitialized"
	case TunnelRunning:
		return "running"
	case TunnelDisposed:
		return "disposed"
	}
	return fmt.Sprintf("TunnelState(%d)", uint8(s))
}

// tunnelGeometry is the wireframe shared by both segments: rings of
// vertices around the Z axis and the edges between them.
type tunnelGeometry struct {
	vertices []Vec3
	edges    [][2]int32
}

func buildTunnelGeometry(radius, length float64, radial, rings int) tunnelGeometry {
	g := tunnelGeometry{vertices: make([]Vec3, 0, radial*(rings+1))}
	for h := 0; h <= rings; h++ {
		z := length/2 - float64(h)*length/float64(rings)
		for r := 0; r < radial; r++ {
			s, c := math.Sincos(2 * math.Pi * float64(r) / float64(radial))
			g.vertices = append(g.vertices, Vec3{X: radius * c, Y: radius * s, Z: z})
		}
	}
	idx := func(h, r int) int32 { return int32(h*radial + r%radial) }
	g.edges = make([][2]int32, 0, radial*(2*rings+1))
	for h := 0; h <= rings; h++ {
		for r := 0; r < radial; r++ {
			g.edges = append(g.edges, [2]int32{idx(h, r), idx(h, r+1)})
			if h < rings {
				g.edges = append(g.edges, [2]int32{idx(h, r), idx(h+1, r)})
			}
		}
	}
	return g
}

type tunnelSegment struct {
	z        float64
	rotation float64
}

// Tunnel is the procedural wireframe tunnel: two recycled wall segments, a
// particle warp field and a spring-driven camera. A Tunnel runs once; mount
// a fresh instance for every activation.
type Tunnel struct {
	factory SurfaceFactory
	state   TunnelState

	cfg       TunnelConfig
	primary   Color
	secondary Color

	region  *Region
	surface Surface
	width   int
	height  int

	geometry  tunnelGeometry
	segments  [2]tunnelSegment
	particles []Vec3

	camera      PerspectiveCamera
	cameraDrift *Spring2
	aim         Vec2

	lines  []LineSegment
	points []PointSprite

	pointer  Subscription
	frame    CallbackHandle
	viewport CallbackHandle
	unmount  func()

	frames uint64
}

// NewTunnel returns an uninitialized tunnel that will draw into surfaces
// from factory.
func NewTunnel(factory SurfaceFactory) *Tunnel {
	return &Tunnel{factory: factory}
}

// StartTunnel creates and starts a tunnel on r. It is the start function
// used with Govern.
func StartTunnel(r *Region, cfg TunnelConfig, factory SurfaceFactory) *Tunnel {
	t := NewTunnel(factory)
	if err := t.Start(r, cfg); err != nil {
		log.Warn("tunnel start failed", zap.String("region", r.Name), zap.Error(err))
	}
	return t
}

// Start allocates the world and begins the frame loop on r's engine. A
// surface that cannot be acquired is not an error: the tunnel logs it and
// renders nothing. Start fails only for an invalid config or a tunnel that
// has already been started.
func (t *Tunnel) Start(r *Region, cfg TunnelConfig) error {
	switch t.state {
	case TunnelRunning:
		return errors.New("kinetic: tunnel already running")
	case TunnelDisposed:
		return ErrDisposed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("tunnel config: %w", err)
	}
	cfg = cfg.withDefaults()
	t.cfg = cfg
	t.primary = MustParseHexColor(cfg.Palette[0]).WithAlpha(cfg.Opacity)
	t.secondary = MustParseHexColor(cfg.Palette[1]).WithAlpha(particleOpacity)
	t.region = r
	t.state = TunnelRunning

	radial := max(3, int(math.Round(baseRadialSegments*cfg.WireframeDensity)))
	rings := max(1, int(math.Round(baseHeightSegments*cfg.WireframeDensity)))
	t.geometry = buildTunnelGeometry(cfg.Radius, cfg.SegmentLength, radial, rings)
	t.segments = [2]tunnelSegment{{z: 0}, {z: -cfg.SegmentLength}}
	t.scatterParticles()

	t.lines = make([]LineSegment, 0, 2*len(t.geometry.edges))
	t.points = make([]PointSprite, 0, len(t.particles))

	t.camera = PerspectiveCamera{FovDeg: cfg.FovDeg, Near: 0.1, Far: 1000, Target: Vec3{0, 0, -20}}
	t.cameraDrift = NewSpring2(cfg.Camera, Vec2{})

	b := r.Bounds()
	t.resize(int(b.Width), int(b.Height))

	var surface Surface
	err := ErrSurfaceUnavailable
	if t.factory != nil {
		surface, err = t.factory(t.width, t.height)
	}
	if err != nil {
		// The page stays usable; the tunnel simply renders nothing.
		log.Warn("tunnel surface unavailable, rendering disabled",
			zap.String("region", r.Name), zap.Error(err))
	} else {
		t.surface = surface
	}

	e := r.Engine()
	t.pointer = e.PointerNormalized().Subscribe(func(p Vec2) { t.aim = p })
	t.aim = e.PointerNormalized().Get()
	t.viewport = e.OnViewport(func(ev ViewportEvent) {
		if ev.Type == ViewportResize || (ev.Type == ViewportLayout && ev.Region == r) {
			b := r.Bounds()
			t.Resize(int(b.Width), int(b.Height))
		}
	})
	t.frame = e.OnFrame(t.tick)
	t.unmount = Mount(r, t)

	log.Info("tunnel started",
		zap.String("region", r.Name),
		zap.Int("edges", len(t.geometry.edges)),
		zap.Int("particles", len(t.particles)),
		zap.Bool("surface", t.surface != nil))
	return nil
}

func (t *Tunnel) scatterParticles() {
	seed := t.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	spread := t.cfg.Radius * particleSpreadFactor
	r := Range{Min: -spread / 2, Max: spread / 2}
	t.particles = make([]Vec3, t.cfg.ParticleCount)
	for i := range t.particles {
		t.particles[i] = Vec3{X: r.Random(rng), Y: r.Random(rng), Z: r.Random(rng)}
	}
}

// State returns the lifecycle state.
func (t *Tunnel) State() TunnelState {
	return t.state
}

// Rendering reports whether the tunnel holds a surface to draw into.
func (t *Tunnel) Rendering() bool {
	return t.surface != nil
}

// Surface returns the render surface, or nil when none could be acquired.
func (t *Tunnel) Surface() Surface {
	return t.surface
}

// Config returns the effective configuration.
func (t *Tunnel) Config() TunnelConfig {
	return t.cfg
}

// SegmentZ returns the z offset of wall segment i (0 or 1).
func (t *Tunnel) SegmentZ(i int) float64 {
	return t.segments[i].z
}

// Rotation returns the wall rotation in radians.
func (t *Tunnel) Rotation() float64 {
	return t.segments[0].rotation
}

// Particles returns the particle positions. The slice is owned by the tunnel.
func (t *Tunnel) Particles() []Vec3 {
	return t.particles
}

// Camera returns the current camera position.
func (t *Tunnel) Camera() Vec3 {
	return t.camera.Position
}

// Aspect returns the camera aspect ratio.
func (t *Tunnel) Aspect() float64 {
	return t.camera.Aspect
}

// Size returns the render size in pixels.
func (t *Tunnel) Size() (width, height int) {
	return t.width, t.height
}

// Frames returns the number of frames simulated.
func (t *Tunnel) Frames() uint64 {
	return t.frames
}

// EdgeCount returns the number of wireframe edges per segment.
func (t *Tunnel) EdgeCount() int {
	return len(t.geometry.edges)
}

// Resize updates the aspect ratio and surface size. World state keeps its
// phase. A resize arriving after disposal is discarded.
func (t *Tunnel) Resize(width, height int) {
	if t.state != TunnelRunning {
		log.Debug("discarding tunnel resize", zap.Stringer("state", t.state))
		return
	}
	t.resize(width, height)
	if t.surface != nil {
		t.surface.Resize(t.width, t.height)
	}
}

func (t *Tunnel) resize(width, height int) {
	t.width, t.height = max(width, 0), max(height, 0)
	if t.height > 0 {
		t.camera.Aspect = float64(t.width) / float64(t.height)
	} else {
		t.camera.Aspect = 1
	}
}

func (t *Tunnel) tick(dt float64) {
	// A frame queued before Dispose must not touch released resources.
	if t.state != TunnelRunning {
		return
	}
	t.Simulate(dt)
	t.render()
}

// Simulate advances the world by dt seconds without drawing.
func (t *Tunnel) Simulate(dt float64) {
	if t.state != TunnelRunning || dt <= 0 {
		return
	}
	k := math.Min(dt, MaxSpringStep) * referenceFPS
	length := t.cfg.SegmentLength
	advance := t.cfg.TravelSpeed * k

	for i := range t.segments {
		s := &t.segments[i]
		s.z += advance
		if s.z >= length {
			// Keep the overshoot so the two segments stay exactly one
			// length apart.
			s.z -= 2 * length
		}
		s.rotation = math.Mod(s.rotation+tunnelRotationPerFrame*k, 2*math.Pi)
	}

	depth := advance * particleSpeedFactor
	span := particleNear - particleFar
	for i := range t.particles {
		p := &t.particles[i]
		p.Z += depth
		if p.Z > particleNear {
			p.Z -= span
		}
	}

	throw := t.cfg.CameraThrow
	pos := t.cameraDrift.Step(Vec2{X: t.aim.X * throw, Y: t.aim.Y * throw}, dt)
	t.camera.Position = Vec3{X: pos.X, Y: pos.Y, Z: 0}
	t.camera.Update()
	t.frames++
}

func (t *Tunnel) render() {
	if t.surface == nil || t.width == 0 || t.height == 0 {
		return
	}
	w, h := float64(t.width), float64(t.height)
	t.lines = t.lines[:0]
	for i := range t.segments {
		s := &t.segments[i]
		model := Translate(0, 0, s.z).Mul(RotateZ(s.rotation))
		mv := t.camera.View().Mul(model)
		for _, e := range t.geometry.edges {
			a, _ := mv.TransformPoint(t.geometry.vertices[e[0]])
			b, _ := mv.TransformPoint(t.geometry.vertices[e[1]])
			a, b, ok := clipNear(a, b, t.camera.Near)
			if !ok {
				continue
			}
			x0, y0, ok0 := t.camera.ProjectView(a, w, h)
			x1, y1, ok1 := t.camera.ProjectView(b, w, h)
			if !ok0 || !ok1 {
				continue
			}
			depth := (-a.Z - b.Z) / 2
			vis := FogExp2(t.cfg.FogDensity, depth)
			if vis < 1.0/255 {
				continue
			}
			t.lines = append(t.lines, LineSegment{
				X0: float32(x0), Y0: float32(y0), X1: float32(x1), Y1: float32(y1),
				Color: t.primary.WithAlpha(t.primary.A * vis),
			})
		}
	}

	// Point size follows perspective: world size times half the surface
	// height over depth.
	scale := h / 2
	t.points = t.points[:0]
	for _, p := range t.particles {
		v := t.camera.ToView(p)
		x, y, ok := t.camera.ProjectView(v, w, h)
		if !ok || x < 0 || y < 0 || x > w || y > h {
			continue
		}
		vis := FogExp2(t.cfg.FogDensity, -v.Z)
		if vis < 1.0/255 {
			continue
		}
		size := math.Max(particleSize*scale/-v.Z, 1)
		t.points = append(t.points, PointSprite{
			X: float32(x), Y: float32(y), Size: float32(size),
			Color: t.secondary.WithAlpha(t.secondary.A * vis),
		})
	}

	t.surface.Begin()
	t.surface.DrawLines(t.lines, BlendAdd)
	t.surface.DrawPoints(t.points, BlendAdd)
	t.surface.End()
}

// Stop disposes the tunnel. It is the mount contract's stop.
func (t *Tunnel) Stop() {
	t.Dispose()
}

// Dispose cancels the frame loop and releases the surface and all buffers.
// Calling it again, or on a tunnel that never started, is a no-op beyond the
// state change.
func (t *Tunnel) Dispose() {
	if t.state == TunnelDisposed {
		return
	}
	wasRunning := t.state == TunnelRunning
	t.state = TunnelDisposed
	t.frame.Remove()
	t.viewport.Remove()
	t.pointer.Remove()
	if t.unmount != nil {
		t.unmount()
		t.unmount = nil
	}
	if t.surface != nil {
		t.surface.Dispose()
		t.surface = nil
	}
	t.geometry = tunnelGeometry{}
	t.particles = nil
	t.lines = nil
	t.points = nil
	if wasRunning {
		log.Info("tunnel disposed", zap.String("region", t.region.Name), zap.Uint64("frames", t.frames))
	}
}
