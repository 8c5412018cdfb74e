package kinetic

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// SnakePath is the timeline's serpentine route in a 1000x600 view box.
const SnakePath = "M 50 150 H 850 Q 950 150 950 300 Q 950 450 850 450 H 50"

// curveSegments is the number of chords each curve is flattened into.
const curveSegments = 24

// Path is a flattened polyline with a cumulative arc-length table.
type Path struct {
	points []Vec2
	// cum[i] is the length from points[0] to points[i].
	cum []float64
}

// ParsePath parses the subset of SVG path data made of M, L, H, V, Q, T, C, S
// and Z commands in absolute or relative form. Curves are flattened into chords.
func ParsePath(d string) (*Path, error) {
	p := &pathParser{src: d}
	if err := p.parse(); err != nil {
		return nil, fmt.Errorf("parse path %q: %w", d, err)
	}
	if len(p.points) < 2 {
		return nil, fmt.Errorf("parse path %q: %w: fewer than two points", d, ErrInvalidPath)
	}
	return newPath(p.points), nil
}

// MustParsePath is like ParsePath but panics on malformed input.
func MustParsePath(d string) *Path {
	path, err := ParsePath(d)
	if err != nil {
		panic(err)
	}
	return path
}

func newPath(points []Vec2) *Path {
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + points[i].Sub(points[i-1]).Length()
	}
	return &Path{points: points, cum: cum}
}

// Length returns the total arc length.
func (p *Path) Length() float64 {
	return p.cum[len(p.cum)-1]
}

// Points returns the flattened polyline. The slice must not be modified.
func (p *Path) Points() []Vec2 {
	return p.points
}

// PointAt returns the point at fraction f of the total length. f is clamped
// to [0, 1].
func (p *Path) PointAt(f float64) Vec2 {
	i, t := p.locate(f)
	if t == 0 {
		return p.points[i]
	}
	a, b := p.points[i], p.points[i+1]
	return Vec2{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}

// locate returns the chord index and the fraction along it for fraction f.
func (p *Path) locate(f float64) (int, float64) {
	total := p.Length()
	f = clamp(f, 0, 1)
	if total == 0 || f == 0 {
		return 0, 0
	}
	if f == 1 {
		return len(p.points) - 1, 0
	}
	target := f * total
	j := sort.SearchFloat64s(p.cum, target)
	if j == 0 {
		return 0, 0
	}
	span := p.cum[j] - p.cum[j-1]
	if span == 0 {
		return j, 0
	}
	return j - 1, (target - p.cum[j-1]) / span
}

// Drawn appends to dst the polyline covering the first fraction f of the
// path and returns it. Reuse dst across frames to avoid allocation.
func (p *Path) Drawn(f float64, dst []Vec2) []Vec2 {
	dst = dst[:0]
	if clamp(f, 0, 1) == 0 {
		return dst
	}
	i, _ := p.locate(f)
	dst = append(dst, p.points[:i+1]...)
	if i < len(p.points)-1 {
		dst = append(dst, p.PointAt(f))
	}
	return dst
}

type pathParser struct {
	src    string
	pos    int
	points []Vec2
	cur    Vec2
	start  Vec2

	// ctrl is the last curve's final control point; curve is 'Q' or 'C'
	// when the previous command was a quadratic or cubic curve, else 0.
	ctrl  Vec2
	curve byte
}

// smoothControl returns the first control point of a smooth curve: the
// reflection of the previous control point when the previous command was
// a curve of the same kind, otherwise the current point.
func (p *pathParser) smoothControl(prev, kind byte) Vec2 {
	if prev != kind {
		return p.cur
	}
	return p.cur.Scale(2).Sub(p.ctrl)
}

func (p *pathParser) parse() error {
	var cmd byte
	for {
		p.skipSeparators()
		if p.pos >= len(p.src) {
			return nil
		}
		c := p.src[p.pos]
		if isCommand(c) {
			cmd = c
			p.pos++
		} else if cmd == 0 {
			return fmt.Errorf("%w: expected command at offset %d", ErrInvalidPath, p.pos)
		}
		if len(p.points) == 0 && cmd != 'M' && cmd != 'm' {
			return fmt.Errorf("%w: path must start with a moveto", ErrInvalidPath)
		}
		if err := p.command(cmd); err != nil {
			return err
		}
		// A moveto followed by bare coordinates continues as lineto.
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		case 'Z', 'z':
			cmd = 0
		}
	}
}

func (p *pathParser) command(cmd byte) error {
	rel := cmd >= 'a'
	base := Vec2{}
	if rel {
		base = p.cur
	}
	prev := p.curve
	p.curve = 0
	switch cmd {
	case 'M', 'm':
		v, err := p.numbers(2)
		if err != nil {
			return err
		}
		p.cur = base.Add(Vec2{v[0], v[1]})
		p.start = p.cur
		if len(p.points) > 0 {
			return fmt.Errorf("%w: multiple subpaths", ErrInvalidPath)
		}
		p.points = append(p.points, p.cur)
	case 'L', 'l':
		v, err := p.numbers(2)
		if err != nil {
			return err
		}
		p.lineTo(base.Add(Vec2{v[0], v[1]}))
	case 'H', 'h':
		v, err := p.numbers(1)
		if err != nil {
			return err
		}
		x := v[0]
		if rel {
			x += p.cur.X
		}
		p.lineTo(Vec2{x, p.cur.Y})
	case 'V', 'v':
		v, err := p.numbers(1)
		if err != nil {
			return err
		}
		y := v[0]
		if rel {
			y += p.cur.Y
		}
		p.lineTo(Vec2{p.cur.X, y})
	case 'Q', 'q':
		v, err := p.numbers(4)
		if err != nil {
			return err
		}
		p.quadTo(base.Add(Vec2{v[0], v[1]}), base.Add(Vec2{v[2], v[3]}))
	case 'T', 't':
		v, err := p.numbers(2)
		if err != nil {
			return err
		}
		p.quadTo(p.smoothControl(prev, 'Q'), base.Add(Vec2{v[0], v[1]}))
	case 'C', 'c':
		v, err := p.numbers(6)
		if err != nil {
			return err
		}
		p.cubicTo(base.Add(Vec2{v[0], v[1]}), base.Add(Vec2{v[2], v[3]}), base.Add(Vec2{v[4], v[5]}))
	case 'S', 's':
		v, err := p.numbers(4)
		if err != nil {
			return err
		}
		p.cubicTo(p.smoothControl(prev, 'C'), base.Add(Vec2{v[0], v[1]}), base.Add(Vec2{v[2], v[3]}))
	case 'Z', 'z':
		p.lineTo(p.start)
	default:
		return fmt.Errorf("%w: unsupported command %q", ErrInvalidPath, cmd)
	}
	return nil
}

func (p *pathParser) lineTo(v Vec2) {
	p.points = append(p.points, v)
	p.cur = v
}

func (p *pathParser) quadTo(c1, end Vec2) {
	from := p.cur
	for i := 1; i <= curveSegments; i++ {
		p.lineTo(quadratic(from, c1, end, float64(i)/curveSegments))
	}
	p.ctrl, p.curve = c1, 'Q'
}

func (p *pathParser) cubicTo(c1, c2, end Vec2) {
	from := p.cur
	for i := 1; i <= curveSegments; i++ {
		p.lineTo(cubic(from, c1, c2, end, float64(i)/curveSegments))
	}
	p.ctrl, p.curve = c2, 'C'
}

func (p *pathParser) numbers(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		p.skipSeparators()
		start := p.pos
		if p.pos < len(p.src) && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
			p.pos++
		}
		for p.pos < len(p.src) && isNumberByte(p.src[p.pos], p.src[p.pos-1]) {
			p.pos++
		}
		if start == p.pos {
			return nil, fmt.Errorf("%w: expected number at offset %d", ErrInvalidPath, start)
		}
		f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		out[i] = f
	}
	return out, nil
}

func (p *pathParser) skipSeparators() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', ',', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Q', 'q', 'T', 't', 'C', 'c', 'S', 's', 'Z', 'z':
		return true
	}
	return false
}

// isNumberByte reports whether c continues a number whose previous byte is prev.
// A sign only continues a number directly after an exponent marker.
func isNumberByte(c, prev byte) bool {
	switch {
	case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E':
		return true
	case c == '-' || c == '+':
		return prev == 'e' || prev == 'E'
	}
	return false
}

func quadratic(a, b, c Vec2, t float64) Vec2 {
	u := 1 - t
	return a.Scale(u * u).Add(b.Scale(2 * u * t)).Add(c.Scale(t * t))
}

func cubic(a, b, c, d Vec2, t float64) Vec2 {
	u := 1 - t
	return a.Scale(u * u * u).
		Add(b.Scale(3 * u * u * t)).
		Add(c.Scale(3 * u * t * t)).
		Add(d.Scale(t * t * t))
}

// PathProgress smooths a scroll-progress signal with a spring and exposes how
// much of a path is drawn and where its marker sits.
type PathProgress struct {
	path    *Path
	spring  *Spring
	state   SpringState
	target  float64
	mapping Mapping

	drawn  *Signal[float64]
	marker *Signal[Vec2]

	sub     Subscription
	frame   CallbackHandle
	stopped bool
}

// NewPathProgress drives path from progress, stepping cfg's spring on e's
// frames. A zero mapping means progress is used as the drawn fraction as is.
func NewPathProgress(e *Engine, path *Path, progress *Signal[float64], mapping Mapping, cfg SpringConfig) *PathProgress {
	pp := &PathProgress{
		path:    path,
		spring:  NewSpring(cfg),
		mapping: mapping,
	}
	pp.target = pp.mapTarget(progress.Get())
	pp.state = SpringState{Position: pp.target, Target: pp.target}
	pp.drawn = NewSignal(pp.target)
	pp.marker = NewSignal(path.PointAt(pp.target))

	pp.sub = progress.Subscribe(func(v float64) { pp.target = pp.mapTarget(v) })
	pp.frame = e.OnFrame(pp.step)
	return pp
}

func (pp *PathProgress) mapTarget(v float64) float64 {
	if len(pp.mapping.stops) > 0 {
		v = pp.mapping.Evaluate(v)
	}
	return clamp(v, 0, 1)
}

func (pp *PathProgress) step(dt float64) {
	pp.state = pp.spring.Step(pp.state, pp.target, dt)
	f := clamp(pp.state.Position, 0, 1)
	pp.drawn.Set(f)
	pp.marker.Set(pp.path.PointAt(f))
}

// Drawn returns the drawn-fraction signal in [0, 1].
func (pp *PathProgress) Drawn() *Signal[float64] {
	return pp.drawn
}

// Marker returns the signal of the marker's position on the path.
func (pp *PathProgress) Marker() *Signal[Vec2] {
	return pp.marker
}

// Path returns the path being drawn.
func (pp *PathProgress) Path() *Path {
	return pp.path
}

// Stop releases the progress subscription and the frame callback.
func (pp *PathProgress) Stop() {
	if pp.stopped {
		return
	}
	pp.stopped = true
	pp.sub.Remove()
	pp.frame.Remove()
}

// TimelineLayout selects the activation rule for timeline steps.
type TimelineLayout uint8

const (
	// TimelineWide lays steps along the snake path; step ids are 1-based.
	TimelineWide TimelineLayout = iota
	// TimelineCompact lays steps along a vertical track and activates them
	// slightly ahead of the marker.
	TimelineCompact
)

// DefaultTimelineDivisor is the progress divisor the step thresholds were
// tuned against. It is not derived from the step count.
const DefaultTimelineDivisor = 6.5

// StepThreshold returns the drawn fraction step index i (0-based) must
// exceed to become active.
func StepThreshold(layout TimelineLayout, i int, divisor float64) float64 {
	if divisor <= 0 || math.IsNaN(divisor) {
		divisor = DefaultTimelineDivisor
	}
	if layout == TimelineCompact {
		return (float64(i) + 0.1) / divisor
	}
	id := float64(i + 1)
	return (id - 0.5) / divisor
}

// Timeline tracks which of n steps are active for a progress signal.
type Timeline struct {
	thresholds []float64
	active     []*Signal[bool]
	sub        Subscription
	stopped    bool
}

// NewTimeline subscribes n step activations to progress.
func NewTimeline(progress *Signal[float64], n int, layout TimelineLayout, divisor float64) *Timeline {
	t := &Timeline{
		thresholds: make([]float64, n),
		active:     make([]*Signal[bool], n),
	}
	v := progress.Get()
	for i := range t.thresholds {
		t.thresholds[i] = StepThreshold(layout, i, divisor)
		t.active[i] = NewSignal(v > t.thresholds[i])
	}
	t.sub = progress.Subscribe(t.update)
	return t
}

func (t *Timeline) update(v float64) {
	for i, th := range t.thresholds {
		t.active[i].Set(v > th)
	}
}

// Active returns step i's activation signal.
func (t *Timeline) Active(i int) *Signal[bool] {
	return t.active[i]
}

// Threshold returns step i's activation threshold.
func (t *Timeline) Threshold(i int) float64 {
	return t.thresholds[i]
}

// Len returns the number of steps.
func (t *Timeline) Len() int {
	return len(t.thresholds)
}

// Stop releases the progress subscription.
func (t *Timeline) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.sub.Remove()
}
