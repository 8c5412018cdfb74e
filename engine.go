package kinetic

import (
	"math"
	"time"

	"go.uber.org/zap"
)

const defaultDragDeadZone = 4.0 // pixels

// ViewportEventType identifies what changed the viewport geometry.
type ViewportEventType uint8

const (
	ViewportScroll ViewportEventType = iota // document scrolled
	ViewportResize                          // window resized
	ViewportLayout                          // a region's bounds changed
)

// ViewportEvent is delivered to OnViewport handlers after the change has been
// applied to the engine state.
type ViewportEvent struct {
	Type     ViewportEventType
	Viewport Rect
	// Region is the region whose layout changed. Nil unless Type is ViewportLayout.
	Region *Region
}

// PointerContext carries window-space pointer data.
type PointerContext struct {
	X, Y float64
}

// DragContext carries drag data. Deltas are relative to the previous drag
// event; Start is where the pointer was pressed.
type DragContext struct {
	Region         *Region
	X, Y           float64
	StartX, StartY float64
	DeltaX, DeltaY float64
}

type hostEventType uint8

const (
	hostScroll hostEventType = iota
	hostResize
	hostLayout
	hostPointerMove
	hostPointerDown
	hostPointerUp
)

type hostEvent struct {
	kind     hostEventType
	x, y     float64
	relative bool
	bounds   Rect
	region   *Region
}

type pointerState struct {
	seen     bool
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hit      *Region
	dragging bool
}

// Engine is the host the animation primitives run against: it owns the
// viewport, the document regions, input delivery and the frame loop.
//
// Input methods only queue events. Update applies every queued event, in
// arrival order, before any frame callback runs, so derived values evaluated
// in a frame always see one coherent snapshot of inputs.
type Engine struct {
	viewport  Rect
	docHeight float64
	regions   []*Region
	queue     []hostEvent

	viewportHandlers callbackList[func(ViewportEvent)]
	moveHandlers     callbackList[func(PointerContext)]
	downHandlers     callbackList[func(PointerContext)]
	upHandlers       callbackList[func(PointerContext)]
	dragStart        callbackList[func(DragContext)]
	drag             callbackList[func(DragContext)]
	dragEnd          callbackList[func(DragContext)]
	frameHandlers    callbackList[func(dt float64)]

	pointer      pointerState
	dragDeadZone float64

	pointerSig     *Signal[Vec2]
	pointerNormSig *Signal[Vec2]
	clockSig       *Signal[float64]
	elapsed        float64
	frame          uint64

	injectQueue  []hostEvent
	scrollAnim   *scrollAnim
	script       *Script
	screenshotFn func(label string)

	debug bool
	stats *frameStats
}

// NewEngine creates an engine with a viewport of the given window size,
// scrolled to the top of the document.
func NewEngine(width, height float64) *Engine {
	e := &Engine{
		viewport:     Rect{Width: width, Height: height},
		dragDeadZone: defaultDragDeadZone,
	}
	e.pointerSig = NewSharedSignal(Vec2{}, func(set func(Vec2)) func() {
		set(Vec2{X: e.pointer.lastX, Y: e.pointer.lastY})
		h := e.OnPointerMove(func(ctx PointerContext) { set(Vec2{X: ctx.X, Y: ctx.Y}) })
		return h.Remove
	})
	e.pointerNormSig = NewSharedSignal(Vec2{}, func(set func(Vec2)) func() {
		set(e.normalizedPointer())
		move := e.OnPointerMove(func(ctx PointerContext) { set(e.normalize(ctx.X, ctx.Y)) })
		resize := e.OnViewport(func(ev ViewportEvent) {
			if ev.Type == ViewportResize {
				set(e.normalizedPointer())
			}
		})
		return func() {
			move.Remove()
			resize.Remove()
		}
	})
	e.clockSig = NewSharedSignal(0.0, func(set func(float64)) func() {
		set(e.elapsed)
		h := e.OnFrame(func(float64) { set(e.elapsed) })
		return h.Remove
	})
	return e
}

// Viewport returns the visible document rectangle. Y is the scroll offset.
func (e *Engine) Viewport() Rect {
	return e.viewport
}

// SetDocumentHeight bounds scrolling to [0, height-viewport height].
// Zero disables the bound.
func (e *Engine) SetDocumentHeight(h float64) {
	e.docHeight = h
}

// Elapsed returns the engine time in seconds accumulated by Update.
func (e *Engine) Elapsed() float64 {
	return e.elapsed
}

// Frame returns the number of completed frames.
func (e *Engine) Frame() uint64 {
	return e.frame
}

// SetDragDeadZone sets the minimum pointer travel in pixels before a press
// becomes a drag.
func (e *Engine) SetDragDeadZone(pixels float64) {
	e.dragDeadZone = pixels
}

// Pointer returns the process-wide window-space pointer signal. The host
// listener is attached while the signal has subscribers.
func (e *Engine) Pointer() *Signal[Vec2] {
	return e.pointerSig
}

// PointerNormalized returns the pointer mapped to [-1, 1] on both axes with
// +Y up, relative to the window.
func (e *Engine) PointerNormalized() *Signal[Vec2] {
	return e.pointerNormSig
}

// Clock returns the process-wide elapsed-time signal in seconds.
func (e *Engine) Clock() *Signal[float64] {
	return e.clockSig
}

// normalizedPointer is the last pointer position normalized, or the window
// center before the pointer has been seen.
func (e *Engine) normalizedPointer() Vec2 {
	if !e.pointer.seen {
		return Vec2{}
	}
	return e.normalize(e.pointer.lastX, e.pointer.lastY)
}

func (e *Engine) normalize(x, y float64) Vec2 {
	if e.viewport.Width <= 0 || e.viewport.Height <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: clamp(x/e.viewport.Width*2-1, -1, 1),
		Y: clamp(-(y/e.viewport.Height)*2+1, -1, 1),
	}
}

// --- Input (queued) ---

// Scroll queues an absolute document scroll to y.
func (e *Engine) Scroll(y float64) {
	e.scrollAnim = nil
	e.queue = append(e.queue, hostEvent{kind: hostScroll, y: y})
}

// ScrollBy queues a relative document scroll.
func (e *Engine) ScrollBy(dy float64) {
	e.scrollAnim = nil
	e.queue = append(e.queue, hostEvent{kind: hostScroll, y: dy, relative: true})
}

// Resize queues a window resize.
func (e *Engine) Resize(width, height float64) {
	e.queue = append(e.queue, hostEvent{kind: hostResize, x: width, y: height})
}

// PointerMove queues a pointer move to window coordinates (x, y).
func (e *Engine) PointerMove(x, y float64) {
	e.queue = append(e.queue, hostEvent{kind: hostPointerMove, x: x, y: y})
}

// PointerDown queues a primary button press at (x, y).
func (e *Engine) PointerDown(x, y float64) {
	e.queue = append(e.queue, hostEvent{kind: hostPointerDown, x: x, y: y})
}

// PointerUp queues a primary button release at (x, y).
func (e *Engine) PointerUp(x, y float64) {
	e.queue = append(e.queue, hostEvent{kind: hostPointerUp, x: x, y: y})
}

// --- Handlers ---

// OnViewport registers fn for scroll, resize and layout changes.
func (e *Engine) OnViewport(fn func(ViewportEvent)) CallbackHandle {
	return e.viewportHandlers.add(fn)
}

// OnPointerMove registers fn for every pointer move.
func (e *Engine) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return e.moveHandlers.add(fn)
}

// OnPointerDown registers fn for primary button presses.
func (e *Engine) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return e.downHandlers.add(fn)
}

// OnPointerUp registers fn for primary button releases.
func (e *Engine) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return e.upHandlers.add(fn)
}

// OnDragStart registers fn for when a press on a draggable region travels
// past the drag dead zone.
func (e *Engine) OnDragStart(fn func(DragContext)) CallbackHandle {
	return e.dragStart.add(fn)
}

// OnDrag registers fn for every pointer move while dragging.
func (e *Engine) OnDrag(fn func(DragContext)) CallbackHandle {
	return e.drag.add(fn)
}

// OnDragEnd registers fn for the release that ends a drag.
func (e *Engine) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return e.dragEnd.add(fn)
}

// OnFrame registers fn to run once per Update after all events are applied.
func (e *Engine) OnFrame(fn func(dt float64)) CallbackHandle {
	return e.frameHandlers.add(fn)
}

// --- Frame ---

// Update runs one frame: queued input is applied and dispatched first, then
// frame callbacks run with dt in seconds.
func (e *Engine) Update(dt float64) {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if e.script != nil {
		e.script.step(e)
	}
	e.stepScrollAnim(dt)
	e.processInjectedInput()
	e.drain()

	e.elapsed += dt
	e.frameHandlers.each(func(fn func(float64)) { fn(dt) })
	e.frame++

	if e.debug {
		e.stats.record(e, time.Since(t0))
	}
}

func (e *Engine) drain() {
	// Handlers may queue new events; those belong to the next frame.
	n := len(e.queue)
	for i := 0; i < n; i++ {
		e.apply(e.queue[i])
	}
	rest := copy(e.queue, e.queue[n:])
	for i := rest; i < len(e.queue); i++ {
		e.queue[i] = hostEvent{}
	}
	e.queue = e.queue[:rest]
}

func (e *Engine) apply(ev hostEvent) {
	switch ev.kind {
	case hostScroll:
		y := ev.y
		if ev.relative {
			y += e.viewport.Y
		}
		e.viewport.Y = e.clampScroll(y)
		e.emitViewport(ViewportEvent{Type: ViewportScroll})
	case hostResize:
		e.viewport.Width = math.Max(ev.x, 0)
		e.viewport.Height = math.Max(ev.y, 0)
		e.viewport.Y = e.clampScroll(e.viewport.Y)
		e.emitViewport(ViewportEvent{Type: ViewportResize})
	case hostLayout:
		if ev.region.removed {
			log.Debug("discarding layout for removed region", zap.String("region", ev.region.Name))
			return
		}
		ev.region.bounds = ev.bounds
		e.emitViewport(ViewportEvent{Type: ViewportLayout, Region: ev.region})
	case hostPointerMove:
		e.processPointer(ev.x, ev.y, e.pointer.down)
	case hostPointerDown:
		e.processPointer(ev.x, ev.y, true)
	case hostPointerUp:
		e.processPointer(ev.x, ev.y, false)
	}
}

func (e *Engine) emitViewport(ev ViewportEvent) {
	ev.Viewport = e.viewport
	e.viewportHandlers.each(func(fn func(ViewportEvent)) { fn(ev) })
}

func (e *Engine) clampScroll(y float64) float64 {
	if y < 0 {
		return 0
	}
	if e.docHeight > 0 {
		if limit := e.docHeight - e.viewport.Height; y > limit {
			return math.Max(limit, 0)
		}
	}
	return y
}

// processPointer runs the pointer state machine for the primary pointer.
func (e *Engine) processPointer(x, y float64, pressed bool) {
	ps := &e.pointer
	moved := !ps.seen || x != ps.lastX || y != ps.lastY
	ps.seen = true

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.hit = e.hitTest(x, y)
		ps.dragging = false
		ps.lastX, ps.lastY = x, y
		ctx := PointerContext{X: x, Y: y}
		e.downHandlers.each(func(fn func(PointerContext)) { fn(ctx) })
		if moved {
			e.moveHandlers.each(func(fn func(PointerContext)) { fn(ctx) })
		}
	case !pressed && ps.down:
		if ps.dragging {
			e.fireDrag(&e.dragEnd, x, y, x-ps.lastX, y-ps.lastY)
		}
		ps.down = false
		ps.dragging = false
		ps.hit = nil
		ps.lastX, ps.lastY = x, y
		ctx := PointerContext{X: x, Y: y}
		e.upHandlers.each(func(fn func(PointerContext)) { fn(ctx) })
	default:
		if !moved {
			return
		}
		if pressed && ps.hit != nil {
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > e.dragDeadZone {
					ps.dragging = true
					e.fireDrag(&e.dragStart, x, y, 0, 0)
				}
			}
			if ps.dragging {
				e.fireDrag(&e.drag, x, y, x-ps.lastX, y-ps.lastY)
			}
		}
		ps.lastX, ps.lastY = x, y
		ctx := PointerContext{X: x, Y: y}
		e.moveHandlers.each(func(fn func(PointerContext)) { fn(ctx) })
	}
}

func (e *Engine) fireDrag(list *callbackList[func(DragContext)], x, y, dx, dy float64) {
	ps := &e.pointer
	if ps.hit != nil && ps.hit.removed {
		return
	}
	ctx := DragContext{
		Region: ps.hit,
		X:      x, Y: y,
		StartX: ps.startX, StartY: ps.startY,
		DeltaX: dx, DeltaY: dy,
	}
	list.each(func(fn func(DragContext)) { fn(ctx) })
}

// hitTest returns the most recently created draggable region containing the
// window-space point, or nil.
func (e *Engine) hitTest(x, y float64) *Region {
	for i := len(e.regions) - 1; i >= 0; i-- {
		r := e.regions[i]
		if r.Draggable && !r.removed && r.ScreenBounds().Contains(x, y) {
			return r
		}
	}
	return nil
}

// --- Regions ---

// Region is a rectangle of the document that components mount onto.
// Bounds are in document space (Y grows down the page).
type Region struct {
	Name string
	// Draggable regions receive drag events when pressed.
	Draggable bool

	engine   *Engine
	bounds   Rect
	removed  bool
	onRemove []removeHook
	hookID   uint32
}

type removeHook struct {
	id uint32
	fn func()
}

// NewRegion adds a region with the given document-space bounds.
// A zero Rect is valid and models an element that has not been laid out yet.
func (e *Engine) NewRegion(name string, bounds Rect) *Region {
	r := &Region{Name: name, engine: e, bounds: bounds}
	e.regions = append(e.regions, r)
	return r
}

// Engine returns the engine that owns r.
func (r *Region) Engine() *Engine {
	return r.engine
}

// Bounds returns the document-space bounds.
func (r *Region) Bounds() Rect {
	return r.bounds
}

// ScreenBounds returns the bounds relative to the current viewport.
func (r *Region) ScreenBounds() Rect {
	vp := r.engine.viewport
	return r.bounds.Offset(-vp.X, -vp.Y)
}

// SetBounds queues a layout change. It is applied with the next frame's input.
func (r *Region) SetBounds(b Rect) {
	if r.removed {
		return
	}
	r.engine.queue = append(r.engine.queue, hostEvent{kind: hostLayout, bounds: b, region: r})
}

// OnRemove registers fn to run when the region is removed. If the region is
// already removed fn runs immediately. The returned function unregisters fn.
func (r *Region) OnRemove(fn func()) (cancel func()) {
	if r.removed {
		fn()
		return func() {}
	}
	r.hookID++
	id := r.hookID
	r.onRemove = append(r.onRemove, removeHook{id: id, fn: fn})
	return func() {
		for i, h := range r.onRemove {
			if h.id == id {
				r.onRemove = append(r.onRemove[:i], r.onRemove[i+1:]...)
				return
			}
		}
	}
}

// Removed reports whether Remove has been called.
func (r *Region) Removed() bool {
	return r.removed
}

// Remove detaches the region from the document and runs its OnRemove
// functions in reverse registration order. Safe to call more than once.
func (r *Region) Remove() {
	if r.removed {
		return
	}
	r.removed = true
	e := r.engine
	for i, other := range e.regions {
		if other == r {
			copy(e.regions[i:], e.regions[i+1:])
			e.regions[len(e.regions)-1] = nil
			e.regions = e.regions[:len(e.regions)-1]
			break
		}
	}
	if e.pointer.hit == r {
		e.pointer.hit = nil
		e.pointer.dragging = false
	}
	hooks := r.onRemove
	r.onRemove = nil
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i].fn()
	}
}
