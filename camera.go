package kinetic

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim is an in-flight animated document scroll.
type scrollAnim struct {
	tween *gween.Tween
}

// ScrollTo animates the document scroll to y over duration seconds. Each
// frame's position is queued as a scroll event and drained with that frame's
// input, so derived signals update exactly as they would for a user scroll.
// A zero duration or nil easeFn jumps on the next frame. Direct calls to
// Scroll or ScrollBy cancel the animation.
func (e *Engine) ScrollTo(y, duration float64, easeFn ease.TweenFunc) {
	y = e.clampScroll(y)
	if duration <= 0 || easeFn == nil {
		e.scrollAnim = nil
		e.queue = append(e.queue, hostEvent{kind: hostScroll, y: y})
		return
	}
	e.scrollAnim = &scrollAnim{
		tween: gween.New(float32(e.viewport.Y), float32(y), float32(duration), easeFn),
	}
}

// ScrollToRegion animates the scroll so r's top edge meets the top of the
// viewport, less offset pixels.
func (e *Engine) ScrollToRegion(r *Region, offset, duration float64, easeFn ease.TweenFunc) {
	if r.removed {
		return
	}
	e.ScrollTo(r.bounds.Y-offset, duration, easeFn)
}

// Scrolling reports whether an animated scroll is in flight.
func (e *Engine) Scrolling() bool {
	return e.scrollAnim != nil
}

// CancelScroll stops an animated scroll where it is.
func (e *Engine) CancelScroll() {
	e.scrollAnim = nil
}

func (e *Engine) stepScrollAnim(dt float64) {
	a := e.scrollAnim
	if a == nil || dt <= 0 {
		return
	}
	val, done := a.tween.Update(float32(dt))
	e.queue = append(e.queue, hostEvent{kind: hostScroll, y: float64(val)})
	if done {
		e.scrollAnim = nil
	}
}
