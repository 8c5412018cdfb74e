package kinetic

import "testing"

func TestScrollClampsToDocument(t *testing.T) {
	e := NewEngine(800, 600)
	e.SetDocumentHeight(2000)

	e.Scroll(5000)
	e.Update(1.0 / 60)
	if got := e.Viewport().Y; got != 1400 {
		t.Errorf("Y = %v, want 1400", got)
	}

	e.ScrollBy(-2000)
	e.Update(1.0 / 60)
	if got := e.Viewport().Y; got != 0 {
		t.Errorf("Y = %v, want 0", got)
	}
}

func TestInputAppliedBeforeFrame(t *testing.T) {
	e := NewEngine(800, 600)
	var seen []float64
	e.OnFrame(func(float64) { seen = append(seen, e.Viewport().Y) })

	e.Scroll(100)
	if e.Viewport().Y != 0 {
		t.Fatal("input applied before Update")
	}
	e.Update(1.0 / 60)
	if len(seen) != 1 || seen[0] != 100 {
		t.Errorf("frame saw %v, want [100]", seen)
	}
}

func TestEventsQueuedByHandlersWaitForNextFrame(t *testing.T) {
	e := NewEngine(800, 600)
	var scrolls int
	e.OnViewport(func(ev ViewportEvent) {
		if ev.Type != ViewportScroll {
			return
		}
		scrolls++
		if scrolls == 1 {
			e.Scroll(200)
		}
	})

	e.Scroll(100)
	e.Update(1.0 / 60)
	if scrolls != 1 || e.Viewport().Y != 100 {
		t.Fatalf("after frame 1: scrolls = %d, Y = %v", scrolls, e.Viewport().Y)
	}
	e.Update(1.0 / 60)
	if scrolls != 2 || e.Viewport().Y != 200 {
		t.Errorf("after frame 2: scrolls = %d, Y = %v", scrolls, e.Viewport().Y)
	}
}

func TestUpdateClampsNegativeDt(t *testing.T) {
	e := NewEngine(800, 600)
	var got float64 = -1
	e.OnFrame(func(dt float64) { got = dt })
	e.Update(-0.5)
	if got != 0 {
		t.Errorf("dt = %v, want 0", got)
	}
	if e.Elapsed() != 0 || e.Frame() != 1 {
		t.Errorf("Elapsed = %v, Frame = %d", e.Elapsed(), e.Frame())
	}
}

func TestDragDeadZone(t *testing.T) {
	e := NewEngine(800, 600)
	r := e.NewRegion("track", Rect{X: 0, Y: 0, Width: 200, Height: 100})
	r.Draggable = true

	var events []string
	var last DragContext
	e.OnDragStart(func(DragContext) { events = append(events, "start") })
	e.OnDrag(func(ctx DragContext) { events = append(events, "drag"); last = ctx })
	e.OnDragEnd(func(DragContext) { events = append(events, "end") })

	e.PointerDown(10, 10)
	e.PointerMove(12, 10)
	e.Update(1.0 / 60)
	if len(events) != 0 {
		t.Fatalf("events inside dead zone = %v", events)
	}

	e.PointerMove(30, 10)
	e.PointerUp(30, 10)
	e.Update(1.0 / 60)
	want := []string{"start", "drag", "end"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
	if last.Region != r || last.StartX != 10 || last.DeltaX != 18 {
		t.Errorf("drag ctx = %+v", last)
	}
}

func TestDragIgnoresNonDraggableRegion(t *testing.T) {
	e := NewEngine(800, 600)
	e.NewRegion("static", Rect{Width: 200, Height: 100})
	dragged := false
	e.OnDragStart(func(DragContext) { dragged = true })

	e.PointerDown(10, 10)
	e.PointerMove(100, 10)
	e.PointerUp(100, 10)
	e.Update(1.0 / 60)
	if dragged {
		t.Error("drag started on a non-draggable region")
	}
}

func TestHitTestUsesScreenBounds(t *testing.T) {
	e := NewEngine(800, 600)
	r := e.NewRegion("below", Rect{Y: 1000, Width: 200, Height: 100})
	r.Draggable = true
	e.Scroll(950)
	e.Update(1.0 / 60)

	var hit *Region
	e.OnDragStart(func(ctx DragContext) { hit = ctx.Region })
	e.PointerDown(10, 60)
	e.PointerMove(50, 60)
	e.Update(1.0 / 60)
	if hit != r {
		t.Errorf("hit = %v, want region scrolled into view", hit)
	}
}

func TestRegionRemoveHooks(t *testing.T) {
	e := NewEngine(800, 600)
	r := e.NewRegion("r", Rect{Width: 10, Height: 10})

	var order []int
	r.OnRemove(func() { order = append(order, 1) })
	cancel := r.OnRemove(func() { order = append(order, 2) })
	r.OnRemove(func() { order = append(order, 3) })
	cancel()

	r.Remove()
	r.Remove()
	if len(order) != 2 || order[0] != 3 || order[1] != 1 {
		t.Errorf("hook order = %v, want [3 1]", order)
	}
	if !r.Removed() {
		t.Error("Removed() = false")
	}

	late := false
	r.OnRemove(func() { late = true })
	if !late {
		t.Error("hook registered after removal did not run immediately")
	}
}

func TestLayoutForRemovedRegionDiscarded(t *testing.T) {
	e := NewEngine(800, 600)
	r := e.NewRegion("r", Rect{Width: 10, Height: 10})
	layouts := 0
	e.OnViewport(func(ev ViewportEvent) {
		if ev.Type == ViewportLayout {
			layouts++
		}
	})

	r.SetBounds(Rect{Width: 50, Height: 50})
	r.Remove()
	r.SetBounds(Rect{Width: 70, Height: 70})
	e.Update(1.0 / 60)
	if layouts != 0 {
		t.Errorf("layouts = %d, want 0", layouts)
	}
	if r.Bounds().Width != 10 {
		t.Errorf("bounds changed after removal: %+v", r.Bounds())
	}
}

func TestPointerNormalized(t *testing.T) {
	e := NewEngine(800, 600)
	sig := e.PointerNormalized()
	if sig.Attached() {
		t.Fatal("pointer listener attached without subscribers")
	}
	var got Vec2
	sub := sig.Subscribe(func(v Vec2) { got = v })
	if sig.Get() != (Vec2{}) {
		t.Errorf("before any pointer input = %v, want window center", sig.Get())
	}

	e.PointerMove(400, 300)
	e.Update(1.0 / 60)
	if !approxEqual(got.X, 0, epsilon) || !approxEqual(got.Y, 0, epsilon) {
		t.Errorf("center = %v, want (0, 0)", got)
	}

	e.PointerMove(0, 0)
	e.Update(1.0 / 60)
	if got != (Vec2{X: -1, Y: 1}) {
		t.Errorf("top-left = %v, want (-1, 1)", got)
	}

	// Resizing renormalizes the last position.
	e.PointerMove(400, 300)
	e.Resize(400, 300)
	e.Update(1.0 / 60)
	if got != (Vec2{X: 1, Y: -1}) {
		t.Errorf("after resize = %v, want (1, -1)", got)
	}

	sub.Remove()
	if sig.Attached() {
		t.Error("pointer listener still attached")
	}
	if n := e.moveHandlers.count(); n != 0 {
		t.Errorf("move handlers = %d, want 0", n)
	}
}

func TestClockSignal(t *testing.T) {
	e := NewEngine(800, 600)
	var now float64
	sub := e.Clock().Subscribe(func(v float64) { now = v })
	defer sub.Remove()

	e.Update(0.25)
	e.Update(0.25)
	if now != 0.5 {
		t.Errorf("clock = %v, want 0.5", now)
	}
}
