package kinetic

import "testing"

func TestInjectedEventsOnePerFrame(t *testing.T) {
	e := NewEngine(800, 600)
	e.InjectScroll(100)
	e.InjectScroll(200)
	if n := e.PendingInjected(); n != 2 {
		t.Fatalf("PendingInjected = %d, want 2", n)
	}

	e.Update(1.0 / 60)
	if e.Viewport().Y != 100 || e.PendingInjected() != 1 {
		t.Fatalf("frame 1: Y = %v, pending = %d", e.Viewport().Y, e.PendingInjected())
	}
	e.Update(1.0 / 60)
	if e.Viewport().Y != 200 || e.PendingInjected() != 0 {
		t.Errorf("frame 2: Y = %v, pending = %d", e.Viewport().Y, e.PendingInjected())
	}
}

func TestInjectedEventPrecedesRealInput(t *testing.T) {
	e := NewEngine(800, 600)
	e.Scroll(50)
	e.InjectScroll(100)
	e.Update(1.0 / 60)
	if got := e.Viewport().Y; got != 50 {
		t.Errorf("Y = %v, want real input applied last (50)", got)
	}
}

func TestInjectDrag(t *testing.T) {
	e := NewEngine(800, 600)
	r := e.NewRegion("track", Rect{Width: 400, Height: 400})
	r.Draggable = true

	var events []string
	var lastX float64
	e.OnDragStart(func(DragContext) { events = append(events, "start") })
	e.OnDrag(func(ctx DragContext) { events = append(events, "drag"); lastX = ctx.X })
	e.OnDragEnd(func(ctx DragContext) { events = append(events, "end"); lastX = ctx.X })

	e.InjectDrag(10, 10, 200, 10, 5)
	if n := e.PendingInjected(); n != 6 {
		t.Fatalf("PendingInjected = %d, want 6", n)
	}
	for i := 0; i < 6; i++ {
		e.Update(1.0 / 60)
	}

	if len(events) == 0 || events[0] != "start" || events[len(events)-1] != "end" {
		t.Fatalf("events = %v", events)
	}
	drags := 0
	for _, ev := range events {
		if ev == "drag" {
			drags++
		}
	}
	if drags != 4 {
		t.Errorf("drag events = %d, want 4", drags)
	}
	if lastX != 200 {
		t.Errorf("final X = %v, want 200", lastX)
	}
}

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - action: scroll
    y: 300
  - action: wait
    frames: 2
  - action: screenshot
    label: after-scroll
`)
	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	e := NewEngine(800, 600)
	var shots []string
	e.SetScreenshotFunc(func(label string) { shots = append(shots, label) })
	e.SetScript(s)

	for i := 0; i < 10 && !s.Done(); i++ {
		e.Update(1.0 / 60)
	}
	if !s.Done() {
		t.Fatal("script did not finish")
	}
	if e.Viewport().Y != 300 {
		t.Errorf("Y = %v, want 300", e.Viewport().Y)
	}
	if len(shots) != 1 || shots[0] != "after-scroll" {
		t.Errorf("screenshots = %v", shots)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "steps: []"},
		{"unknown action", "steps:\n  - action: teleport"},
		{"malformed", "steps: [ {"},
	}
	for _, tt := range tests {
		if _, err := LoadScript([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestLoadScriptJSON(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [{"action": "resize", "width": 1024, "height": 768}]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	e := NewEngine(800, 600)
	e.SetScript(s)
	e.Update(1.0 / 60)
	if vp := e.Viewport(); vp.Width != 1024 || vp.Height != 768 {
		t.Errorf("viewport = %+v, want 1024x768", vp)
	}
}
