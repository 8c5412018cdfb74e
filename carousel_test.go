package kinetic

import "testing"

func TestMaxDrag(t *testing.T) {
	tests := []struct {
		track, viewport, want float64
	}{
		{2624, 800, 1824},
		{500, 800, 0},
		{800, 800, 0},
		{2624, 0, 0},
	}
	for _, tt := range tests {
		if got := MaxDrag(tt.track, tt.viewport); got != tt.want {
			t.Errorf("MaxDrag(%v, %v) = %v, want %v", tt.track, tt.viewport, got, tt.want)
		}
	}
}

func TestCarouselTrackWidth(t *testing.T) {
	if got := DefaultCarouselConfig.TrackWidth(6); got != 2624 {
		t.Errorf("TrackWidth(6) = %v, want 2624", got)
	}
	if got := DefaultCarouselConfig.TrackWidth(0); got != 64 {
		t.Errorf("TrackWidth(0) = %v, want 64", got)
	}
}

func drag(e *Engine, fromX, toX, y float64) {
	e.PointerDown(fromX, y)
	e.Update(1.0 / 60)
	e.PointerMove(toX, y)
	e.Update(1.0 / 60)
	e.PointerUp(toX, y)
	e.Update(1.0 / 60)
}

func TestCarouselDragClamps(t *testing.T) {
	e := NewEngine(800, 600)
	r := e.NewRegion("services", Rect{Y: 0, Width: 800, Height: 400})
	c := NewCarousel(r, DefaultCarouselConfig, 6)
	if !c.Draggable() || !r.Draggable {
		t.Fatal("overflowing carousel is not draggable")
	}
	maxDrag := c.MaxDrag()

	drag(e, 700, 700-300, 200)
	if got := c.Offset().Get(); got != -300 {
		t.Errorf("offset = %v, want -300", got)
	}

	// The next drag continues from where the last one left off.
	drag(e, 700, 700-2*maxDrag, 200)
	if got := c.Offset().Get(); got != -maxDrag {
		t.Errorf("offset = %v, want %v", got, -maxDrag)
	}

	drag(e, 100, 100+2*maxDrag, 200)
	if got := c.Offset().Get(); got != 0 {
		t.Errorf("offset = %v, want 0", got)
	}
	if c.Dragging() {
		t.Error("Dragging() after release")
	}
}

func TestCarouselFitsViewport(t *testing.T) {
	e := NewEngine(3000, 600)
	r := e.NewRegion("services", Rect{Width: 3000, Height: 400})
	c := NewCarousel(r, DefaultCarouselConfig, 6)
	if c.Draggable() || r.Draggable {
		t.Fatal("carousel that fits is draggable")
	}
	drag(e, 1000, 200, 200)
	if got := c.Offset().Get(); got != 0 {
		t.Errorf("offset = %v, want 0", got)
	}
}

func TestCarouselReclampsOnLayout(t *testing.T) {
	e := NewEngine(800, 600)
	r := e.NewRegion("services", Rect{Width: 800, Height: 400})
	c := NewCarousel(r, DefaultCarouselConfig, 6)
	drag(e, 700, -3000, 200)
	if c.Offset().Get() != -c.MaxDrag() {
		t.Fatalf("offset = %v, want %v", c.Offset().Get(), -c.MaxDrag())
	}

	r.SetBounds(Rect{Width: 2000, Height: 400})
	e.Update(1.0 / 60)
	if c.MaxDrag() != 624 {
		t.Errorf("MaxDrag = %v, want 624", c.MaxDrag())
	}
	if got := c.Offset().Get(); got != -624 {
		t.Errorf("offset = %v, want -624", got)
	}
}

func TestCarouselItemRect(t *testing.T) {
	e := NewEngine(800, 600)
	r := e.NewRegion("services", Rect{Y: 100, Width: 800, Height: 400})
	c := NewCarousel(r, DefaultCarouselConfig, 6)
	got := c.ItemRect(1)
	want := Rect{X: 464, Y: 100, Width: 400, Height: 400}
	if got != want {
		t.Errorf("ItemRect(1) = %+v, want %+v", got, want)
	}
}

func TestCarouselStop(t *testing.T) {
	e := NewEngine(800, 600)
	r := e.NewRegion("services", Rect{Width: 800, Height: 400})
	NewCarousel(r, DefaultCarouselConfig, 6)
	r.Remove()
	if e.dragStart.count()+e.drag.count()+e.dragEnd.count()+e.viewportHandlers.count() != 0 {
		t.Error("carousel handlers left after region removal")
	}
}
