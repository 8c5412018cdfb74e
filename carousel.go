package kinetic

// CarouselConfig describes a horizontal track of fixed-width items.
type CarouselConfig struct {
	ItemWidthPx float64 `yaml:"item_width_px"`
	GapPx       float64 `yaml:"gap_px"`
	// PaddingPx is the inset before the first and after the last item.
	PaddingPx float64 `yaml:"padding_px"`
}

// DefaultCarouselConfig matches the service cards of the demo page.
var DefaultCarouselConfig = CarouselConfig{ItemWidthPx: 400, GapPx: 32, PaddingPx: 32}

func (c CarouselConfig) withDefaults() CarouselConfig {
	if c.ItemWidthPx <= 0 {
		c.ItemWidthPx = DefaultCarouselConfig.ItemWidthPx
	}
	if c.GapPx < 0 {
		c.GapPx = 0
	}
	if c.PaddingPx < 0 {
		c.PaddingPx = 0
	}
	return c
}

// TrackWidth returns the full scrollable width of n items.
func (c CarouselConfig) TrackWidth(n int) float64 {
	if n <= 0 {
		return 2 * c.PaddingPx
	}
	return 2*c.PaddingPx + float64(n)*c.ItemWidthPx + float64(n-1)*c.GapPx
}

// Carousel translates a track of items horizontally under pointer drags.
// The offset is confined to [-MaxDrag, 0]; it stays where the drag leaves it.
type Carousel struct {
	region *Region
	cfg    CarouselConfig
	items  int

	maxDrag float64
	offset  *Signal[float64]

	dragging   bool
	dragOrigin float64

	handles []CallbackHandle
	stopped bool
}

// NewCarousel mounts a carousel of items on r. r's width is the visible
// viewport of the track; MaxDrag is recomputed whenever it changes.
func NewCarousel(r *Region, cfg CarouselConfig, items int) *Carousel {
	c := &Carousel{
		region: r,
		cfg:    cfg.withDefaults(),
		items:  items,
		offset: NewSignal(0.0),
	}
	e := r.engine
	c.handles = append(c.handles,
		e.OnViewport(func(ev ViewportEvent) {
			if ev.Type == ViewportScroll || (ev.Type == ViewportLayout && ev.Region != r) {
				return
			}
			c.relayout()
		}),
		e.OnDragStart(func(ctx DragContext) {
			if ctx.Region != r || c.maxDrag <= 0 {
				return
			}
			c.dragging = true
			c.dragOrigin = c.offset.Get()
		}),
		e.OnDrag(func(ctx DragContext) {
			if ctx.Region != r || !c.dragging {
				return
			}
			c.offset.Set(c.Clamp(c.dragOrigin + ctx.X - ctx.StartX))
		}),
		e.OnDragEnd(func(ctx DragContext) {
			if ctx.Region != r {
				return
			}
			c.dragging = false
		}),
	)
	c.relayout()
	Mount(r, c)
	return c
}

func (c *Carousel) relayout() {
	c.maxDrag = MaxDrag(c.cfg.TrackWidth(c.items), c.region.bounds.Width)
	c.region.Draggable = c.maxDrag > 0
	c.offset.Set(c.Clamp(c.offset.Get()))
}

// MaxDrag returns how far a track of trackWidth can travel inside a viewport
// of viewportWidth. It is never negative.
func MaxDrag(trackWidth, viewportWidth float64) float64 {
	if viewportWidth <= 0 {
		return 0
	}
	if d := trackWidth - viewportWidth; d > 0 {
		return d
	}
	return 0
}

// Clamp confines x to [-MaxDrag, 0].
func (c *Carousel) Clamp(x float64) float64 {
	return clamp(x, -c.maxDrag, 0)
}

// MaxDrag returns the current drag bound.
func (c *Carousel) MaxDrag() float64 {
	return c.maxDrag
}

// Draggable reports whether the content overflows its viewport.
func (c *Carousel) Draggable() bool {
	return c.maxDrag > 0
}

// Offset returns the track translation signal, always within [-MaxDrag, 0].
func (c *Carousel) Offset() *Signal[float64] {
	return c.offset
}

// Dragging reports whether a drag gesture is in progress.
func (c *Carousel) Dragging() bool {
	return c.dragging
}

// ItemRect returns the screen-space rectangle of item i at the current offset.
func (c *Carousel) ItemRect(i int) Rect {
	sb := c.region.ScreenBounds()
	return Rect{
		X:      sb.X + c.cfg.PaddingPx + float64(i)*(c.cfg.ItemWidthPx+c.cfg.GapPx) + c.offset.Get(),
		Y:      sb.Y,
		Width:  c.cfg.ItemWidthPx,
		Height: sb.Height,
	}
}

// Stop releases the viewport and drag listeners.
func (c *Carousel) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.dragging = false
	for i := range c.handles {
		c.handles[i].Remove()
	}
	c.handles = nil
}
