package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/kinetic"
	"github.com/phanxgames/kinetic/internal/config"
)

const (
	phrase = "We design and build websites that move with intent, " +
		"turning every scroll into a story your visitors remember."
	detail = "We work directly with founders and growth teams. Every decision " +
		"is measured against clarity, performance and outcomes."
	quoteText = "MOTION IS MEANING  MOTION IS MEANING  MOTION IS MEANING"

	sectionGap = 80.0
	cardCount  = 4
	serviceCnt = 6
	viewBoxW   = 1000.0
	viewBoxH   = 600.0
)

var (
	accent = kinetic.MustParseHexColor("#46cef6")
	muted  = kinetic.Color{R: 0.35, G: 0.35, B: 0.35, A: 1}
	panel  = kinetic.Color{R: 0.08, G: 0.08, B: 0.09, A: 1}
)

var (
	serviceNames = [serviceCnt]string{"Web Design", "Development", "Branding", "SEO", "Motion", "Strategy"}
	stepNames    = [6]string{"Discovery", "Architecture", "Development", "Quality Check", "Deployment", "Evolution"}
	cardNames    = [cardCount]string{"Research", "Concept", "Craft", "Launch"}
	manifesto    = [4]string{
		"We don't build websites.",
		"We design digital leverage.",
		"Every choice is deliberate.",
		"Every result is accountable.",
	}
)

const lineHeight = 44.0

// page owns every region and effect of the demo document.
type page struct {
	engine *kinetic.Engine
	height float64

	hero     *kinetic.Region
	tunnel   *kinetic.Governor
	heading  *kinetic.Reveal
	about    *kinetic.Region
	words    []string
	phrase   *kinetic.PhraseReveal
	details  []string
	detail   *kinetic.PhraseReveal
	mani     *kinetic.Region
	lines    *kinetic.LineReveal
	visual   *kinetic.Reveal
	cards    *kinetic.Region
	stack    *kinetic.CardStack
	services *kinetic.Region
	carousel *kinetic.Carousel
	process  *kinetic.Region
	path     *kinetic.PathProgress
	timeline *kinetic.Timeline
	steps    *kinetic.CardStack
	quote    *kinetic.Region
	drift    *kinetic.ScrollProgress
	cta      *kinetic.Region
	cursor   *kinetic.CursorFollower

	drawn []kinetic.Vec2
}

func buildPage(e *kinetic.Engine, cfg *config.Config) (*page, error) {
	vp := e.Viewport()
	w, h := vp.Width, vp.Height
	p := &page{engine: e, words: strings.Fields(phrase), details: strings.Fields(detail)}

	y := 0.0
	next := func(name string, height float64) *kinetic.Region {
		r := e.NewRegion(name, kinetic.Rect{Y: y, Width: w, Height: height})
		y += height + sectionGap
		return r
	}

	p.hero = next("hero", h)
	gate := kinetic.NewVisibilityGate(p.hero, cfg.Gate)
	hero := p.hero
	tunnelCfg := cfg.Tunnel
	p.tunnel = kinetic.Govern(gate, func() kinetic.Subsystem {
		return kinetic.StartTunnel(hero, tunnelCfg, kinetic.NewEbitenSurface)
	})

	p.about = next("about", 560)
	p.heading = kinetic.FadeIn(p.about, 0)
	aboutProgress := kinetic.NewScrollProgress(p.about, kinetic.PhraseStart, kinetic.PhraseEnd)
	p.phrase = kinetic.NewPhraseRevealRange(aboutProgress, len(p.words), 0, kinetic.DescriptionSplit, nil)
	p.detail = kinetic.NewPhraseRevealRange(aboutProgress, len(p.details), kinetic.DescriptionSplit, 1, nil)

	p.mani = next("manifesto", 520)
	p.lines = kinetic.NewLineReveal(p.mani, len(manifesto), lineHeight)
	p.visual = kinetic.ImageReveal(p.mani, 0)

	p.cards = next("cards", 3*h)
	stackProgress := kinetic.NewScrollProgress(p.cards, kinetic.OffsetStartStart, kinetic.OffsetEndEnd)
	p.stack = kinetic.NewCardStack(stackProgress.Progress(), cardCount, nil)
	kinetic.Mount(p.cards, p.stack)

	p.services = next("services", 420)
	p.carousel = kinetic.NewCarousel(p.services, cfg.Carousel, serviceCnt)

	p.process = next("process", 900)
	path, err := kinetic.ParsePath(cfg.Timeline.Path)
	if err != nil {
		return nil, err
	}
	processProgress := kinetic.NewScrollProgress(p.process,
		kinetic.Offset{Target: 0, Viewport: 0.5}, kinetic.OffsetEndEnd)
	p.path = kinetic.NewPathProgress(e, path, processProgress.Progress(), kinetic.Mapping{}, cfg.Spring)
	layout := kinetic.TimelineWide
	if cfg.Timeline.Compact {
		layout = kinetic.TimelineCompact
	}
	p.timeline = kinetic.NewTimeline(p.path.Drawn(), len(stepNames), layout, cfg.Timeline.Divisor)
	p.steps = kinetic.NewProcessGrid(processProgress.Progress(), len(stepNames), nil)
	kinetic.Mount(p.process, p.path)
	kinetic.Mount(p.process, p.timeline)
	kinetic.Mount(p.process, p.steps)

	p.quote = next("quote", 360)
	p.drift = kinetic.NewScrollProgress(p.quote, kinetic.OffsetStartEnd, kinetic.OffsetEndStart)

	p.cta = next("cta", 520)
	p.cursor = kinetic.NewCursorFollower(e, cfg.Cursor)
	kinetic.Mount(p.cta, p.cursor)

	p.height = y - sectionGap
	e.SetDocumentHeight(p.height)

	// Regions span the window; follow its width.
	regions := []*kinetic.Region{p.hero, p.about, p.mani, p.cards, p.services, p.process, p.quote, p.cta}
	e.OnViewport(func(ev kinetic.ViewportEvent) {
		if ev.Type != kinetic.ViewportResize {
			return
		}
		for _, r := range regions {
			b := r.Bounds()
			if b.Width != ev.Viewport.Width {
				b.Width = ev.Viewport.Width
				r.SetBounds(b)
			}
		}
	})
	return p, nil
}

func (p *page) draw(screen *ebiten.Image) {
	p.drawHero(screen)
	p.drawAbout(screen)
	p.drawManifesto(screen)
	p.drawCards(screen)
	p.drawServices(screen)
	p.drawProcess(screen)
	p.drawQuote(screen)
	p.drawCTA(screen)
}

func visible(r *kinetic.Region, vpHeight float64) (kinetic.Rect, bool) {
	sb := r.ScreenBounds()
	return sb, sb.Y+sb.Height >= 0 && sb.Y <= vpHeight
}

func (p *page) drawHero(screen *ebiten.Image) {
	sb, ok := visible(p.hero, p.engine.Viewport().Height)
	if !ok {
		return
	}
	if t, ok := p.tunnel.Current().(*kinetic.Tunnel); ok {
		if s, ok := t.Surface().(*kinetic.EbitenSurface); ok {
			s.Draw(screen, sb.X, sb.Y)
		}
	}
	ebitenutil.DebugPrintAt(screen, "DIGITAL EXPERIENCES IN MOTION", int(sb.X+48), int(sb.Y+sb.Height/2))
}

func (p *page) drawAbout(screen *ebiten.Image) {
	sb, ok := visible(p.about, p.engine.Viewport().Height)
	if !ok {
		return
	}
	hs := p.heading.Style().Get()
	fillRect(screen, kinetic.Rect{X: sb.X + 48, Y: sb.Y + 40 + hs.Y, Width: 240, Height: 4}, accent.WithAlpha(hs.Opacity))
	ebitenutil.DebugPrintAt(screen, "ABOUT", int(sb.X+48), int(sb.Y+16+hs.Y))

	y := drawWords(screen, p.words, p.phrase, sb, sb.Y+80)
	drawWords(screen, p.details, p.detail, sb, y+60)
}

// drawWords flows words left to right from top, one box per word with its
// brightness tracking opacity, and returns the y of the last row.
func drawWords(screen *ebiten.Image, words []string, pr *kinetic.PhraseReveal, sb kinetic.Rect, top float64) float64 {
	x, y := sb.X+48, top
	for i, word := range words {
		ww := float64(len(word))*7 + 10
		if x+ww > sb.X+sb.Width-48 {
			x, y = sb.X+48, y+34
		}
		st := pr.Style(i)
		fillRect(screen, kinetic.Rect{X: x, Y: y + st.Y, Width: ww - 6, Height: 22}, kinetic.ColorWhite.WithAlpha(st.Opacity*0.25))
		ebitenutil.DebugPrintAt(screen, word, int(x+2), int(y+st.Y+4))
		x += ww
	}
	return y
}

func (p *page) drawManifesto(screen *ebiten.Image) {
	sb, ok := visible(p.mani, p.engine.Viewport().Height)
	if !ok {
		return
	}
	ebitenutil.DebugPrintAt(screen, "THE MANIFESTO", int(sb.X+48), int(sb.Y+16))
	for i, line := range manifesto {
		// A line fades in as it rises the 120% of its height it starts below.
		st := p.lines.Style(i)
		row := sb.Y + 56 + float64(i)*(lineHeight+8)
		shown := 1 - st.Y/(1.2*lineHeight)
		fillRect(screen, kinetic.Rect{X: sb.X + 48, Y: row + st.Y, Width: float64(len(line))*7 + 24, Height: lineHeight},
			panel.Lerp(accent, 0.15).WithAlpha(shown))
		ebitenutil.DebugPrintAt(screen, line, int(sb.X+60), int(row+st.Y+lineHeight/2-6))
	}

	vs := p.visual.Style().Get()
	frame := kinetic.Rect{X: sb.X + 48, Y: sb.Y + sb.Height - 140, Width: 320, Height: 120}
	fillRect(screen, scaleAround(frame, vs.Scale), accent.WithAlpha(0.3*vs.Opacity))
}

func (p *page) drawCards(screen *ebiten.Image) {
	sb, ok := visible(p.cards, p.engine.Viewport().Height)
	if !ok {
		return
	}
	vh := p.engine.Viewport().Height
	cw, ch := sb.Width*0.6, vh*0.55
	for i := 0; i < p.stack.Len(); i++ {
		st := p.stack.Style(i)
		// Cards stick to the top of the viewport while their container scrolls.
		top := max(sb.Y, 0) + 80 + float64(i)*24
		top = min(top, sb.Y+sb.Height-ch)
		r := kinetic.Rect{X: sb.X + (sb.Width-cw)/2, Y: top + st.Y, Width: cw, Height: ch}
		r = scaleAround(r, st.Scale)
		fillRect(screen, r, panel.Lerp(accent, 0.08*float64(i)).WithAlpha(st.Opacity))
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%02d  %s", i+1, cardNames[i]), int(r.X+24), int(r.Y+24))
	}
}

func (p *page) drawServices(screen *ebiten.Image) {
	sb, ok := visible(p.services, p.engine.Viewport().Height)
	if !ok {
		return
	}
	ebitenutil.DebugPrintAt(screen, "SERVICES  (drag)", int(sb.X+48), int(sb.Y))
	for i := 0; i < serviceCnt; i++ {
		r := p.carousel.ItemRect(i)
		r.Y += 40
		r.Height -= 40
		c := panel
		if p.carousel.Dragging() {
			c = panel.Lerp(accent, 0.1)
		}
		fillRect(screen, r, c)
		ebitenutil.DebugPrintAt(screen, serviceNames[i], int(r.X+20), int(r.Y+20))
	}
}

func (p *page) drawProcess(screen *ebiten.Image) {
	sb, ok := visible(p.process, p.engine.Viewport().Height)
	if !ok {
		return
	}
	scale := min(sb.Width/viewBoxW, sb.Height/viewBoxH)
	ox := sb.X + (sb.Width-viewBoxW*scale)/2
	oy := sb.Y + (sb.Height-viewBoxH*scale)/2
	toScreen := func(v kinetic.Vec2) (float32, float32) {
		return float32(ox + v.X*scale), float32(oy + v.Y*scale)
	}

	path := p.path.Path()
	strokePolyline(screen, path.Points(), toScreen, muted.WithAlpha(0.4))
	p.drawn = path.Drawn(p.path.Drawn().Get(), p.drawn)
	strokePolyline(screen, p.drawn, toScreen, accent)

	mx, my := toScreen(p.path.Marker().Get())
	fillRect(screen, kinetic.Rect{X: float64(mx) - 6, Y: float64(my) - 6, Width: 12, Height: 12}, accent)

	for i := 0; i < p.timeline.Len(); i++ {
		// Steps sit evenly along the path at their activation thresholds.
		sx, sy := toScreen(path.PointAt(p.timeline.Threshold(i)))
		c := muted
		if p.timeline.Active(i).Get() {
			c = kinetic.ColorWhite
		}
		fillRect(screen, kinetic.Rect{X: float64(sx) - 4, Y: float64(sy) - 4, Width: 8, Height: 8}, c)
		ebitenutil.DebugPrintAt(screen, stepNames[i], int(sx)-30, int(sy)+12)
	}

	// Step cards along the bottom edge light up as the section scrolls.
	cw := (sb.Width - 96) / float64(p.steps.Len())
	for i := 0; i < p.steps.Len(); i++ {
		st := p.steps.Style(i)
		r := kinetic.Rect{X: sb.X + 48 + float64(i)*cw, Y: sb.Y + sb.Height - 90 + st.Y, Width: cw - 12, Height: 70}
		fillRect(screen, r, panel.Lerp(accent, st.Glow).WithAlpha(st.Opacity))
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%02d", i+1), int(r.X+10), int(r.Y+10))
	}
}

func (p *page) drawQuote(screen *ebiten.Image) {
	sb, ok := visible(p.quote, p.engine.Viewport().Height)
	if !ok {
		return
	}
	progress := p.drift.Value()
	for row, dir := range []kinetic.DriftDirection{kinetic.DriftRight, kinetic.DriftLeft} {
		x, opacity := kinetic.QuoteDrift(dir, progress, sb.Width)
		y := sb.Y + 80 + float64(row)*120
		fillRect(screen, kinetic.Rect{X: sb.X + x, Y: y, Width: sb.Width * 1.4, Height: 60}, kinetic.ColorWhite.WithAlpha(opacity))
		ebitenutil.DebugPrintAt(screen, quoteText, int(sb.X+x+20), int(y+24))
	}
}

func (p *page) drawCTA(screen *ebiten.Image) {
	sb, ok := visible(p.cta, p.engine.Viewport().Height)
	if !ok {
		return
	}
	fillRect(screen, sb, panel)
	c := p.cursor.Position().Get()
	if sb.Contains(c.X, c.Y) {
		// Concentric squares stand in for the radial spotlight.
		for i := 4; i >= 1; i-- {
			r := float64(i) * 40
			fillRect(screen, kinetic.Rect{X: c.X - r, Y: c.Y - r, Width: 2 * r, Height: 2 * r}, accent.WithAlpha(0.05))
		}
	}
	ebitenutil.DebugPrintAt(screen, "LET'S BUILD SOMETHING", int(sb.X+48), int(sb.Y+sb.Height/2))
}

var whitePixel *ebiten.Image

func fillRect(dst *ebiten.Image, r kinetic.Rect, c kinetic.Color) {
	if r.Empty() || c.A <= 0 {
		return
	}
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(colorOf(kinetic.ColorWhite))
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
	op.ColorScale.ScaleAlpha(float32(c.A))
	dst.DrawImage(whitePixel, &op)
}

func strokePolyline(dst *ebiten.Image, pts []kinetic.Vec2, toScreen func(kinetic.Vec2) (float32, float32), c kinetic.Color) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := toScreen(pts[i-1])
		x1, y1 := toScreen(pts[i])
		vector.StrokeLine(dst, x0, y0, x1, y1, 3, colorOf(c), true)
	}
}

func scaleAround(r kinetic.Rect, s float64) kinetic.Rect {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	w, h := r.Width*s, r.Height*s
	return kinetic.Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}
