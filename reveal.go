package kinetic

import "github.com/tanema/gween/ease"

// RevealMargin is the root margin of entry reveals: the element must be 10%
// of the viewport height inside the fold before it plays.
var RevealMargin = GateConfig{MarginFraction: -0.1, OneShot: true}

// RevealTiming is when and how a one-shot reveal plays.
type RevealTiming struct {
	Gate     GateConfig
	Duration float64
	Ease     ease.TweenFunc
}

// Reveal timings.
var (
	// TimingDefault is the site-wide entry reveal.
	TimingDefault = RevealTiming{Gate: RevealMargin, Duration: RevealDuration, Ease: RevealEase}
	// TimingHeadline drives statement lines rising out of their masks.
	TimingHeadline = RevealTiming{
		Gate:     GateConfig{MarginFraction: -0.2, OneShot: true},
		Duration: 0.9,
		Ease:     CubicBezier(0.33, 1, 0.68, 1),
	}
	// TimingMedia is the slower settle of images and supporting copy.
	TimingMedia = RevealTiming{
		Gate:     GateConfig{OneShot: true},
		Duration: 1,
		Ease:     CubicBezier(0.22, 1, 0.36, 1),
	}
)

// Headline stagger: the first line waits LineDelay, each next one
// LineStagger more.
const (
	LineDelay   = 0.1
	LineStagger = 0.12
)

// Reveal plays a one-shot entry tween the first time its region scrolls into
// view. It never replays.
type Reveal struct {
	gate  *VisibilityGate
	style Style
	out   *Signal[Style]

	from   func() Style
	to     []StyleTarget
	delay  float64
	timing RevealTiming
	tween  *TweenGroup

	sub     Subscription
	frame   CallbackHandle
	stopped bool
}

// FadeIn fades r in from 20px below its resting position.
func FadeIn(r *Region, delay float64) *Reveal {
	return newReveal(r, TimingDefault, delay,
		func() Style { return Style{Opacity: 0, Y: 20, Scale: 1} },
		StyleTarget{Field: FieldOpacity, To: 1},
		StyleTarget{Field: FieldY, To: 0},
	)
}

// MaskedReveal slides r up from one full height below, as if from behind a
// mask at its bottom edge.
func MaskedReveal(r *Region, delay float64) *Reveal {
	return newReveal(r, TimingDefault, delay,
		func() Style { return Style{Opacity: 1, Y: r.bounds.Height, Scale: 1} },
		StyleTarget{Field: FieldY, To: 0},
	)
}

// ImageReveal fades r in while it settles from 96% to full scale.
func ImageReveal(r *Region, delay float64) *Reveal {
	return newReveal(r, TimingMedia, delay,
		func() Style { return Style{Opacity: 0, Scale: 0.96} },
		StyleTarget{Field: FieldOpacity, To: 1},
		StyleTarget{Field: FieldScale, To: 1},
	)
}

func newReveal(r *Region, timing RevealTiming, delay float64, from func() Style, to ...StyleTarget) *Reveal {
	if timing.Ease == nil {
		timing.Ease = RevealEase
	}
	rv := &Reveal{from: from, to: to, delay: delay, timing: timing}
	rv.style = from()
	rv.out = NewSignal(rv.style)
	rv.gate = NewVisibilityGate(r, timing.Gate)
	rv.sub = rv.gate.Active().Subscribe(func(active bool) {
		if active {
			rv.play()
		}
	})
	if rv.gate.IsActive() {
		rv.play()
	}
	Mount(r, rv)
	return rv
}

func (rv *Reveal) play() {
	if rv.tween != nil || rv.stopped {
		return
	}
	// Resolve the start from the layout at the moment of entry.
	rv.style = rv.from()
	rv.out.Set(rv.style)
	rv.tween = TweenStyle(&rv.style, float32(rv.timing.Duration), float32(rv.delay), rv.timing.Ease, rv.to...)
	rv.frame = rv.gate.region.engine.OnFrame(func(dt float64) {
		rv.tween.Update(float32(dt))
		rv.out.Set(rv.style)
		if rv.tween.Done {
			rv.frame.Remove()
		}
	})
}

// Style returns the reveal's style signal.
func (rv *Reveal) Style() *Signal[Style] {
	return rv.out
}

// Started reports whether the reveal has been triggered.
func (rv *Reveal) Started() bool {
	return rv.tween != nil
}

// Done reports whether the reveal has finished playing.
func (rv *Reveal) Done() bool {
	return rv.tween != nil && rv.tween.Done
}

// Stop cancels the reveal and its gate. The style keeps its last value.
func (rv *Reveal) Stop() {
	if rv.stopped {
		return
	}
	rv.stopped = true
	rv.sub.Remove()
	rv.frame.Remove()
	rv.gate.Stop()
}

// LineReveal raises the lines of a statement out of their masks one after
// another once the block is well inside the viewport. Each line starts
// 120% of its height down and the lines are staggered by LineStagger.
type LineReveal struct {
	lines []*Reveal
}

// NewLineReveal stacks lines lines of lineHeight pixels in r.
func NewLineReveal(r *Region, lines int, lineHeight float64) *LineReveal {
	lr := &LineReveal{lines: make([]*Reveal, lines)}
	for i := range lr.lines {
		lr.lines[i] = newReveal(r, TimingHeadline, LineDelay+float64(i)*LineStagger,
			func() Style { return Style{Opacity: 1, Y: 1.2 * lineHeight, Scale: 1} },
			StyleTarget{Field: FieldY, To: 0},
		)
	}
	return lr
}

// Style returns line i's current style.
func (lr *LineReveal) Style(i int) Style {
	return lr.lines[i].Style().Get()
}

// Len returns the number of lines.
func (lr *LineReveal) Len() int {
	return len(lr.lines)
}

// Started reports whether the block has entered the viewport.
func (lr *LineReveal) Started() bool {
	return len(lr.lines) > 0 && lr.lines[0].Started()
}

// Done reports whether every line has settled.
func (lr *LineReveal) Done() bool {
	for _, l := range lr.lines {
		if !l.Done() {
			return false
		}
	}
	return true
}

// Stop cancels every line.
func (lr *LineReveal) Stop() {
	for _, l := range lr.lines {
		l.Stop()
	}
}

// Phrase offsets: a paragraph starts revealing when its top passes 85% of
// the viewport and is done when its bottom reaches 60%.
var (
	PhraseStart = Offset{Target: 0, Viewport: 0.85}
	PhraseEnd   = Offset{Target: 1, Viewport: 0.6}
)

// WordStyle returns the style of a word whose window is w at progress p:
// opacity 0.55 -> 1 and Y 10 -> 0 across the window.
func WordStyle(w Window, p float64) Style {
	return Style{
		Opacity: Linear(w.Start, w.End, 0.55, 1).Evaluate(p),
		Y:       Linear(w.Start, w.End, 10, 0).Evaluate(p),
		Scale:   1,
	}
}

// DescriptionSplit is where a two-statement paragraph hands its scroll
// progress from the primary statement to the secondary one.
const DescriptionSplit = 0.45

// PhraseReveal lights up the words of a paragraph one after another as it
// scrolls through the viewport. Unlike Reveal it tracks scroll both ways.
type PhraseReveal struct {
	progress *ScrollProgress
	owned    bool
	windows  []Window
	styles   []Style
	onStyle  func(i int, s Style)
	sub      Subscription
	stopped  bool
}

// NewPhraseReveal splits r's scroll progress evenly over words words.
// onStyle, if non-nil, receives each word whose style changes.
func NewPhraseReveal(r *Region, words int, onStyle func(i int, s Style)) *PhraseReveal {
	pr := NewPhraseRevealRange(NewScrollProgress(r, PhraseStart, PhraseEnd), words, 0, 1, onStyle)
	pr.owned = true
	return pr
}

// NewPhraseRevealRange reveals words words over the [start, end] slice of
// progress, so several statements can share one paragraph's progress:
//
//	p := kinetic.NewScrollProgress(r, kinetic.PhraseStart, kinetic.PhraseEnd)
//	primary := kinetic.NewPhraseRevealRange(p, 12, 0, kinetic.DescriptionSplit, nil)
//	secondary := kinetic.NewPhraseRevealRange(p, 9, kinetic.DescriptionSplit, 1, nil)
//
// Stopping the reveal leaves progress running.
func NewPhraseRevealRange(progress *ScrollProgress, words int, start, end float64, onStyle func(i int, s Style)) *PhraseReveal {
	pr := &PhraseReveal{
		progress: progress,
		windows:  WordWindows(words, start, end),
		styles:   make([]Style, words),
		onStyle:  onStyle,
	}
	p := progress.Value()
	for i, w := range pr.windows {
		pr.styles[i] = WordStyle(w, p)
	}
	pr.sub = progress.Progress().Subscribe(pr.update)
	Mount(progress.region, pr)
	return pr
}

func (pr *PhraseReveal) update(p float64) {
	for i, w := range pr.windows {
		s := WordStyle(w, p)
		if s == pr.styles[i] {
			continue
		}
		pr.styles[i] = s
		if pr.onStyle != nil {
			pr.onStyle(i, s)
		}
	}
}

// Style returns word i's current style.
func (pr *PhraseReveal) Style(i int) Style {
	return pr.styles[i]
}

// Window returns word i's progress window.
func (pr *PhraseReveal) Window(i int) Window {
	return pr.windows[i]
}

// Progress returns the paragraph's scroll progress.
func (pr *PhraseReveal) Progress() *Signal[float64] {
	return pr.progress.Progress()
}

// Len returns the number of words.
func (pr *PhraseReveal) Len() int {
	return len(pr.windows)
}

// Stop releases the progress listener, and the progress itself when the
// reveal created it.
func (pr *PhraseReveal) Stop() {
	if pr.stopped {
		return
	}
	pr.stopped = true
	pr.sub.Remove()
	if pr.owned {
		pr.progress.Stop()
	}
}
