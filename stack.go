package kinetic

// StackStep is the scale each card gives up per card stacked above it.
const StackStep = 0.05

// stackFadeWindow is the width of the progress window over which a card
// fades and rises into place.
const stackFadeWindow = 0.25

// ScaleTarget returns the scale card i of n shrinks to once the container is
// fully scrolled: 1 - (n-i)*0.05.
func ScaleTarget(i, n int) float64 {
	return 1 - float64(n-i)*StackStep
}

// StackWindow returns the progress window [i/n, 1] over which card i scales.
func StackWindow(i, n int) Window {
	if n <= 0 {
		return Window{Start: 0, End: 1}
	}
	return Window{Start: float64(i) / float64(n), End: 1}
}

// FadeWindow returns the tighter window [i/n, i/n+0.25] over which card i
// fades and settles.
func FadeWindow(i, n int) Window {
	w := StackWindow(i, n)
	return Window{Start: w.Start, End: w.Start + stackFadeWindow}
}

// CardStyle returns card i of n's style at container progress p.
// Opacity runs 0.3 -> 1 and Y 24 -> 0 over FadeWindow, scale runs
// 1 -> ScaleTarget over StackWindow.
func CardStyle(i, n int, p float64) Style {
	sw, fw := StackWindow(i, n), FadeWindow(i, n)
	return Style{
		Opacity: Linear(fw.Start, fw.End, 0.3, 1).Evaluate(p),
		Y:       Linear(fw.Start, fw.End, 24, 0).Evaluate(p),
		Scale:   Linear(sw.Start, sw.End, 1, ScaleTarget(i, n)).Evaluate(p),
	}
}

// ProcessCardStyle returns card i of n's style for the process grid, which
// fades, rises and lights up over FadeWindow without scaling.
func ProcessCardStyle(i, n int, p float64) Style {
	fw := FadeWindow(i, n)
	return Style{
		Opacity: Linear(fw.Start, fw.End, 0.3, 1).Evaluate(p),
		Y:       Linear(fw.Start, fw.End, 24, 0).Evaluate(p),
		Scale:   1,
		Glow:    Linear(fw.Start, fw.End, 0, 0.35).Evaluate(p),
	}
}

// CardStack composes n stacked cards over a container's scroll progress.
// Styles are recomputed whenever progress changes.
type CardStack struct {
	n       int
	styles  []Style
	sub     Subscription
	onStyle func(i int, s Style)
	styleFn func(i, n int, p float64) Style
	stopped bool
}

// NewCardStack binds n cards to progress. onStyle, if non-nil, is called for
// every card whose style changes.
func NewCardStack(progress *Signal[float64], n int, onStyle func(i int, s Style)) *CardStack {
	return newCardStack(progress, n, CardStyle, onStyle)
}

// NewProcessGrid is NewCardStack with ProcessCardStyle.
func NewProcessGrid(progress *Signal[float64], n int, onStyle func(i int, s Style)) *CardStack {
	return newCardStack(progress, n, ProcessCardStyle, onStyle)
}

func newCardStack(progress *Signal[float64], n int, fn func(i, n int, p float64) Style, onStyle func(int, Style)) *CardStack {
	cs := &CardStack{n: n, styles: make([]Style, n), onStyle: onStyle, styleFn: fn}
	p := progress.Get()
	for i := range cs.styles {
		cs.styles[i] = fn(i, n, p)
	}
	cs.sub = progress.Subscribe(cs.update)
	return cs
}

func (cs *CardStack) update(p float64) {
	for i := range cs.styles {
		s := cs.styleFn(i, cs.n, p)
		if s == cs.styles[i] {
			continue
		}
		cs.styles[i] = s
		if cs.onStyle != nil {
			cs.onStyle(i, s)
		}
	}
}

// Style returns card i's current style.
func (cs *CardStack) Style(i int) Style {
	return cs.styles[i]
}

// Len returns the number of cards.
func (cs *CardStack) Len() int {
	return cs.n
}

// Stop releases the progress subscription.
func (cs *CardStack) Stop() {
	if cs.stopped {
		return
	}
	cs.stopped = true
	cs.sub.Remove()
}
