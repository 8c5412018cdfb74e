// Package kinetic is a continuous-signal animation engine for scroll-driven
// pages, rendered with [Ebitengine].
//
// A page is a set of [Region] rectangles in document space. Components
// mounted on regions turn scroll position, pointer position and time into
// observable [Signal] values, and the page draws from those values every
// frame.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// drives an [Engine] for you:
//
//	e := kinetic.NewEngine(1280, 720)
//	hero := e.NewRegion("hero", kinetic.Rect{Width: 1280, Height: 720})
//	gate := kinetic.NewVisibilityGate(hero, kinetic.GateConfig{MarginPx: 100})
//	kinetic.Govern(gate, func() kinetic.Subsystem {
//		return kinetic.StartTunnel(hero, kinetic.DefaultTunnelConfig(), kinetic.NewEbitenSurface)
//	})
//	kinetic.Run(e, draw, kinetic.RunConfig{Title: "Tunnel", Width: 1280, Height: 720})
//
// For full control, wrap the engine with [NewHost] and pass it to
// [ebiten.RunGame] yourself.
//
// # Frames and input
//
// Input methods such as [Engine.Scroll] and [Engine.PointerMove] only queue
// events. [Engine.Update] applies every queued event before any
// [Engine.OnFrame] callback runs, so a frame always sees one coherent set of
// inputs.
//
// # Components
//
//   - [ScrollProgress] maps a region's passage through the viewport to [0, 1].
//   - [Mapping] interpolates piecewise-linearly between breakpoints.
//   - [Spring] smooths a value toward its target (via [harmonica]).
//   - [VisibilityGate] and [Governor] run a subsystem only while on screen.
//   - [Carousel] drags a horizontal track within its bounds.
//   - [PathProgress] and [Timeline] draw a path as the page scrolls.
//   - [CardStack] composes stacked cards over a pinned container.
//   - [Reveal], [LineReveal] and [PhraseReveal] play entry animations (via [gween]).
//   - [Tunnel] renders the procedural wireframe tunnel.
//
// Every component is a [Subsystem]. [Mount] ties it to a region so removing
// the region stops it and releases its listeners.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [harmonica]: https://github.com/charmbracelet/harmonica
package kinetic
