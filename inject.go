package kinetic

// InjectScroll queues a synthetic absolute scroll. Injected events are
// consumed one per frame, ahead of that frame's real input, so scripted
// sequences play out over consecutive frames like real input would.
func (e *Engine) InjectScroll(y float64) {
	e.injectQueue = append(e.injectQueue, hostEvent{kind: hostScroll, y: y})
}

// InjectResize queues a synthetic window resize.
func (e *Engine) InjectResize(width, height float64) {
	e.injectQueue = append(e.injectQueue, hostEvent{kind: hostResize, x: width, y: height})
}

// InjectMove queues a pointer move at window coordinates (x, y).
func (e *Engine) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, hostEvent{kind: hostPointerMove, x: x, y: y})
}

// InjectPress queues a primary button press at (x, y).
func (e *Engine) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, hostEvent{kind: hostPointerDown, x: x, y: y})
}

// InjectRelease queues a primary button release at (x, y).
func (e *Engine) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, hostEvent{kind: hostPointerUp, x: x, y: y})
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), frames-2
// linearly interpolated moves, a move to (toX, toY) and the release there.
// Each event takes one frame. frames below 2 is treated as 2.
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
	// The release carries the final position; without a move to it the drag
	// would end short of the target by one step.
	e.injectQueue = append(e.injectQueue,
		hostEvent{kind: hostPointerMove, x: toX, y: toY},
		hostEvent{kind: hostPointerUp, x: toX, y: toY},
	)
}

// PendingInjected returns the number of injected events not yet consumed.
func (e *Engine) PendingInjected() int {
	return len(e.injectQueue)
}

// processInjectedInput moves one injected event to the front of the input
// queue. Returns true if an event was consumed.
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	ev := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue[len(e.injectQueue)-1] = hostEvent{}
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	e.queue = append(e.queue, hostEvent{})
	copy(e.queue[1:], e.queue)
	e.queue[0] = ev
	return true
}
