package kinetic

// CallbackHandle allows removing a registered engine-level callback.
type CallbackHandle struct {
	id     uint32
	remove func(id uint32)
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// more than once and safe to call from inside a dispatch of the same list.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove(h.id)
}

// callbackList is an ordered set of callbacks. Removal during dispatch leaves
// a tombstone that is compacted once the outermost dispatch returns, so the
// iteration in progress never skips or repeats an entry.
type callbackList[F any] struct {
	entries     []callbackEntry[F]
	nextID      uint32
	dispatching int
	pending     bool
}

type callbackEntry[F any] struct {
	id   uint32
	fn   F
	live bool
}

func (l *callbackList[F]) add(fn F) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, callbackEntry[F]{id: id, fn: fn, live: true})
	return CallbackHandle{id: id, remove: l.remove}
}

func (l *callbackList[F]) remove(id uint32) {
	for i := range l.entries {
		e := &l.entries[i]
		if e.id != id || !e.live {
			continue
		}
		if l.dispatching > 0 {
			e.live = false
			var zero F
			e.fn = zero
			l.pending = true
			return
		}
		copy(l.entries[i:], l.entries[i+1:])
		l.entries[len(l.entries)-1] = callbackEntry[F]{}
		l.entries = l.entries[:len(l.entries)-1]
		return
	}
}

// each calls visit for every live entry registered before the call began.
func (l *callbackList[F]) each(visit func(F)) {
	l.dispatching++
	n := len(l.entries)
	for i := 0; i < n; i++ {
		if l.entries[i].live {
			visit(l.entries[i].fn)
		}
	}
	l.dispatching--
	if l.dispatching == 0 && l.pending {
		live := l.entries[:0]
		for _, e := range l.entries {
			if e.live {
				live = append(live, e)
			}
		}
		for i := len(live); i < len(l.entries); i++ {
			l.entries[i] = callbackEntry[F]{}
		}
		l.entries = live
		l.pending = false
	}
}

func (l *callbackList[F]) count() int {
	n := 0
	for i := range l.entries {
		if l.entries[i].live {
			n++
		}
	}
	return n
}
