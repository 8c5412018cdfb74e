package kinetic

// Signal is an observable value. It always holds a defined value from the
// moment it is created; Set notifies subscribers only when the value changes.
//
// Signals are not safe for concurrent use. All reads and writes happen on the
// host's frame/event loop.
type Signal[T comparable] struct {
	value T
	subs  []signalSub[T]

	nextID      uint32
	dispatching int
	pending     bool // tombstoned entries awaiting compaction

	// Set by NewSharedSignal. attach runs when the subscriber count goes
	// 0 -> 1 and returns the matching detach, run on 1 -> 0.
	attach func(set func(T)) (detach func())
	detach func()
}

type signalSub[T comparable] struct {
	id uint32
	fn func(T)
}

// NewSignal returns a Signal holding initial.
func NewSignal[T comparable](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// NewSharedSignal returns a reference-counted Signal whose underlying source
// is attached only while at least one subscriber exists. attach receives the
// setter the source should call and returns the function that removes the
// source. N subscribers share a single attached source.
func NewSharedSignal[T comparable](initial T, attach func(set func(T)) (detach func())) *Signal[T] {
	return &Signal[T]{value: initial, attach: attach}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	return s.value
}

// Set stores v and notifies subscribers if it differs from the current value.
func (s *Signal[T]) Set(v T) {
	if s.value == v {
		return
	}
	s.value = v

	s.dispatching++
	// Subscribers added during dispatch are not notified of this change.
	n := len(s.subs)
	for i := 0; i < n; i++ {
		if fn := s.subs[i].fn; fn != nil {
			fn(v)
		}
	}
	s.dispatching--
	if s.dispatching == 0 && s.pending {
		s.compact()
	}
}

// Subscribe registers fn to be called with each new value. The returned
// Subscription must be removed when the owning component is torn down.
func (s *Signal[T]) Subscribe(fn func(T)) Subscription {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, signalSub[T]{id: id, fn: fn})
	if s.attach != nil && s.detach == nil {
		s.detach = s.attach(s.Set)
	}
	return Subscription{remove: func() { s.unsubscribe(id) }}
}

// SubscriberCount returns the number of live subscribers.
func (s *Signal[T]) SubscriberCount() int {
	n := 0
	for i := range s.subs {
		if s.subs[i].fn != nil {
			n++
		}
	}
	return n
}

// Attached reports whether a shared signal's source is currently attached.
// Always false for signals created with NewSignal.
func (s *Signal[T]) Attached() bool {
	return s.detach != nil
}

func (s *Signal[T]) unsubscribe(id uint32) {
	for i := range s.subs {
		if s.subs[i].id != id || s.subs[i].fn == nil {
			continue
		}
		if s.dispatching > 0 {
			s.subs[i].fn = nil
			s.pending = true
		} else {
			copy(s.subs[i:], s.subs[i+1:])
			s.subs[len(s.subs)-1] = signalSub[T]{}
			s.subs = s.subs[:len(s.subs)-1]
		}
		break
	}
	if s.detach != nil && s.SubscriberCount() == 0 {
		detach := s.detach
		s.detach = nil
		detach()
	}
}

func (s *Signal[T]) compact() {
	live := s.subs[:0]
	for _, sub := range s.subs {
		if sub.fn != nil {
			live = append(live, sub)
		}
	}
	for i := len(live); i < len(s.subs); i++ {
		s.subs[i] = signalSub[T]{}
	}
	s.subs = live
	s.pending = false
}

// Subscription revokes a Signal subscription. The zero value is inert.
type Subscription struct {
	remove func()
}

// Remove unsubscribes. Calling Remove more than once is a no-op.
func (s *Subscription) Remove() {
	if s.remove == nil {
		return
	}
	fn := s.remove
	s.remove = nil
	fn()
}
