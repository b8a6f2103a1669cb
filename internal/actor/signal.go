package actor

// Signal is a typed notification list. Handlers run synchronously in
// subscription order.
type Signal[T any] struct {
	subs []*subscription[T]
}

type subscription[T any] struct {
	fn   func(T)
	once bool
	live bool
}

// On subscribes fn until the returned cancel func is called.
func (s *Signal[T]) On(fn func(T)) (cancel func()) {
	return s.add(fn, false)
}

// Once subscribes fn for the next emit only.
func (s *Signal[T]) Once(fn func(T)) (cancel func()) {
	return s.add(fn, true)
}

func (s *Signal[T]) add(fn func(T), once bool) func() {
	sub := &subscription[T]{fn: fn, once: once, live: true}
	s.subs = append(s.subs, sub)
	return func() { sub.live = false }
}

// Emit delivers v to every live subscriber. Subscriptions added while
// emitting wait for the next emit.
func (s *Signal[T]) Emit(v T) {
	subs := append([]*subscription[T](nil), s.subs...)
	for _, sub := range subs {
		if !sub.live {
			continue
		}
		if sub.once {
			sub.live = false
		}
		sub.fn(v)
	}
	kept := s.subs[:0]
	for _, sub := range s.subs {
		if sub.live {
			kept = append(kept, sub)
		}
	}
	for i := len(kept); i < len(s.subs); i++ {
		s.subs[i] = nil
	}
	s.subs = kept
}

// Len returns the number of live subscribers.
func (s *Signal[T]) Len() int {
	n := 0
	for _, sub := range s.subs {
		if sub.live {
			n++
		}
	}
	return n
}
