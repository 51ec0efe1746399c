package service

import "sync"

// subscribers is a small broadcast set. Each subscriber gets a buffered
// channel that receives at most one pending signal; a notify while a
// signal is already pending is coalesced.
type subscribers struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// subscribe registers a listener and returns a cancel func alongside the
// signal channel. Callers must invoke cancel when done listening.
func (s *subscribers) subscribe() (func(), <-chan struct{}) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[chan struct{}]struct{})
	}
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return cancel, ch
}

func (s *subscribers) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
