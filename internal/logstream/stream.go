package logstream

import (
	"context"
	"sync"
)

// Stream fan-outs appended log lines to all active subscribers (the SSE
// clients). Slow subscribers are dropped rather than blocking the tailer,
// so the only ordering guarantee is append-order for clients that keep up.
type Stream struct {
	mu   sync.RWMutex
	subs map[int]chan string
	next int
}

func New() *Stream {
	return &Stream{subs: make(map[int]chan string)}
}

// Subscribe registers a subscriber and returns a channel which will receive
// log lines. The channel is closed when the provided context ends.
func (s *Stream) Subscribe(ctx context.Context) <-chan string {
	ch := make(chan string, 64)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// Publish fan-outs one line to all subscribers.
func (s *Stream) Publish(line string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- line:
		default:
			// Drop when a subscriber is slow to avoid blocking the tailer.
		}
	}
}

// Subscribers reports the current subscriber count.
func (s *Stream) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
