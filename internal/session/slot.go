package session

import (
	"context"
	"sync"
)

// envelope carries a background result back to the main loop.
type envelope struct {
	slot *slot
	gen  uint64
	msg  any
}

// slot runs at most one background task for a concern. Starting a new task cancels
// the previous one and results from superseded tasks are dropped.
type slot struct {
	name   string
	gen    uint64
	cancel context.CancelFunc
}

func (s *slot) start(parent context.Context, wg *sync.WaitGroup, out chan<- envelope, task func(ctx context.Context) any) {
	s.stop()
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	wg.Add(1)
	go func() {
		defer wg.Done()
		msg := task(ctx)
		select {
		case out <- envelope{slot: s, gen: gen, msg: msg}:
		case <-parent.Done():
		}
	}()
}

// stop cancels the running task, if any. Its result will be ignored.
func (s *slot) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *slot) current(env envelope) bool {
	return env.slot == s && env.gen == s.gen && s.cancel != nil
}

func (s *slot) done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
