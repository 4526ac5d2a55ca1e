// Package preload keeps dictionary-enriched quiz items ready ahead of the player.
package preload

import (
	"sync"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

// Queue is a thread-safe FIFO of ready quiz items.
type Queue struct {
	mu    sync.Mutex
	items []model.QuizItem
}

// NewQueue returns a queue holding items in order.
func NewQueue(items ...model.QuizItem) *Queue {
	q := &Queue{}
	q.items = append(q.items, items...)
	return q
}

// Push appends an item at the back.
func (q *Queue) Push(item model.QuizItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// TryTake pops the front item without blocking.
func (q *Queue) TryTake() (model.QuizItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return model.QuizItem{}, false
	}
	item := q.items[0]
	q.items[0] = model.QuizItem{}
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain removes and returns every queued item in order.
func (q *Queue) Drain() []model.QuizItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	if out == nil {
		out = []model.QuizItem{}
	}
	return out
}

// Restore puts items back at the front, ahead of anything queued since the drain.
func (q *Queue) Restore(items []model.QuizItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	restored := make([]model.QuizItem, 0, len(items)+len(q.items))
	restored = append(restored, items...)
	q.items = append(restored, q.items...)
}
