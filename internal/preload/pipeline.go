package preload

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/yomiquiz/internal/kana"
	"github.com/verte-zerg/yomiquiz/internal/model"
)

const (
	// DefaultDepth is the number of items kept ready.
	DefaultDepth = 10
	// DefaultIdle is how long the producer waits when the queue is full.
	DefaultIdle = 100 * time.Millisecond
)

// Dictionary looks up a word. A false result means the word has no usable readings.
type Dictionary interface {
	Lookup(ctx context.Context, word string) (model.QuizItem, bool)
}

// Options tunes a pipeline.
type Options struct {
	Depth  int
	Idle   time.Duration
	Logger *zap.Logger
}

// Pipeline walks a card list from a cursor and fills a queue with quiz items.
type Pipeline struct {
	dict   Dictionary
	cards  []model.Card
	queue  *Queue
	depth  int
	idle   time.Duration
	logger *zap.Logger

	cursor    atomic.Int64
	stopped   atomic.Bool
	exhausted atomic.Bool

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a pipeline that resumes at cursor and feeds queue.
func New(dict Dictionary, cards []model.Card, cursor int, queue *Queue, opts Options) *Pipeline {
	if opts.Depth <= 0 {
		opts.Depth = DefaultDepth
	}
	if opts.Idle <= 0 {
		opts.Idle = DefaultIdle
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if queue == nil {
		queue = NewQueue()
	}
	p := &Pipeline{
		dict:   dict,
		cards:  cards,
		queue:  queue,
		depth:  opts.Depth,
		idle:   opts.Idle,
		logger: opts.Logger,
		done:   make(chan struct{}),
	}
	p.cursor.Store(int64(cursor))
	return p
}

// Start runs the producer in the background. Calling it twice has no effect.
func (p *Pipeline) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		p.cancel = cancel
		go p.run(ctx)
	})
}

// Stop asks the producer to finish and waits for it. Items already queued stay queued.
func (p *Pipeline) Stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		p.startOnce.Do(func() { close(p.done) })
		if p.cancel != nil {
			p.cancel()
		}
		<-p.done
	})
}

// Queue returns the queue the pipeline feeds.
func (p *Pipeline) Queue() *Queue {
	return p.queue
}

// Cursor returns the index of the next card to dispatch.
func (p *Pipeline) Cursor() int {
	return int(p.cursor.Load())
}

// Exhausted reports whether every card has been dispatched.
func (p *Pipeline) Exhausted() bool {
	return p.exhausted.Load()
}

// Done is closed when the producer goroutine exits.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

func (p *Pipeline) run(ctx context.Context) {
	defer close(p.done)
	for !p.stopped.Load() {
		idx := p.Cursor()
		if idx >= len(p.cards) {
			p.exhausted.Store(true)
			p.logger.Debug("preload exhausted", zap.Int("cards", len(p.cards)))
			return
		}
		if p.queue.Len() >= p.depth {
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.idle):
			}
			continue
		}

		word := kana.StripMarkup(p.cards[idx].FrontHTML)
		item, ok := p.dict.Lookup(ctx, word)
		if p.stopped.Load() {
			// The card is looked up again when a new pipeline resumes from this cursor.
			return
		}
		if ok && len(item.Readings) > 0 {
			p.queue.Push(item)
			p.logger.Debug("preloaded card",
				zap.Int("cursor", idx+1),
				zap.Int("cards", len(p.cards)),
				zap.String("word", item.Word))
		} else {
			p.logger.Info("dictionary miss, skipping card", zap.String("word", word), zap.Int("cursor", idx))
		}
		p.cursor.Store(int64(idx + 1))
	}
}
