package jisho

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

// DefaultCacheSize is the number of lookups remembered between rounds.
const DefaultCacheSize = 2048

type cached struct {
	item  model.QuizItem
	found bool
}

// CachedDictionary remembers successful answers from the API, hits and misses alike.
// Failed requests are not cached so they are retried next round.
type CachedDictionary struct {
	client *Client
	cache  *lru.Cache[string, cached]
}

// NewCached wraps client with an LRU cache of size entries.
func NewCached(client *Client, size int) (*CachedDictionary, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cached](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup cache: %w", err)
	}
	return &CachedDictionary{client: client, cache: cache}, nil
}

// Lookup returns the quiz item for word, consulting the cache first.
func (d *CachedDictionary) Lookup(ctx context.Context, word string) (model.QuizItem, bool) {
	if hit, ok := d.cache.Get(word); ok {
		return hit.item, hit.found
	}
	item, found, err := d.client.Find(ctx, word)
	if err != nil {
		d.client.logger.Warn("dictionary lookup failed", zap.String("word", word), zap.Error(err))
		return model.QuizItem{}, false
	}
	d.cache.Add(word, cached{item: item, found: found})
	return item, found
}

// Len returns the number of cached lookups.
func (d *CachedDictionary) Len() int {
	return d.cache.Len()
}
