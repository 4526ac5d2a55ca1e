// Package jisho looks up words in the jisho.org dictionary.
package jisho

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

// DefaultURL is the jisho.org word search endpoint.
const DefaultURL = "https://jisho.org/api/v1/search/words"

// MaxMeanings caps how many English meanings are kept per word.
const MaxMeanings = 3

const maxBody = 4 << 20

// Client queries the search API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New returns a client for the search endpoint at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}, logger: logger}
}

// Lookup returns the quiz item for word. Any failure is logged and reported as a miss.
func (c *Client) Lookup(ctx context.Context, word string) (model.QuizItem, bool) {
	item, ok, err := c.Find(ctx, word)
	if err != nil {
		c.logger.Warn("dictionary lookup failed", zap.String("word", word), zap.Error(err))
		return model.QuizItem{}, false
	}
	return item, ok
}

// Find queries the API. A missing word is (zero, false, nil); transport and status
// problems are errors.
func (c *Client) Find(ctx context.Context, word string) (model.QuizItem, bool, error) {
	if word == "" {
		return model.QuizItem{}, false, nil
	}
	endpoint := c.baseURL + "?keyword=" + url.QueryEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return model.QuizItem{}, false, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return model.QuizItem{}, false, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return model.QuizItem{}, false, fmt.Errorf("unexpected jisho status: %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return model.QuizItem{}, false, fmt.Errorf("failed to read jisho response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return model.QuizItem{}, false, fmt.Errorf("malformed jisho response")
	}
	item, ok := parseEntries(gjson.GetBytes(body, "data"), word)
	return item, ok, nil
}

// parseEntries collects every reading whose written form is word (or has no written
// form) across all entries, and the first non-empty set of English definitions.
func parseEntries(data gjson.Result, word string) (model.QuizItem, bool) {
	if !data.IsArray() {
		return model.QuizItem{}, false
	}
	item := model.QuizItem{Word: word}
	seen := map[string]bool{}
	for _, entry := range data.Array() {
		for _, jp := range entry.Get("japanese").Array() {
			written := jp.Get("word").String()
			if written != "" && written != word {
				continue
			}
			if written != "" {
				item.Word = written
			}
			reading := jp.Get("reading").String()
			if reading != "" && !seen[reading] {
				seen[reading] = true
				item.Readings = append(item.Readings, reading)
			}
		}
		if len(item.Meanings) == 0 {
			for _, sense := range entry.Get("senses").Array() {
				for _, def := range sense.Get("english_definitions").Array() {
					item.Meanings = append(item.Meanings, def.String())
				}
			}
		}
	}
	if len(item.Readings) == 0 {
		return model.QuizItem{}, false
	}
	if len(item.Meanings) > MaxMeanings {
		item.Meanings = item.Meanings[:MaxMeanings]
	}
	return item, true
}
