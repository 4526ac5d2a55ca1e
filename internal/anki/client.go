// Package anki talks to the AnkiConnect add-on.
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

// DefaultURL is where AnkiConnect listens by default.
const DefaultURL = "http://localhost:8765"

const apiVersion = 6

var (
	// ErrUnreachable means AnkiConnect could not be contacted at all.
	ErrUnreachable = errors.New("cannot connect to Anki")
	// ErrEmptyDeck means the deck does not exist or holds no cards.
	ErrEmptyDeck = errors.New("deck not found or empty")
)

// Client calls AnkiConnect actions.
type Client struct {
	url  string
	http *http.Client
}

// New returns a client for the AnkiConnect endpoint at url.
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{url: url, http: &http.Client{Timeout: timeout}}
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// DeckNames lists every deck.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.call(ctx, "deckNames", struct{}{}, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// CardIDs lists the ids of every card in deck.
func (c *Client) CardIDs(ctx context.Context, deck string) ([]int64, error) {
	var ids []int64
	params := map[string]string{"query": fmt.Sprintf("deck:%q", deck)}
	if err := c.call(ctx, "findCards", params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CardsInfo fetches front text and scheduling data for the given cards.
func (c *Client) CardsInfo(ctx context.Context, ids []int64) ([]model.Card, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var cards []model.Card
	params := map[string][]int64{"cards": ids}
	if err := c.call(ctx, "cardsInfo", params, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) call(ctx context.Context, action string, params, out any) error {
	body, err := json.Marshal(request{Action: action, Version: apiVersion, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", action, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected AnkiConnect status for %s: %s", action, resp.Status)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", action, err)
	}
	if payload.Error != nil && *payload.Error != "" {
		return fmt.Errorf("AnkiConnect %s failed: %s", action, *payload.Error)
	}
	if len(payload.Result) == 0 || string(payload.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", action, err)
	}
	return nil
}
