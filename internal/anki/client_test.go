package anki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

func newAnkiServer(t *testing.T, handle func(action string, params json.RawMessage) (any, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Action  string          `json:"action"`
			Version int             `json:"version"`
			Params  json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 6, req.Version)
		result, errMsg := handle(req.Action, req.Params)
		resp := map[string]any{"result": result, "error": nil}
		if errMsg != "" {
			resp["error"] = errMsg
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientActions(t *testing.T) {
	srv := newAnkiServer(t, func(action string, params json.RawMessage) (any, string) {
		switch action {
		case "deckNames":
			return []string{"Default", "日本語::Mining"}, ""
		case "findCards":
			var p map[string]string
			_ = json.Unmarshal(params, &p)
			if p["query"] != `deck:"日本語::Mining"` {
				return []int64{}, ""
			}
			return []int64{11, 12}, ""
		case "cardsInfo":
			return []map[string]any{
				{"cardId": 11, "question": "<div>日本</div>", "type": 2, "interval": 30, "deckName": "x"},
				{"cardId": 12, "question": "勉強", "type": 1, "interval": 0},
			}, ""
		}
		return nil, "unsupported action"
	})
	c := New(srv.URL, time.Second)
	ctx := context.Background()

	decks, err := c.DeckNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "日本語::Mining"}, decks)

	ids, err := c.CardIDs(ctx, "日本語::Mining")
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, ids)

	missing, err := c.CardIDs(ctx, "Nope")
	require.NoError(t, err)
	assert.Empty(t, missing)

	cards, err := c.CardsInfo(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, []model.Card{
		{ID: 11, FrontHTML: "<div>日本</div>", Type: 2, Interval: 30},
		{ID: 12, FrontHTML: "勉強", Type: 1, Interval: 0},
	}, cards)

	none, err := c.CardsInfo(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestClientAPIError(t *testing.T) {
	srv := newAnkiServer(t, func(string, json.RawMessage) (any, string) {
		return nil, "collection is not available"
	})
	_, err := New(srv.URL, time.Second).DeckNames(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnreachable)
	assert.Contains(t, err.Error(), "collection is not available")
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).DeckNames(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, time.Second).CardIDs(context.Background(), "deck")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnreachable)
}
