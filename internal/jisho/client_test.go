package jisho

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nihonPayload = `{
  "meta": {"status": 200},
  "data": [
    {
      "japanese": [{"word": "日本", "reading": "にほん"}, {"word": "日本", "reading": "にっぽん"}],
      "senses": [
        {"english_definitions": ["Japan"]},
        {"english_definitions": ["Nippon", "Nihon", "land of the rising sun"]}
      ]
    },
    {
      "japanese": [{"word": "二本", "reading": "にほん"}, {"reading": "ニホン"}],
      "senses": [{"english_definitions": ["two (long things)"]}]
    }
  ]
}`

func newServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookupCollectsReadings(t *testing.T) {
	srv := newServer(t, http.StatusOK, nihonPayload, nil)
	c := New(srv.URL, time.Second, nil)

	item, ok := c.Lookup(context.Background(), "日本")
	require.True(t, ok)
	assert.Equal(t, "日本", item.Word)
	assert.Equal(t, []string{"にほん", "にっぽん", "ニホン"}, item.Readings)
	assert.Equal(t, []string{"Japan", "Nippon", "Nihon"}, item.Meanings)
}

func TestLookupSendsKeyword(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("keyword")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	t.Cleanup(srv.Close)

	_, ok := New(srv.URL, time.Second, nil).Lookup(context.Background(), "食べ物")
	assert.False(t, ok)
	assert.Equal(t, "食べ物", got)
}

func TestLookupMisses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "no entries", status: http.StatusOK, body: `{"data": []}`},
		{name: "no readings", status: http.StatusOK, body: `{"data": [{"japanese": [{"word": "日本"}]}]}`},
		{name: "other word only", status: http.StatusOK, body: `{"data": [{"japanese": [{"word": "二本", "reading": "にほん"}]}]}`},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
		{name: "malformed", status: http.StatusOK, body: `{"data": [`},
		{name: "data not array", status: http.StatusOK, body: `{"data": "nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body, nil)
			item, ok := New(srv.URL, time.Second, nil).Lookup(context.Background(), "日本")
			assert.False(t, ok)
			assert.Empty(t, item.Readings)
		})
	}
}

func TestFindReportsErrors(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, "", nil)
	_, ok, err := New(srv.URL, time.Second, nil).Find(context.Background(), "日本")
	assert.False(t, ok)
	assert.Error(t, err)

	_, ok, err = New(srv.URL, time.Second, nil).Find(context.Background(), "")
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestCachedDictionary(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("keyword") == "日本" {
			_, _ = w.Write([]byte(nihonPayload))
			return
		}
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	t.Cleanup(srv.Close)
	d, err := NewCached(New(srv.URL, time.Second, nil), 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		item, ok := d.Lookup(context.Background(), "日本")
		require.True(t, ok)
		assert.Equal(t, "日本", item.Word)
	}
	assert.Equal(t, int32(1), hits.Load())

	_, ok := d.Lookup(context.Background(), "猫")
	assert.False(t, ok)
	_, ok = d.Lookup(context.Background(), "猫")
	assert.False(t, ok)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 2, d.Len())
}

func TestCachedDictionaryDoesNotCacheFailures(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, http.StatusServiceUnavailable, "", &hits)
	d, err := NewCached(New(srv.URL, time.Second, nil), 0)
	require.NoError(t, err)

	_, ok := d.Lookup(context.Background(), "日本")
	assert.False(t, ok)
	_, ok = d.Lookup(context.Background(), "日本")
	assert.False(t, ok)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 0, d.Len())
}
