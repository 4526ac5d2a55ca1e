package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/store"
)

type fakeSource struct {
	decks []string
	cards []model.Card
	err   error
}

func (f *fakeSource) DeckNames(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.decks, nil
}

func (f *fakeSource) CardIDs(_ context.Context, deck string) ([]int64, error) {
	ids := make([]int64, 0, len(f.cards))
	for _, c := range f.cards {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (f *fakeSource) CardsInfo(_ context.Context, ids []int64) ([]model.Card, error) {
	return append([]model.Card(nil), f.cards...), nil
}

type fakeDict struct {
	items map[string]model.QuizItem
}

func (f *fakeDict) Lookup(_ context.Context, word string) (model.QuizItem, bool) {
	item, ok := f.items[word]
	return item, ok
}

type fakeScores struct {
	mu      sync.Mutex
	records []model.ScoreRecord
}

func (f *fakeScores) Append(rec model.ScoreRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeScores) Read() ([]model.ScoreRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ScoreRecord(nil), f.records...), nil
}

func (f *fakeScores) all() []model.ScoreRecord {
	recs, _ := f.Read()
	return recs
}

type fakeHistory struct {
	mu     sync.Mutex
	rounds []model.RoundStats
	words  [][]model.WordResult
}

func (f *fakeHistory) InsertRound(_ context.Context, round model.RoundStats, words []model.WordResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rounds = append(f.rounds, round)
	f.words = append(f.words, words)
	return nil
}

func (f *fakeHistory) snapshot() ([]model.RoundStats, [][]model.WordResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.RoundStats(nil), f.rounds...), append([][]model.WordResult(nil), f.words...)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// vocab maps a word to its reading and the romaji that types it.
var vocab = []struct {
	word, reading, romaji string
}{
	{"猫", "ねこ", "neko"},
	{"犬", "いぬ", "inu"},
	{"鳥", "とり", "tori"},
	{"魚", "さかな", "sakana"},
	{"馬", "うま", "uma"},
}

func romajiFor(word string) string {
	for _, v := range vocab {
		if v.word == word {
			return v.romaji
		}
	}
	return ""
}

func cardsFor(words ...string) []model.Card {
	cards := make([]model.Card, 0, len(words))
	for i, w := range words {
		cards = append(cards, model.Card{ID: int64(i + 1), FrontHTML: "<div>" + w + "</div>", Type: 2, Interval: 5})
	}
	return cards
}

func dictFor(words ...string) *fakeDict {
	d := &fakeDict{items: map[string]model.QuizItem{}}
	for _, w := range words {
		for _, v := range vocab {
			if v.word == w {
				d.items[w] = model.QuizItem{Word: w, Readings: []string{v.reading}, Meanings: []string{"meaning of " + w}}
			}
		}
	}
	return d
}

type harness struct {
	m       *Machine
	src     *fakeSource
	dict    *fakeDict
	scores  *fakeScores
	history *fakeHistory
	saves   *store.SaveSlot
	clock   *fakeClock
}

type harnessOption func(*Settings, *fakeSource, *fakeDict)

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	h := &harness{
		src:     &fakeSource{decks: []string{"Core"}, cards: cardsFor("猫", "犬", "鳥")},
		dict:    dictFor("猫", "犬", "鳥"),
		scores:  &fakeScores{},
		history: &fakeHistory{},
		saves:   store.NewSaveSlot(filepath.Join(t.TempDir(), "save.json")),
		clock:   &fakeClock{now: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)},
	}
	settings := DefaultSettings("Core")
	settings.CountdownTicks = 0
	settings.PreloadIdle = 2 * time.Millisecond
	for _, opt := range opts {
		opt(&settings, h.src, h.dict)
	}
	ids := 0
	m, err := New(settings, Deps{
		Cards:   h.src,
		Dict:    h.dict,
		Scores:  h.scores,
		Saves:   h.saves,
		History: h.history,
		Clock:   h.clock.Now,
		Shuffle: func([]model.Card) {},
		NewID: func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		},
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	h.m = m
	return h
}

// tickUntil drives the main loop until cond holds.
func tickUntil(t *testing.T, m *Machine, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	m.Tick()
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not reached; state %s, view %+v", m.State(), m.View())
		}
		time.Sleep(time.Millisecond)
		m.Tick()
	}
}

func (h *harness) waitState(t *testing.T, state State) {
	t.Helper()
	tickUntil(t, h.m, func() bool { return h.m.State() == state })
}

// startRound goes from the menu to the first question in mode.
func (h *harness) startRound(t *testing.T, mode model.Mode) {
	t.Helper()
	h.waitState(t, StateMenu)
	require.True(t, h.m.OpenModeSelect())
	require.True(t, h.m.SelectMode(mode))
	require.True(t, h.m.StartRound())
}

func (h *harness) waitWord(t *testing.T) string {
	t.Helper()
	tickUntil(t, h.m, func() bool { return h.m.View().Word != "" && !h.m.View().Answered })
	return h.m.View().Word
}

func (h *harness) answer(t *testing.T, text string) {
	t.Helper()
	require.True(t, h.m.Type(text))
	require.True(t, h.m.Submit())
}
