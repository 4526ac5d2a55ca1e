package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/stats"
)

type fakeHistory struct {
	rounds  []model.RoundAggregate
	words   []model.WordAggregate
	windows []int
}

func (f *fakeHistory) ListRounds(_ context.Context, _ model.Mode, _ *time.Time) ([]model.RoundAggregate, error) {
	return f.rounds, nil
}

func (f *fakeHistory) WordAggregates(_ context.Context, window int) ([]model.WordAggregate, error) {
	f.windows = append(f.windows, window)
	return f.words, nil
}

type fakeScores struct {
	records []model.ScoreRecord
	err     error
}

func (f fakeScores) Read() ([]model.ScoreRecord, error) {
	return f.records, f.err
}

func newTestModel(scores fakeScores) (*Model, *fakeHistory) {
	history := &fakeHistory{
		rounds: []model.RoundAggregate{
			{RoundID: "a", Mode: model.ModeNormal, Correct: 3, Total: 4, Points: 250},
			{RoundID: "b", Mode: model.ModeFast, Correct: 4, Total: 4, Points: 400},
		},
		words: []model.WordAggregate{
			{Word: "猫", Correct: 3, Incorrect: 1, ElapsedSumMs: 8000},
			{Word: "犬", Correct: 4},
		},
	}
	m := NewModel(history, scores, stats.ReportConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, history
}

func TestModelRendersTabs(t *testing.T) {
	m, _ := newTestModel(fakeScores{records: []model.ScoreRecord{
		{Date: "2025-01-02", Time: "10:00:00", Score: 4, Total: 4, Percentage: 100, Points: 400, AvgPoints: 100, Mode: model.ModeFast},
	}})

	out := m.View()
	if !strings.Contains(out, "Rounds: 2") || !strings.Contains(out, "Points") {
		t.Fatalf("overview missing summary: %s", out)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	out = m.View()
	if !strings.Contains(out, "Weakest words") || !strings.Contains(out, "猫") {
		t.Fatalf("words tab missing weak word: %s", out)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	out = m.View()
	if !strings.Contains(out, "High Scores") || !strings.Contains(out, "400") {
		t.Fatalf("scores tab missing record: %s", out)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected tabs to wrap around, got %d", m.activeTab)
	}
}

func TestModelWindowKeys(t *testing.T) {
	m, history := newTestModel(fakeScores{})
	if m.cfg.Window != 5 {
		t.Fatalf("expected default window 5, got %d", m.cfg.Window)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("=")})
	if m.cfg.Window != 10 {
		t.Fatalf("expected window 10, got %d", m.cfg.Window)
	}
	if last := history.windows[len(history.windows)-1]; last != 10 {
		t.Fatalf("expected report reloaded with window 10, got %d", last)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	if m.cfg.Window != 1 {
		t.Fatalf("expected window 1, got %d", m.cfg.Window)
	}
}

func TestModelShowsScoreError(t *testing.T) {
	m, _ := newTestModel(fakeScores{err: errors.New("disk gone")})
	if !strings.Contains(m.View(), "Failed to read scores: disk gone") {
		t.Fatalf("expected score error in footer")
	}
}

func TestCurveWindowSteps(t *testing.T) {
	if got := nextCurveWindow(3); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := nextCurveWindow(7); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := prevCurveWindow(12); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := prevCurveWindow(5); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}
