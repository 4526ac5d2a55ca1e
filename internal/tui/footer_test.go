package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/yomiquiz/internal/maturity"
	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/session"
)

func TestRenderFooterFormats(t *testing.T) {
	v := session.View{
		State:      session.StatePlaying,
		Correct:    2,
		Total:      3,
		Points:     210,
		Streak:     2,
		Multiplier: 1.2,
		Average:    70,
		LastPoints: 110,
		Ready:      4,
	}
	out := renderFooter(v)
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Score 2/3", "Points 210", "Streak 2 ×1.2", "Avg 70", "Last +110", "Ready 4"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterHiddenOutsideRound(t *testing.T) {
	if out := renderFooter(session.View{State: session.StateMenu}); out != "" {
		t.Fatalf("expected no footer on the menu, got %q", out)
	}
}

func TestRenderPlayingTimeAttack(t *testing.T) {
	v := session.View{
		State:           session.StatePlaying,
		Mode:            model.ModeTimeAttack,
		Word:            "猫",
		Input:           "ねk",
		Romaji:          "nek",
		Total:           1,
		RoundSize:       5,
		TimeLeft:        42 * time.Second,
		QuestionElapsed: 1500 * time.Millisecond,
	}
	out := renderPlaying(v, 40)
	if !containsAll(out, []string{"Time Attack", "1/5", "42s left", "1.5s", "猫", "> ねk", "nek"}) {
		t.Fatalf("playing screen missing expected segments: %s", out)
	}
}

func TestRenderPlayingFeedback(t *testing.T) {
	v := session.View{
		State:    session.StatePlaying,
		Mode:     model.ModeNormal,
		Word:     "日本",
		Answered: true,
		Feedback: &session.Feedback{
			Correct:  false,
			Word:     "日本",
			Readings: "にほん / にっぽん",
			Meanings: []string{"Japan", "Nippon"},
			Answer:   "にも",
		},
	}
	out := renderPlaying(v, 40)
	if !containsAll(out, []string{"Incorrect", "You typed: にも", "Reading: にほん / にっぽん", "Japan; Nippon", "enter next"}) {
		t.Fatalf("feedback missing expected segments: %s", out)
	}
}

func TestRenderPlayingWaiting(t *testing.T) {
	out := renderPlaying(session.View{State: session.StatePlaying, Waiting: true}, 40)
	if !strings.Contains(out, "Loading next word") {
		t.Fatalf("expected waiting message, got %s", out)
	}
}

func TestRenderFilterMarksSelection(t *testing.T) {
	v := session.View{
		State:         session.StateFilterSelect,
		Filter:        []maturity.Level{maturity.Young},
		FilterSummary: "Young Cards (<21 days)",
		LevelCounts:   map[maturity.Level]int{maturity.Young: 7, maturity.Mature: 3},
	}
	out := renderFilter(v)
	if !containsAll(out, []string{"[x] 3 Young Cards (<21 days) (7)", "[ ] 4 Mature Cards (≥21 days) (3)"}) {
		t.Fatalf("filter screen missing expected rows: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
