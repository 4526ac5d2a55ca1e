package session

import (
	"time"

	"github.com/verte-zerg/yomiquiz/internal/maturity"
	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/stats"
)

// View is a read-only copy of what the renderer needs for one frame.
type View struct {
	State State
	Deck  string
	Mode  model.Mode

	Countdown int
	Word      string
	Input     string
	Romaji    string
	Waiting   bool
	Answered  bool
	Feedback  *Feedback

	Correct    int
	Total      int
	Points     int
	Streak     int
	LastPoints int
	Percentage int
	Average    int
	Multiplier float64

	QuestionElapsed time.Duration
	TimeLeft        time.Duration

	Incorrect []model.IncorrectAnswer

	Status        string
	LoadingError  string
	SaveLoadError string
	HasSave       bool

	DeckSize      int
	RoundSize     int
	Ready         int
	Filter        []maturity.Level
	FilterSummary string
	LevelCounts   map[maturity.Level]int
	Leaderboard   stats.Leaderboard
}

// View snapshots the session for rendering.
func (m *Machine) View() View {
	now := m.now()
	v := View{
		State:         m.state,
		Deck:          m.settings.Deck,
		Mode:          m.mode,
		Countdown:     m.countdownLeft,
		Input:         m.input.Text(),
		Romaji:        m.input.Romaji(),
		Answered:      m.answered,
		Correct:       m.tally.Correct,
		Total:         m.tally.Total,
		Points:        m.tally.Points,
		Streak:        m.tally.Streak,
		LastPoints:    m.tally.LastPoints,
		Percentage:    m.tally.Percentage(),
		Average:       m.tally.Average(),
		Multiplier:    m.settings.Rules.StreakMultiplier(m.tally.Streak),
		Incorrect:     append([]model.IncorrectAnswer(nil), m.incorrect...),
		Status:        m.status,
		LoadingError:  m.loadingError,
		SaveLoadError: m.saveLoadError,
		HasSave:       m.hasSave,
		DeckSize:      len(m.allCards),
		RoundSize:     len(m.cards),
		Filter:        m.filter.Levels(),
		FilterSummary: m.filter.Summary(),
		LevelCounts:   maturity.Analyze(m.allCards),
		Leaderboard:   m.leaderboard,
	}
	if m.feedback != nil {
		fb := *m.feedback
		v.Feedback = &fb
	}
	if m.queue != nil {
		v.Ready = m.queue.Len()
	}
	if m.current != nil {
		v.Word = m.current.Word
	}
	v.Waiting = m.state == StatePlaying && m.current == nil

	switch m.state {
	case StatePlaying:
		if m.current != nil && !m.answered {
			v.QuestionElapsed = now.Sub(m.questionStart)
		}
		if m.mode == model.ModeTimeAttack {
			v.TimeLeft = max(m.settings.TimeAttack-now.Sub(m.roundStart), 0)
		}
	case StatePaused, StateSaving:
		v.QuestionElapsed = m.pausedElapsed
		if m.mode == model.ModeTimeAttack {
			v.TimeLeft = max(m.settings.TimeAttack-m.roundElapsed, 0)
		}
	}
	return v
}
