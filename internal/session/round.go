package session

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/yomiquiz/internal/kana"
	"github.com/verte-zerg/yomiquiz/internal/maturity"
	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/preload"
)

const waitingStatus = "Loading next card..."

// StartRound begins a round in the selected mode. It resets the score, reshuffles the
// cards, restarts preloading and runs the countdown.
func (m *Machine) StartRound() bool {
	if m.state != StateModeSelect {
		return false
	}
	cards := maturity.Filter(m.allCards, m.filter.Levels())
	if len(cards) == 0 {
		m.status = "No cards match the selected filter."
		return false
	}
	cards = append([]model.Card(nil), cards...)
	m.deps.Shuffle(cards)

	m.stopPipeline()
	m.resetRound()
	now := m.now()
	m.roundID = m.deps.NewID()
	m.roundStartedAt = now
	m.cards = cards
	m.queue = preload.NewQueue()
	m.startPipeline(0)

	m.countdownLeft = m.settings.CountdownTicks
	m.countdownNext = now.Add(m.settings.CountdownStep)
	m.state = StateCountdown
	m.logger.Info("round started",
		zap.String("round", m.roundID),
		zap.String("mode", string(m.mode)),
		zap.Int("cards", len(cards)))
	if m.countdownLeft == 0 {
		m.beginPlaying(now)
	}
	return true
}

func (m *Machine) resetRound() {
	m.tally.Reset()
	m.incorrect = []model.IncorrectAnswer{}
	m.words = nil
	m.current = nil
	m.input.Reset()
	m.answered = false
	m.feedback = nil
	m.pausedElapsed = 0
	m.roundElapsed = 0
	m.feedbackLeft = 0
	m.cursor = 0
	m.status = ""
	m.saveLoadError = ""
}

func (m *Machine) startPipeline(cursor int) {
	m.cursor = cursor
	m.pipeline = preload.New(m.deps.Dict, m.cards, cursor, m.queue, preload.Options{
		Depth:  m.settings.PreloadDepth,
		Idle:   m.settings.PreloadIdle,
		Logger: m.logger.Named("preload"),
	})
	m.pipeline.Start(m.ctx)
}

// stopPipeline signals the producer without waiting for it. A lookup still in flight
// lands in the old queue, which is never read again.
func (m *Machine) stopPipeline() {
	if m.pipeline == nil {
		return
	}
	p := m.pipeline
	m.cursor = p.Cursor()
	m.pipeline = nil
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		p.Stop()
	}()
}

func (m *Machine) tickCountdown(now time.Time) {
	for m.countdownLeft > 0 && !now.Before(m.countdownNext) {
		m.countdownLeft--
		m.countdownNext = m.countdownNext.Add(m.settings.CountdownStep)
	}
	if m.countdownLeft == 0 {
		m.beginPlaying(now)
	}
}

func (m *Machine) beginPlaying(now time.Time) {
	m.state = StatePlaying
	m.roundStart = now
	m.roundElapsed = 0
	m.next(now)
}

func (m *Machine) tickPlaying(now time.Time) {
	if m.mode == model.ModeTimeAttack && now.Sub(m.roundStart) >= m.settings.TimeAttack {
		m.finish(now)
		return
	}
	if m.answered && !now.Before(m.feedbackUntil) {
		m.current = nil
		m.answered = false
	}
	if m.current == nil {
		m.next(now)
	}
}

// next presents the next ready item, or ends the round when nothing more will arrive.
func (m *Machine) next(now time.Time) {
	if m.pipeline == nil || m.queue == nil {
		return
	}
	exhausted := m.pipeline.Exhausted()
	item, ok := m.queue.TryTake()
	if ok {
		m.present(item, now)
		return
	}
	if exhausted {
		m.finish(now)
		return
	}
	m.status = waitingStatus
}

func (m *Machine) present(item model.QuizItem, now time.Time) {
	m.current = &item
	m.input.Reset()
	m.answered = false
	m.questionStart = now
	m.pausedElapsed = 0
	m.status = ""
}

// Type adds keystrokes to the answer.
func (m *Machine) Type(s string) bool {
	if !m.awaitingAnswer() {
		return false
	}
	m.input.Type(s)
	return true
}

// Backspace removes the last kana of the answer.
func (m *Machine) Backspace() bool {
	if !m.awaitingAnswer() {
		return false
	}
	m.input.Backspace()
	return true
}

func (m *Machine) awaitingAnswer() bool {
	return m.state == StatePlaying && m.current != nil && !m.answered
}

// Submit checks the typed answer. It returns false without changing anything when there
// is no question, the answer is not pure kana, or the last answer is still being shown.
func (m *Machine) Submit() bool {
	if !m.awaitingAnswer() {
		return false
	}
	answer := m.input.Answer()
	if !kana.IsHiragana(kana.ToHiragana(answer)) {
		return false
	}
	now := m.now()
	elapsed := now.Sub(m.questionStart)
	item := *m.current
	correct := kana.Matches(answer, item.Readings)

	points := 0
	if correct {
		points = m.tally.RecordCorrect(m.settings.Rules, elapsed)
	} else {
		m.tally.RecordIncorrect()
		m.incorrect = append(m.incorrect, model.IncorrectAnswer{
			Word:           item.Word,
			CorrectReading: strings.Join(item.Readings, " / "),
			YourAnswer:     answer,
		})
	}
	m.words = append(m.words, model.WordResult{
		Word:      item.Word,
		Correct:   correct,
		ElapsedMs: elapsed.Milliseconds(),
		Points:    points,
	})
	m.feedback = &Feedback{
		Correct:  correct,
		Word:     item.Word,
		Readings: strings.Join(item.Readings, " / "),
		Meanings: item.Meanings,
		Answer:   answer,
		Points:   points,
	}
	m.answered = true
	m.input.Reset()

	if m.mode.AutoAdvance() {
		m.current = nil
		m.answered = false
		m.next(now)
		return true
	}
	delay := m.settings.FeedbackWrong
	if correct {
		delay = m.settings.FeedbackCorrect
	}
	m.feedbackUntil = now.Add(delay)
	return true
}

// Skip ends the feedback pause early.
func (m *Machine) Skip() bool {
	if m.state != StatePlaying || !m.answered {
		return false
	}
	m.current = nil
	m.answered = false
	m.next(m.now())
	return true
}

// Pause stops the question and round clocks.
func (m *Machine) Pause() bool {
	if m.state != StatePlaying {
		return false
	}
	now := m.now()
	if m.current != nil && !m.answered {
		m.pausedElapsed = now.Sub(m.questionStart)
	}
	if m.answered {
		m.feedbackLeft = max(m.feedbackUntil.Sub(now), 0)
	}
	m.roundElapsed = now.Sub(m.roundStart)
	m.state = StatePaused
	return true
}

// Resume restarts the clocks so the pause is not counted.
func (m *Machine) Resume() bool {
	if m.state != StatePaused {
		return false
	}
	now := m.now()
	m.questionStart = now.Add(-m.pausedElapsed)
	m.roundStart = now.Add(-m.roundElapsed)
	if m.answered {
		m.feedbackUntil = now.Add(m.feedbackLeft)
	}
	m.input.Reset()
	m.saveLoadError = ""
	m.state = StatePlaying
	return true
}

// Leave abandons the round. Progress is still recorded when at least one question was
// answered, and the save slot is cleared.
func (m *Machine) Leave() bool {
	if m.state != StatePlaying && m.state != StatePaused && m.state != StateCountdown {
		return false
	}
	now := m.now()
	m.stopPipeline()
	m.finalize(now, m.tally.Total > 0)
	m.current = nil
	m.answered = false
	if len(m.incorrect) > 0 {
		m.state = StateReviewIncorrect
	} else {
		m.state = StateMenu
	}
	return true
}

func (m *Machine) finish(now time.Time) {
	m.stopPipeline()
	m.finalize(now, true)
	m.current = nil
	m.answered = false
	m.status = ""
	m.state = StateGameOver
}

type finalized struct {
	round model.RoundStats
	err   error
}

// finalize records the round in the background: a score log row when record is set,
// the answer history, and removal of the save slot.
func (m *Machine) finalize(now time.Time, record bool) {
	rec := model.ScoreRecord{
		Date:       now.Format("2006-01-02"),
		Time:       now.Format("15:04:05"),
		Score:      m.tally.Correct,
		Total:      m.tally.Total,
		Percentage: m.tally.Percentage(),
		Points:     m.tally.Points,
		AvgPoints:  m.tally.Average(),
		Mode:       m.mode,
	}
	round := model.RoundStats{
		RoundID:   m.roundID,
		Deck:      m.settings.Deck,
		Mode:      m.mode,
		StartedAt: m.roundStartedAt,
		EndedAt:   now,
		Correct:   m.tally.Correct,
		Total:     m.tally.Total,
		Points:    m.tally.Points,
	}
	words := m.words
	m.words = nil
	m.hasSave = false

	scores, saves, history := m.deps.Scores, m.deps.Saves, m.deps.History
	logger := m.logger.With(zap.String("round", round.RoundID), zap.String("mode", string(round.Mode)))
	m.background(func() any {
		if err := saves.Delete(); err != nil {
			logger.Warn("failed to delete save", zap.Error(err))
		}
		if !record {
			return finalized{round: round}
		}
		if err := scores.Append(rec); err != nil {
			return finalized{round: round, err: err}
		}
		if history != nil && len(words) > 0 {
			if err := history.InsertRound(context.Background(), round, words); err != nil {
				logger.Warn("failed to store answer history", zap.Error(err))
			}
		}
		return finalized{round: round}
	})
}

func (m *Machine) applyFinalized(msg finalized) {
	if msg.err != nil {
		m.logger.Error("failed to record score", zap.String("round", msg.round.RoundID), zap.Error(msg.err))
		m.status = "Failed to record score: " + msg.err.Error()
		return
	}
	m.logger.Info("round finished",
		zap.String("round", msg.round.RoundID),
		zap.Int("correct", msg.round.Correct),
		zap.Int("total", msg.round.Total),
		zap.Int("points", msg.round.Points))
}
