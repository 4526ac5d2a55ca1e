package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/preload"
	"github.com/verte-zerg/yomiquiz/internal/store"
)

type saveDone struct {
	cursor int
	err    error
}

type loadDone struct {
	snap store.Snapshot
	err  error
}

// SaveGame writes the paused round to the save slot and returns to the menu.
// Preloading is stopped and the ready queue is drained into the snapshot, then put back
// so a failed save can carry on where it left off.
func (m *Machine) SaveGame() bool {
	if m.state != StatePaused {
		return false
	}
	snap := m.snapshot(m.now())
	p, queue, cursor := m.pipeline, m.queue, m.cursor
	m.pipeline = nil
	m.state = StateSaving
	m.saveLoadError = ""

	saves := m.deps.Saves
	m.run(&m.saveSlot, func(context.Context) any {
		if p != nil {
			p.Stop()
			cursor = p.Cursor()
		}
		items := queue.Drain()
		snap.CurrentIndex = cursor
		snap.ReadyCards = items
		err := saves.Write(snap)
		queue.Restore(items)
		return saveDone{cursor: cursor, err: err}
	})
	return true
}

// snapshot captures the round except for the preload cursor and ready queue, which
// belong to the save worker.
func (m *Machine) snapshot(now time.Time) store.Snapshot {
	snap := store.Snapshot{
		ID:                m.deps.NewID(),
		RoundID:           m.roundID,
		DeckName:          m.settings.Deck,
		GameMode:          m.mode,
		Score:             m.tally.Correct,
		Points:            m.tally.Points,
		Total:             m.tally.Total,
		Streak:            m.tally.Streak,
		LastPoints:        m.tally.LastPoints,
		IncorrectAnswers:  append([]model.IncorrectAnswer{}, m.incorrect...),
		Cards:             append([]model.Card{}, m.cards...),
		WordResults:       append([]model.WordResult{}, m.words...),
		TimeAttackElapsed: m.roundElapsed.Seconds(),
		Timestamp:         now.Format(time.RFC3339),
		StartedAt:         m.roundStartedAt.Format(time.RFC3339),
	}
	// An answered question is not asked again after loading.
	if m.current != nil && !m.answered {
		item := *m.current
		snap.CurrentInfo = &item
		snap.WordText = item.Word
		snap.ElapsedTime = m.pausedElapsed.Seconds()
	}
	return snap
}

func (m *Machine) applySave(msg saveDone) {
	if msg.err != nil {
		m.logger.Error("failed to save game", zap.Error(msg.err))
		m.saveLoadError = "Failed to save: " + msg.err.Error()
		m.startPipeline(msg.cursor)
		m.state = StatePaused
		return
	}
	m.logger.Info("game saved", zap.String("round", m.roundID), zap.Int("cursor", msg.cursor))
	m.hasSave = true
	m.current = nil
	m.answered = false
	m.status = "Game saved."
	m.state = StateMenu
}

// LoadSave resumes the saved round. A missing or unreadable save leaves the player on
// the menu with a message.
func (m *Machine) LoadSave() bool {
	if m.state != StateMenu {
		return false
	}
	m.clearMessages()
	saves := m.deps.Saves
	if !saves.Exists() {
		m.hasSave = false
		m.saveLoadError = "No save file found"
		return false
	}
	m.state = StateLoadingSave
	logger := m.logger
	m.run(&m.loadSlot, func(context.Context) any {
		snap, err := saves.Read()
		if err != nil {
			return loadDone{err: err}
		}
		if err := saves.Delete(); err != nil {
			logger.Warn("failed to delete consumed save", zap.Error(err))
		}
		return loadDone{snap: snap}
	})
	return true
}

func (m *Machine) applyLoad(msg loadDone) {
	if msg.err != nil {
		m.logger.Error("failed to load save", zap.Error(msg.err))
		if errors.Is(msg.err, store.ErrNoSave) {
			m.hasSave = false
			m.saveLoadError = "No save file found"
		} else {
			m.saveLoadError = "Failed to load: " + msg.err.Error()
		}
		m.state = StateMenu
		return
	}
	m.hasSave = false
	m.restore(msg.snap, m.now())
	m.logger.Info("game loaded",
		zap.String("round", m.roundID),
		zap.Int("cursor", msg.snap.CurrentIndex),
		zap.Int("ready", len(msg.snap.ReadyCards)))
}

func (m *Machine) restore(snap store.Snapshot, now time.Time) {
	m.stopPipeline()
	m.resetRound()
	m.roundID = snap.RoundID
	if m.roundID == "" {
		m.roundID = m.deps.NewID()
	}
	m.roundStartedAt = now
	// Saves written before the start time was recorded fall back to the resume time.
	if started, err := time.Parse(time.RFC3339, snap.StartedAt); err == nil {
		m.roundStartedAt = started
	}
	m.mode = snap.GameMode
	if m.mode == "" {
		m.mode = model.ModeNormal
	}
	m.tally.Correct = snap.Score
	m.tally.Total = snap.Total
	m.tally.Points = snap.Points
	m.tally.Streak = snap.Streak
	m.tally.LastPoints = snap.LastPoints
	m.incorrect = append([]model.IncorrectAnswer{}, snap.IncorrectAnswers...)
	m.words = append([]model.WordResult(nil), snap.WordResults...)
	m.cards = snap.Cards
	m.queue = preload.NewQueue(snap.ReadyCards...)
	m.startPipeline(snap.CurrentIndex)

	m.state = StatePlaying
	m.roundElapsed = secondsToDuration(snap.TimeAttackElapsed)
	m.roundStart = now.Add(-m.roundElapsed)
	if snap.CurrentInfo != nil {
		item := *snap.CurrentInfo
		m.current = &item
		m.pausedElapsed = secondsToDuration(snap.ElapsedTime)
		m.questionStart = now.Add(-m.pausedElapsed)
		return
	}
	m.next(now)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
