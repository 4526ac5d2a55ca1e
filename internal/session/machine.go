package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/yomiquiz/internal/kana"
	"github.com/verte-zerg/yomiquiz/internal/maturity"
	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/preload"
	"github.com/verte-zerg/yomiquiz/internal/scoring"
	"github.com/verte-zerg/yomiquiz/internal/stats"
)

// Feedback describes the outcome of the last answer.
type Feedback struct {
	Correct  bool
	Word     string
	Readings string
	Meanings []string
	Answer   string
	Points   int
}

// Machine owns a game session. It is not safe for concurrent use: every method must be
// called from the main loop. Background work reports back through Tick.
type Machine struct {
	settings Settings
	deps     Deps
	logger   *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	results chan envelope
	wg      sync.WaitGroup

	deckSlot   slot
	saveSlot   slot
	loadSlot   slot
	scoresSlot slot

	state         State
	mode          model.Mode
	allCards      []model.Card
	filter        maturity.Selection
	status        string
	loadingError  string
	saveLoadError string
	hasSave       bool
	leaderboard   stats.Leaderboard

	// Round state.
	roundID        string
	roundStartedAt time.Time
	cards          []model.Card
	cursor         int
	queue          *preload.Queue
	pipeline       *preload.Pipeline
	tally          scoring.Tally
	incorrect      []model.IncorrectAnswer
	words          []model.WordResult
	current        *model.QuizItem
	input          kana.Input
	answered       bool
	feedback       *Feedback
	feedbackUntil  time.Time
	questionStart  time.Time
	pausedElapsed  time.Duration
	roundStart     time.Time
	roundElapsed   time.Duration
	feedbackLeft   time.Duration
	countdownLeft  int
	countdownNext  time.Time
}

// New creates a machine in the Loading state and starts loading the deck.
func New(settings Settings, deps Deps) (*Machine, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if err := deps.fill(); err != nil {
		return nil, err
	}
	if settings.Mode == "" {
		settings.Mode = model.ModeNormal
	}
	if settings.CountdownStep <= 0 {
		settings.CountdownStep = time.Second
	}
	if settings.LeaderboardSize <= 0 {
		settings.LeaderboardSize = 5
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Machine{
		settings:   settings,
		deps:       deps,
		logger:     deps.Logger.With(zap.String("deck", settings.Deck)),
		ctx:        ctx,
		cancel:     cancel,
		results:    make(chan envelope, 16),
		deckSlot:   slot{name: "deck-load"},
		saveSlot:   slot{name: "save"},
		loadSlot:   slot{name: "load"},
		scoresSlot: slot{name: "scores"},
		mode:       settings.Mode,
		filter:     maturity.NewSelection(settings.Filter...),
		hasSave:    deps.Saves.Exists(),
	}
	m.LoadDeck()
	return m, nil
}

// Close stops background work and waits for it to finish.
func (m *Machine) Close() {
	if m.pipeline != nil {
		m.pipeline.Stop()
		m.pipeline = nil
	}
	m.cancel()
	m.wg.Wait()
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

func (m *Machine) now() time.Time {
	return m.deps.Clock()
}

// Tick applies finished background work and advances timers. The main loop calls it
// once per frame.
func (m *Machine) Tick() {
drain:
	for {
		select {
		case env := <-m.results:
			m.apply(env)
		default:
			break drain
		}
	}

	now := m.now()
	switch m.state {
	case StateCountdown:
		m.tickCountdown(now)
	case StatePlaying:
		m.tickPlaying(now)
	}
}

func (m *Machine) apply(env envelope) {
	switch msg := env.msg.(type) {
	case deckLoaded:
		if m.deckSlot.current(env) {
			m.deckSlot.done()
			m.applyDeck(msg)
		}
	case saveDone:
		if m.saveSlot.current(env) {
			m.saveSlot.done()
			m.applySave(msg)
		}
	case loadDone:
		if m.loadSlot.current(env) {
			m.loadSlot.done()
			m.applyLoad(msg)
		}
	case scoresLoaded:
		if m.scoresSlot.current(env) {
			m.scoresSlot.done()
			m.applyScores(msg)
		}
	case finalized:
		m.applyFinalized(msg)
	}
}

func (m *Machine) run(s *slot, task func(ctx context.Context) any) {
	s.start(m.ctx, &m.wg, m.results, task)
}

// background runs a task that is never cancelled and always reports back.
func (m *Machine) background(task func() any) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		msg := task()
		select {
		case m.results <- envelope{msg: msg}:
		case <-m.ctx.Done():
		}
	}()
}

// OpenModeSelect moves from the menu to mode selection.
func (m *Machine) OpenModeSelect() bool {
	if m.state != StateMenu {
		return false
	}
	m.clearMessages()
	m.state = StateModeSelect
	return true
}

// SelectMode picks the mode used by the next round.
func (m *Machine) SelectMode(mode model.Mode) bool {
	if m.state != StateModeSelect {
		return false
	}
	m.mode = mode
	return true
}

// OpenFilter moves from the menu to the maturity filter screen.
func (m *Machine) OpenFilter() bool {
	if m.state != StateMenu {
		return false
	}
	m.clearMessages()
	m.state = StateFilterSelect
	return true
}

// ToggleFilter switches a maturity level in or out of the selection.
func (m *Machine) ToggleFilter(level maturity.Level) bool {
	if m.state != StateFilterSelect {
		return false
	}
	m.filter.Toggle(level)
	return true
}

// ClearFilter removes every level from the selection.
func (m *Machine) ClearFilter() bool {
	if m.state != StateFilterSelect {
		return false
	}
	m.filter.Clear()
	return true
}

// OpenLeaderboard reads the score log in the background and shows the best rounds.
func (m *Machine) OpenLeaderboard() bool {
	if m.state != StateMenu {
		return false
	}
	m.clearMessages()
	m.state = StateLeaderboard
	m.leaderboard = stats.Leaderboard{}
	scores := m.deps.Scores
	m.run(&m.scoresSlot, func(context.Context) any {
		records, err := scores.Read()
		return scoresLoaded{records: records, err: err}
	})
	return true
}

type scoresLoaded struct {
	records []model.ScoreRecord
	err     error
}

func (m *Machine) applyScores(msg scoresLoaded) {
	if msg.err != nil {
		m.logger.Error("failed to read score log", zap.Error(msg.err))
		m.status = "Failed to read scores: " + msg.err.Error()
		return
	}
	m.leaderboard = stats.HighScores(msg.records, m.settings.LeaderboardSize)
}

// Back returns to the menu from the mode, filter, leaderboard and review screens.
func (m *Machine) Back() bool {
	switch m.state {
	case StateModeSelect, StateFilterSelect, StateReviewIncorrect:
		m.state = StateMenu
	case StateLeaderboard:
		m.scoresSlot.stop()
		m.state = StateMenu
	default:
		return false
	}
	return true
}

// Continue dismisses the game over screen, showing missed words first when there are any.
func (m *Machine) Continue() bool {
	if m.state != StateGameOver {
		return false
	}
	if len(m.incorrect) > 0 {
		m.state = StateReviewIncorrect
	} else {
		m.state = StateMenu
	}
	return true
}

func (m *Machine) clearMessages() {
	m.status = ""
	m.saveLoadError = ""
}
