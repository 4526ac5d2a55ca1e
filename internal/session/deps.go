package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/yomiquiz/internal/maturity"
	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/preload"
	"github.com/verte-zerg/yomiquiz/internal/scoring"
	"github.com/verte-zerg/yomiquiz/internal/store"
)

// FlashcardSource provides the cards of a deck.
type FlashcardSource interface {
	DeckNames(ctx context.Context) ([]string, error)
	CardIDs(ctx context.Context, deck string) ([]int64, error)
	CardsInfo(ctx context.Context, ids []int64) ([]model.Card, error)
}

// ScoreLog records finished rounds.
type ScoreLog interface {
	Append(rec model.ScoreRecord) error
	Read() ([]model.ScoreRecord, error)
}

// SaveStore is the single save slot.
type SaveStore interface {
	Write(snap store.Snapshot) error
	Read() (store.Snapshot, error)
	Delete() error
	Exists() bool
}

// History keeps per-word results of finished rounds.
type History interface {
	InsertRound(ctx context.Context, round model.RoundStats, words []model.WordResult) error
}

// Deps are the collaborators of a Machine. History, Logger, Clock, Shuffle and NewID
// are optional.
type Deps struct {
	Cards   FlashcardSource
	Dict    preload.Dictionary
	Scores  ScoreLog
	Saves   SaveStore
	History History
	Logger  *zap.Logger
	Clock   func() time.Time
	Shuffle func([]model.Card)
	NewID   func() string
}

// Settings are fixed for the lifetime of a Machine.
type Settings struct {
	Deck            string
	Mode            model.Mode
	Rules           scoring.Rules
	PreloadDepth    int
	PreloadIdle     time.Duration
	TimeAttack      time.Duration
	CountdownTicks  int
	CountdownStep   time.Duration
	FeedbackCorrect time.Duration
	FeedbackWrong   time.Duration
	Filter          []maturity.Level
	LeaderboardSize int
}

// DefaultSettings returns the standard game settings for deck.
func DefaultSettings(deck string) Settings {
	return Settings{
		Deck:            deck,
		Mode:            model.ModeNormal,
		Rules:           scoring.DefaultRules(),
		PreloadDepth:    preload.DefaultDepth,
		PreloadIdle:     preload.DefaultIdle,
		TimeAttack:      60 * time.Second,
		CountdownTicks:  3,
		CountdownStep:   time.Second,
		FeedbackCorrect: 2 * time.Second,
		FeedbackWrong:   3 * time.Second,
		LeaderboardSize: 5,
	}
}

func (s Settings) validate() error {
	if s.Deck == "" {
		return fmt.Errorf("deck name is empty")
	}
	if err := s.Rules.Validate(); err != nil {
		return err
	}
	if s.TimeAttack <= 0 {
		return fmt.Errorf("time attack duration must be positive")
	}
	if s.CountdownTicks < 0 {
		return fmt.Errorf("countdown must not be negative")
	}
	if s.FeedbackCorrect < 0 || s.FeedbackWrong < 0 {
		return fmt.Errorf("feedback delays must not be negative")
	}
	return nil
}

func (d *Deps) fill() error {
	if d.Cards == nil || d.Dict == nil || d.Scores == nil || d.Saves == nil {
		return fmt.Errorf("flashcard source, dictionary, score log and save slot are required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Shuffle == nil {
		d.Shuffle = func(cards []model.Card) {
			rand.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
		}
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return nil
}
