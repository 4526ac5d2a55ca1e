// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how a round paces and ends.
type Mode string

// Game modes. The values double as the mode tag in the score log.
const (
	ModeNormal     Mode = "normal"
	ModeFast       Mode = "fast"
	ModeTimeAttack Mode = "time_attack"
)

// ParseMode converts a user-supplied mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return ModeNormal, nil
	case "fast":
		return ModeFast, nil
	case "time_attack", "time-attack", "timeattack":
		return ModeTimeAttack, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want normal, fast or time_attack)", s)
	}
}

// AutoAdvance reports whether the round moves on immediately after an answer.
func (m Mode) AutoAdvance() bool {
	return m == ModeFast || m == ModeTimeAttack
}

// Label returns a display name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFast:
		return "Fast"
	case ModeTimeAttack:
		return "Time Attack"
	default:
		return "Normal"
	}
}

// Config defines game settings resolved from flags and the config file.
type Config struct {
	Deck            string
	AnkiURL         string
	DictionaryURL   string
	DictionaryCache int
	DictionaryWait  time.Duration
	PreloadDepth    int
	TimeAttack      time.Duration
	CountdownTicks  int
	FeedbackCorrect time.Duration
	FeedbackWrong   time.Duration
	FilterLevels    []string
	SpeedPoints     []int
	SpeedThresholds []float64
	MultiplierStep  float64
	MultiplierCap   float64
	SaveFilePath    string
	ScoresFilePath  string
	HistoryDBPath   string
	LogFilePath     string
	Debug           bool
	DefaultPlayMode Mode
}

// Card is a flashcard as reported by the flashcard source. It is never mutated.
type Card struct {
	ID        int64  `json:"cardId"`
	FrontHTML string `json:"question"`
	Type      int    `json:"type"`
	Interval  int    `json:"interval"`
}

// QuizItem is a dictionary-enriched card ready to be asked.
type QuizItem struct {
	Word     string   `json:"word"`
	Readings []string `json:"readings"`
	Meanings []string `json:"meanings"`
}

// IncorrectAnswer records a missed question for the review screen.
type IncorrectAnswer struct {
	Word           string `json:"word"`
	CorrectReading string `json:"correct_reading"`
	YourAnswer     string `json:"your_answer"`
}

// ScoreRecord is one row of the append-only score log.
type ScoreRecord struct {
	Date       string
	Time       string
	Score      int
	Total      int
	Percentage int
	Points     int
	AvgPoints  int
	Mode       Mode
}

// WordResult captures one answered question for the history store.
type WordResult struct {
	Word      string `json:"word"`
	Correct   bool   `json:"correct"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Points    int    `json:"points"`
}

// RoundStats captures a finalized round for the history store.
type RoundStats struct {
	RoundID   string
	Deck      string
	Mode      Mode
	StartedAt time.Time
	EndedAt   time.Time
	Correct   int
	Total     int
	Points    int
}

// RoundAggregate summarizes a stored round for reporting.
type RoundAggregate struct {
	RoundID string
	EndedAt time.Time
	Mode    Mode
	Correct int
	Total   int
	Points  int
}

// WordAggregate aggregates per-word results across rounds.
type WordAggregate struct {
	Word         string
	Correct      int
	Incorrect    int
	ElapsedSumMs int64
}
