package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

var (
	// ErrNoSave means the save slot is empty.
	ErrNoSave = errors.New("no save file found")
	// ErrCorruptSave means the save slot could not be decoded.
	ErrCorruptSave = errors.New("save file is corrupt")
)

// Snapshot is everything needed to resume a paused round.
type Snapshot struct {
	ID                string                  `json:"id"`
	RoundID           string                  `json:"round_id"`
	DeckName          string                  `json:"deck_name"`
	GameMode          model.Mode              `json:"game_mode"`
	CurrentIndex      int                     `json:"current_index"`
	Score             int                     `json:"score"`
	Points            int                     `json:"points"`
	Total             int                     `json:"total"`
	Streak            int                     `json:"streak"`
	LastPoints        int                     `json:"last_points"`
	IncorrectAnswers  []model.IncorrectAnswer `json:"incorrect_answers"`
	Cards             []model.Card            `json:"cards"`
	ReadyCards        []model.QuizItem        `json:"ready_cards"`
	WordResults       []model.WordResult      `json:"word_results"`
	CurrentInfo       *model.QuizItem         `json:"current_info"`
	ElapsedTime       float64                 `json:"elapsed_time"`
	TimeAttackElapsed float64                 `json:"time_attack_elapsed"`
	WordText          string                  `json:"word_text"`
	Timestamp         string                  `json:"timestamp"`
	StartedAt         string                  `json:"started_at,omitempty"`
}

// SaveSlot is the single save file.
type SaveSlot struct {
	path string
}

// NewSaveSlot returns the save slot stored at path.
func NewSaveSlot(path string) *SaveSlot {
	return &SaveSlot{path: path}
}

// Path returns the file location.
func (s *SaveSlot) Path() string {
	return s.path
}

// Exists reports whether a save is present.
func (s *SaveSlot) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Write replaces the save slot. The snapshot is written to a temporary file first
// so a crash never leaves a half-written save behind.
func (s *SaveSlot) Write(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp save: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close save: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace save: %w", err)
	}
	return nil
}

// Read decodes the save slot. It returns ErrNoSave or ErrCorruptSave so callers can
// tell the two apart.
func (s *SaveSlot) Read() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, ErrNoSave
		}
		return Snapshot{}, fmt.Errorf("failed to read save: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if snap.DeckName == "" || snap.CurrentIndex < 0 || snap.CurrentIndex > len(snap.Cards) {
		return Snapshot{}, fmt.Errorf("%w: inconsistent progress", ErrCorruptSave)
	}
	mode, err := model.ParseMode(string(snap.GameMode))
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	snap.GameMode = mode
	if snap.StartedAt != "" {
		if _, err := time.Parse(time.RFC3339, snap.StartedAt); err != nil {
			return Snapshot{}, fmt.Errorf("%w: bad start time: %v", ErrCorruptSave, err)
		}
	}
	if snap.ReadyCards == nil {
		snap.ReadyCards = []model.QuizItem{}
	}
	if snap.IncorrectAnswers == nil {
		snap.IncorrectAnswers = []model.IncorrectAnswer{}
	}
	return snap, nil
}

// Delete removes the save. A missing save is not an error.
func (s *SaveSlot) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}
