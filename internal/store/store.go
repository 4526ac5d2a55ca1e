// Package store handles persistence: the score log, the save slot and the SQLite answer history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/yomiquiz/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for round history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate history: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			deck TEXT NOT NULL,
			mode TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			points INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS round_words (
			round_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			word TEXT NOT NULL,
			correct INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			points INTEGER NOT NULL,
			PRIMARY KEY (round_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_round_words_word ON round_words(word);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRound stores a finished round and the words answered in it.
func (s *Store) InsertRound(ctx context.Context, round model.RoundStats, words []model.WordResult) (err error) {
	if round.RoundID == "" {
		return fmt.Errorf("round id is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO rounds (id, deck, mode, started_at, ended_at, correct, total, points)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		round.RoundID,
		round.Deck,
		string(round.Mode),
		round.StartedAt.UTC().Format(time.RFC3339Nano),
		round.EndedAt.UTC().Format(time.RFC3339Nano),
		round.Correct,
		round.Total,
		round.Points,
	)
	if err != nil {
		return err
	}

	if len(words) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO round_words (round_id, seq, word, correct, elapsed_ms, points)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, w := range words {
			correct := 0
			if w.Correct {
				correct = 1
			}
			if _, err = stmt.ExecContext(ctx, round.RoundID, i, w.Word, correct, w.ElapsedMs, w.Points); err != nil {
				return err
			}
		}
	}

	err = tx.Commit()
	return err
}

// ListRounds returns stored rounds in chronological order, optionally filtered by mode
// and a lower bound on the end time.
func (s *Store) ListRounds(ctx context.Context, mode model.Mode, since *time.Time) ([]model.RoundAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, string(mode))
	}
	if since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, mode, correct, total, points
		FROM rounds
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundAggregate
	for rows.Next() {
		var agg model.RoundAggregate
		var endedAt, mode string
		if err := rows.Scan(&agg.RoundID, &endedAt, &mode, &agg.Correct, &agg.Total, &agg.Points); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		agg.Mode = model.Mode(mode)
		rounds = append(rounds, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

// WordAggregates sums per-word results over the most recent window rounds.
func (s *Store) WordAggregates(ctx context.Context, window int) ([]model.WordAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_rounds AS (
		SELECT id FROM rounds
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT w.word, SUM(w.correct) AS correct, SUM(1 - w.correct) AS incorrect,
		SUM(w.elapsed_ms) AS elapsed_sum_ms
	FROM round_words w
	JOIN recent_rounds r ON r.id = w.round_id
	GROUP BY w.word`

	rows, err := s.db.QueryContext(ctx, query, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		if err := rows.Scan(&agg.Word, &agg.Correct, &agg.Incorrect, &agg.ElapsedSumMs); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
