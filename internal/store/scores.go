package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

var scoreHeader = []string{"date", "time", "score", "total", "percentage", "points", "avg_points", "mode"}

// ScoreLog is the append-only CSV file of finished rounds.
type ScoreLog struct {
	path string
}

// NewScoreLog returns a score log stored at path. The file is created on first append.
func NewScoreLog(path string) *ScoreLog {
	return &ScoreLog{path: path}
}

// Path returns the file location.
func (l *ScoreLog) Path() string {
	return l.path
}

// Append writes one record, adding the header when the file is new.
func (l *ScoreLog) Append(rec model.ScoreRecord) (err error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create score directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open score log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close score log: %w", cerr)
		}
	}()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat score log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(scoreHeader); err != nil {
			return fmt.Errorf("failed to write score header: %w", err)
		}
	}
	mode := rec.Mode
	if mode == "" {
		mode = model.ModeNormal
	}
	row := []string{
		rec.Date,
		rec.Time,
		strconv.Itoa(rec.Score),
		strconv.Itoa(rec.Total),
		strconv.Itoa(rec.Percentage),
		strconv.Itoa(rec.Points),
		strconv.Itoa(rec.AvgPoints),
		string(mode),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write score row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush score log: %w", err)
	}
	return nil
}

// Read returns every record in file order. A missing file yields no records.
// Rows without a mode column read as normal; rows that cannot be parsed are skipped.
func (l *ScoreLog) Read() ([]model.ScoreRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open score log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return readScores(f)
}

func readScores(r io.Reader) ([]model.ScoreRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read score header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var records []model.ScoreRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("failed to read score log: %w", err)
		}
		rec, ok := parseScoreRow(row, cols)
		if ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func parseScoreRow(row []string, cols map[string]int) (model.ScoreRecord, bool) {
	field := func(name string) (string, bool) {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}
	number := func(name string) (int, bool) {
		v, ok := field(name)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(v)
		return n, err == nil
	}

	var rec model.ScoreRecord
	var ok bool
	if rec.Date, ok = field("date"); !ok {
		return rec, false
	}
	rec.Time, _ = field("time")
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"score", &rec.Score},
		{"total", &rec.Total},
		{"percentage", &rec.Percentage},
		{"points", &rec.Points},
		{"avg_points", &rec.AvgPoints},
	} {
		if *f.dst, ok = number(f.name); !ok {
			return rec, false
		}
	}
	rec.Mode = model.ModeNormal
	if v, ok := field("mode"); ok && v != "" {
		if mode, err := model.ParseMode(v); err == nil {
			rec.Mode = mode
		}
	}
	return rec, true
}
