package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

// HistorySource is the read side of the answer history.
type HistorySource interface {
	ListRounds(ctx context.Context, mode model.Mode, since *time.Time) ([]model.RoundAggregate, error)
	WordAggregates(ctx context.Context, window int) ([]model.WordAggregate, error)
}

// ReportConfig selects which history a report covers.
type ReportConfig struct {
	Mode   model.Mode
	Since  *time.Time
	Last   int
	Window int
	Top    int
}

// Report contains precomputed data for history rendering.
type Report struct {
	Rounds    []model.RoundAggregate
	WeakWords []model.WordAggregate
	Frequent  []string
}

// BuildReport loads and prepares data for history rendering. Word statistics cover the
// last Window rounds.
func BuildReport(ctx context.Context, src HistorySource, cfg ReportConfig) (Report, error) {
	rounds, err := src.ListRounds(ctx, cfg.Mode, cfg.Since)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(rounds) > cfg.Last {
		rounds = rounds[len(rounds)-cfg.Last:]
	}
	window := cfg.Window
	if window <= 0 {
		window = len(rounds)
	}
	aggs, err := src.WordAggregates(ctx, window)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Rounds:    rounds,
		WeakWords: SelectWeakWords(aggs, cfg.Top),
		Frequent:  TopWordsByFrequency(aggs, cfg.Top),
	}, nil
}
