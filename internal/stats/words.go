package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

func wordAccuracy(agg model.WordAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}

// SelectWeakWords returns the top lowest-accuracy words, most frequently missed first
// among equals.
func SelectWeakWords(aggs []model.WordAggregate, top int) []model.WordAggregate {
	candidates := make([]model.WordAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Incorrect > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai, aj := wordAccuracy(candidates[i]), wordAccuracy(candidates[j])
		if ai != aj {
			return ai < aj
		}
		if candidates[i].Incorrect != candidates[j].Incorrect {
			return candidates[i].Incorrect > candidates[j].Incorrect
		}
		return candidates[i].Word < candidates[j].Word
	})
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}

// TopWordsByFrequency returns the n most answered words.
func TopWordsByFrequency(aggs []model.WordAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	sorted := make([]model.WordAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ti := sorted[i].Correct + sorted[i].Incorrect
		tj := sorted[j].Correct + sorted[j].Incorrect
		if ti == tj {
			return sorted[i].Word < sorted[j].Word
		}
		return ti > tj
	})
	n = min(n, len(sorted))
	out := make([]string, 0, n)
	for _, agg := range sorted[:n] {
		out = append(out, agg.Word)
	}
	return out
}

// RenderWordTable prints per-word aggregates in the given order.
func RenderWordTable(w io.Writer, title string, aggs []model.WordAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No word stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	headers := []string{"Word", "Accuracy", "Avg Time (s)", "Correct", "Incorrect"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		total := agg.Correct + agg.Incorrect
		avg := 0.0
		if total > 0 {
			avg = float64(agg.ElapsedSumMs) / float64(total) / 1000
		}
		rows = append(rows, []string{
			agg.Word,
			fmt.Sprintf("%.1f%%", wordAccuracy(agg)*100),
			fmt.Sprintf("%.1f", avg),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// IncorrectLines formats missed answers as table lines, header first.
func IncorrectLines(answers []model.IncorrectAnswer) []string {
	headers := []string{"Word", "Reading", "Your answer"}
	rows := make([][]string, 0, len(answers))
	for _, a := range answers {
		rows = append(rows, []string{a.Word, a.CorrectReading, a.YourAnswer})
	}
	return formatTable(headers, rows, nil)
}
