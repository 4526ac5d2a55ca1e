// Package stats contains score statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

const sparkChars = " .:-=+*#%@"

// RoundAccuracy returns the share of correct answers in a round, from 0 to 1.
func RoundAccuracy(r model.RoundAggregate) float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample stretches or averages values to exactly width points.
func Resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	if len(values) >= width {
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

// RenderSummary prints totals over the stored rounds.
func RenderSummary(w io.Writer, rounds []model.RoundAggregate) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	var answered, correct, points, best int
	for _, r := range rounds {
		answered += r.Total
		correct += r.Correct
		points += r.Points
		best = max(best, r.Points)
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", len(rounds)),
		fmt.Sprintf("Words answered: %d", answered),
		fmt.Sprintf("Accuracy: %d%%", percent(correct, answered)),
		fmt.Sprintf("Avg points/round: %d", points/len(rounds)),
		fmt.Sprintf("Best round: %d", best),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints sparklines of points and accuracy per round, smoothed over window
// rounds and fitted to width columns.
func RenderCurves(w io.Writer, rounds []model.RoundAggregate, window, width int) error {
	if len(rounds) == 0 {
		return nil
	}
	points := make([]float64, len(rounds))
	accs := make([]float64, len(rounds))
	for i, r := range rounds {
		points[i] = float64(r.Points)
		accs[i] = RoundAccuracy(r) * 100
	}
	const label = "Accuracy "
	width = max(width-len(label)-2, 10)
	if len(rounds) < width {
		width = len(rounds)
	}
	rows := []struct {
		name   string
		values []float64
	}{
		{"Points", points},
		{"Accuracy", accs},
	}
	if _, err := fmt.Fprintln(w, "Progress"); err != nil {
		return err
	}
	for _, row := range rows {
		line := Sparkline(Resample(MovingAverage(row.values, window), width))
		if _, err := fmt.Fprintf(w, "%-*s|%s|\n", len(label), row.name, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return part * 100 / total
}
