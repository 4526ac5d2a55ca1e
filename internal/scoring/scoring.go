// Package scoring turns answer speed and streaks into points.
package scoring

import (
	"fmt"
	"math"
	"time"
)

// Rules holds the speed bands and streak multiplier settings.
// Points has one more entry than Thresholds: the last entry applies at or beyond the
// slowest threshold.
type Rules struct {
	Thresholds     []float64
	Points         []int
	MultiplierStep float64
	MultiplierCap  float64
}

// DefaultRules returns the stock scoring bands.
func DefaultRules() Rules {
	return Rules{
		Thresholds:     []float64{2, 4, 6, 10},
		Points:         []int{100, 75, 50, 25, 10},
		MultiplierStep: 0.1,
		MultiplierCap:  3.0,
	}
}

// Validate checks that the bands are consistent.
func (r Rules) Validate() error {
	if len(r.Points) != len(r.Thresholds)+1 {
		return fmt.Errorf("scoring needs %d point values for %d thresholds, got %d", len(r.Thresholds)+1, len(r.Thresholds), len(r.Points))
	}
	for i := 1; i < len(r.Thresholds); i++ {
		if r.Thresholds[i] <= r.Thresholds[i-1] {
			return fmt.Errorf("scoring thresholds must be increasing")
		}
	}
	if r.MultiplierStep < 0 {
		return fmt.Errorf("multiplier step must be >= 0")
	}
	if r.MultiplierCap < 1 {
		return fmt.Errorf("multiplier cap must be >= 1")
	}
	return nil
}

// ClassifySpeed returns the base points for an answer that took elapsed.
func (r Rules) ClassifySpeed(elapsed time.Duration) int {
	secs := elapsed.Seconds()
	for i, limit := range r.Thresholds {
		if secs < limit {
			return r.Points[i]
		}
	}
	return r.Points[len(r.Points)-1]
}

// StreakMultiplier returns the bonus multiplier for the current streak.
// Streaks at or below zero count as one.
func (r Rules) StreakMultiplier(streak int) float64 {
	if streak < 1 {
		streak = 1
	}
	return math.Min(1.0+float64(streak-1)*r.MultiplierStep, r.MultiplierCap)
}

// PointsEarned combines speed and streak into the points for one correct answer.
func (r Rules) PointsEarned(elapsed time.Duration, streak int) int {
	base := r.ClassifySpeed(elapsed)
	return int(math.Floor(float64(base) * r.StreakMultiplier(streak)))
}

// Percentage returns floor(correct/total*100), or 0 when nothing was attempted.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return correct * 100 / total
}

// Average returns floor(points/total), or 0 when nothing was attempted.
func Average(points, total int) int {
	if total <= 0 {
		return 0
	}
	return points / total
}
