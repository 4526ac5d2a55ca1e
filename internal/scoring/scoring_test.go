package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func secs(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

func TestClassifySpeedBands(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		elapsed float64
		want    int
	}{
		{0, 100},
		{1.99, 100},
		{2, 75},
		{3.5, 75},
		{4, 50},
		{5.99, 50},
		{6, 25},
		{9.99, 25},
		{10, 10},
		{120, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.ClassifySpeed(secs(tt.elapsed)), "elapsed %.2fs", tt.elapsed)
	}
}

func TestStreakMultiplier(t *testing.T) {
	r := DefaultRules()
	assert.InDelta(t, 1.0, r.StreakMultiplier(0), 1e-9)
	assert.InDelta(t, 1.0, r.StreakMultiplier(-4), 1e-9)
	assert.InDelta(t, 1.0, r.StreakMultiplier(1), 1e-9)
	assert.InDelta(t, 1.5, r.StreakMultiplier(6), 1e-9)
	assert.InDelta(t, 3.0, r.StreakMultiplier(21), 1e-9)
	assert.InDelta(t, 3.0, r.StreakMultiplier(500), 1e-9)

	prev := r.StreakMultiplier(0)
	for s := 1; s <= 40; s++ {
		cur := r.StreakMultiplier(s)
		require.GreaterOrEqual(t, cur, prev, "streak %d", s)
		require.LessOrEqual(t, cur, 3.0)
		prev = cur
	}
}

func TestPointsEarnedFormula(t *testing.T) {
	r := DefaultRules()
	assert.Equal(t, 150, r.PointsEarned(secs(1.5), 6))
	assert.Equal(t, 100, r.PointsEarned(secs(1.5), 1))
	assert.Equal(t, 300, r.PointsEarned(secs(0.5), 25))
	assert.Equal(t, 10, r.PointsEarned(secs(30), 0))

	for _, e := range []float64{0.5, 2.5, 4.5, 7, 12} {
		for s := 1; s <= 30; s++ {
			want := int(math.Floor(float64(r.ClassifySpeed(secs(e))) * math.Min(1+float64(s-1)*0.1, 3.0)))
			require.Equal(t, want, r.PointsEarned(secs(e), s), "elapsed %.1f streak %d", e, s)
		}
	}
}

func TestPercentageAndAverage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 0, Average(0, 0))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 29, Percentage(29, 100))
	assert.Equal(t, 100, Percentage(4, 4))
	assert.Equal(t, 41, Average(125, 3))
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	bad := DefaultRules()
	bad.Points = bad.Points[:3]
	assert.Error(t, bad.Validate())

	bad = DefaultRules()
	bad.Thresholds = []float64{2, 2, 6, 10}
	assert.Error(t, bad.Validate())

	bad = DefaultRules()
	bad.MultiplierCap = 0.5
	assert.Error(t, bad.Validate())
}

func TestTally(t *testing.T) {
	r := DefaultRules()
	var tally Tally

	assert.Equal(t, 100, tally.RecordCorrect(r, secs(1)))
	assert.Equal(t, 82, tally.RecordCorrect(r, secs(3)))
	require.Equal(t, 2, tally.Streak)
	require.Equal(t, 182, tally.Points)

	tally.RecordIncorrect()
	assert.Equal(t, 0, tally.Streak)
	assert.Equal(t, 0, tally.LastPoints)
	assert.Equal(t, 182, tally.Points)
	assert.Equal(t, 3, tally.Total)
	assert.Equal(t, 2, tally.Correct)
	assert.Equal(t, 1, tally.Incorrect())
	assert.Equal(t, 66, tally.Percentage())
	assert.Equal(t, 60, tally.Average())

	tally.Reset()
	assert.Equal(t, Tally{}, tally)
}
