package scoring

import "time"

// Tally tracks the running score of a round.
type Tally struct {
	Correct    int
	Total      int
	Points     int
	Streak     int
	LastPoints int
}

// RecordCorrect bumps the streak, scores the answer, and returns the points earned.
func (t *Tally) RecordCorrect(rules Rules, elapsed time.Duration) int {
	t.Total++
	t.Correct++
	t.Streak++
	t.LastPoints = rules.PointsEarned(elapsed, t.Streak)
	t.Points += t.LastPoints
	return t.LastPoints
}

// RecordIncorrect counts the attempt and breaks the streak.
func (t *Tally) RecordIncorrect() {
	t.Total++
	t.Streak = 0
	t.LastPoints = 0
}

// Incorrect returns the number of missed questions.
func (t Tally) Incorrect() int {
	return t.Total - t.Correct
}

// Percentage returns the share of correct answers.
func (t Tally) Percentage() int {
	return Percentage(t.Correct, t.Total)
}

// Average returns points per attempted question.
func (t Tally) Average() int {
	return Average(t.Points, t.Total)
}

// Reset zeroes the tally for a new round.
func (t *Tally) Reset() {
	*t = Tally{}
}
