// Package maturity classifies flashcards by study progress.
package maturity

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

// Level is a study-maturity bucket.
type Level string

// Maturity levels, in display order.
const (
	New      Level = "new"
	Learning Level = "learning"
	Young    Level = "young"
	Mature   Level = "mature"
)

// MatureInterval is the review interval (days) at which a card counts as mature.
const MatureInterval = 21

// Card type codes reported by the flashcard source.
const (
	typeNew      = 0
	typeLearning = 1
	typeReview   = 2
)

// Levels lists every level in display order.
var Levels = []Level{New, Learning, Young, Mature}

// DisplayName returns a human label for the level.
func (l Level) DisplayName() string {
	switch l {
	case New:
		return "New Cards"
	case Learning:
		return "Learning Cards"
	case Young:
		return fmt.Sprintf("Young Cards (<%d days)", MatureInterval)
	case Mature:
		return fmt.Sprintf("Mature Cards (≥%d days)", MatureInterval)
	default:
		return string(l)
	}
}

// ParseLevel converts a level name.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Levels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown maturity level %q", s)
}

// Classify returns the maturity level of a card. Unknown type codes count as new.
func Classify(card model.Card) Level {
	switch card.Type {
	case typeLearning:
		return Learning
	case typeReview:
		if card.Interval < MatureInterval {
			return Young
		}
		return Mature
	default:
		return New
	}
}

// Filter keeps cards whose level is in levels. An empty levels list keeps everything.
func Filter(cards []model.Card, levels []Level) []model.Card {
	if len(levels) == 0 {
		return cards
	}
	keep := make(map[Level]bool, len(levels))
	for _, l := range levels {
		keep[l] = true
	}
	out := make([]model.Card, 0, len(cards))
	for _, card := range cards {
		if keep[Classify(card)] {
			out = append(out, card)
		}
	}
	return out
}

// Analyze counts cards per level. Every level is present in the result.
func Analyze(cards []model.Card) map[Level]int {
	counts := make(map[Level]int, len(Levels))
	for _, l := range Levels {
		counts[l] = 0
	}
	for _, card := range cards {
		counts[Classify(card)]++
	}
	return counts
}

// AvailableLevels returns the levels that have at least one card, in display order.
func AvailableLevels(cards []model.Card) []Level {
	counts := Analyze(cards)
	var out []Level
	for _, l := range Levels {
		if counts[l] > 0 {
			out = append(out, l)
		}
	}
	return out
}
