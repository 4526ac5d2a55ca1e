package maturity

import "strings"

// Selection is the player's chosen set of levels. An empty selection means no filtering.
type Selection struct {
	levels []Level
}

// NewSelection builds a selection from levels, dropping duplicates.
func NewSelection(levels ...Level) Selection {
	var s Selection
	for _, l := range levels {
		s.Add(l)
	}
	return s
}

// Add includes a level.
func (s *Selection) Add(l Level) {
	if !s.Contains(l) {
		s.levels = append(s.levels, l)
	}
}

// Remove excludes a level.
func (s *Selection) Remove(l Level) {
	for i, cur := range s.levels {
		if cur == l {
			s.levels = append(s.levels[:i], s.levels[i+1:]...)
			return
		}
	}
}

// Toggle flips a level on or off.
func (s *Selection) Toggle(l Level) {
	if s.Contains(l) {
		s.Remove(l)
		return
	}
	s.Add(l)
}

// Clear removes every level.
func (s *Selection) Clear() {
	s.levels = nil
}

// Contains reports whether l is selected.
func (s Selection) Contains(l Level) bool {
	for _, cur := range s.levels {
		if cur == l {
			return true
		}
	}
	return false
}

// Active reports whether the selection filters anything.
func (s Selection) Active() bool {
	return len(s.levels) > 0
}

// Levels returns a copy of the selected levels.
func (s Selection) Levels() []Level {
	out := make([]Level, len(s.levels))
	copy(out, s.levels)
	return out
}

// Summary describes the selection for display.
func (s Selection) Summary() string {
	if !s.Active() {
		return "All Cards"
	}
	names := make([]string, 0, len(s.levels))
	for _, l := range s.levels {
		names = append(names, l.DisplayName())
	}
	return strings.Join(names, ", ")
}
