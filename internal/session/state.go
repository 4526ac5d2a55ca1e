// Package session runs a quiz round: the game states, scoring, answer checking, and
// saving and resuming progress.
package session

// State is the screen the game is on.
type State int

// Game states.
const (
	StateLoading State = iota
	StateLoadingError
	StateMenu
	StateFilterSelect
	StateModeSelect
	StateCountdown
	StatePlaying
	StatePaused
	StateSaving
	StateLoadingSave
	StateGameOver
	StateReviewIncorrect
	StateLeaderboard
)

var stateNames = map[State]string{
	StateLoading:         "loading",
	StateLoadingError:    "loading-error",
	StateMenu:            "menu",
	StateFilterSelect:    "filter-select",
	StateModeSelect:      "mode-select",
	StateCountdown:       "countdown",
	StatePlaying:         "playing",
	StatePaused:          "paused",
	StateSaving:          "saving",
	StateLoadingSave:     "loading-save",
	StateGameOver:        "game-over",
	StateReviewIncorrect: "review-incorrect",
	StateLeaderboard:     "leaderboard",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// InRound reports whether a round is in progress in this state.
func (s State) InRound() bool {
	return s == StateCountdown || s == StatePlaying || s == StatePaused || s == StateSaving
}
