// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game       GameConfig       `toml:"game"`
	Anki       AnkiConfig       `toml:"anki"`
	Dictionary DictionaryConfig `toml:"dictionary"`
	Scoring    ScoringConfig    `toml:"scoring"`
}

// GameConfig maps round settings.
type GameConfig struct {
	Deck              *string  `toml:"deck"`
	Mode              *string  `toml:"mode"`
	Preload           *int     `toml:"preload"`
	TimeAttack        *int     `toml:"time-attack"`
	Countdown         *int     `toml:"countdown"`
	FeedbackCorrect   *int     `toml:"feedback-correct"`
	FeedbackIncorrect *int     `toml:"feedback-incorrect"`
	Filter            []string `toml:"filter"`
}

// AnkiConfig maps the flashcard source settings.
type AnkiConfig struct {
	URL *string `toml:"url"`
}

// DictionaryConfig maps the dictionary lookup settings.
type DictionaryConfig struct {
	URL       *string `toml:"url"`
	CacheSize *int    `toml:"cache-size"`
	Timeout   *int    `toml:"timeout"`
}

// ScoringConfig maps the point rules. Points are listed fastest band first.
type ScoringConfig struct {
	Points         []int     `toml:"points"`
	Thresholds     []float64 `toml:"thresholds"`
	MultiplierStep *float64  `toml:"multiplier-step"`
	MultiplierCap  *float64  `toml:"multiplier-cap"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
