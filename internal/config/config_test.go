package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Game.Deck)
	assert.Nil(t, cfg.Scoring.Points)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[game]
deck = "日本語::Core"
mode = "time_attack"
time-attack = 90
filter = ["young", "mature"]

[anki]
url = "http://127.0.0.1:8765"

[dictionary]
cache-size = 64

[scoring]
points = [200, 100, 50, 20, 5]
multiplier-cap = 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Game.Deck)
	assert.Equal(t, "日本語::Core", *cfg.Game.Deck)
	assert.Equal(t, "time_attack", *cfg.Game.Mode)
	assert.Equal(t, 90, *cfg.Game.TimeAttack)
	assert.Nil(t, cfg.Game.Preload)
	assert.Equal(t, []string{"young", "mature"}, cfg.Game.Filter)
	assert.Equal(t, "http://127.0.0.1:8765", *cfg.Anki.URL)
	assert.Equal(t, 64, *cfg.Dictionary.CacheSize)
	assert.Nil(t, cfg.Dictionary.URL)
	assert.Equal(t, []int{200, 100, 50, 20, 5}, cfg.Scoring.Points)
	assert.InDelta(t, 2.5, *cfg.Scoring.MultiplierCap, 1e-9)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[game]\ndecks = \"x\"\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "game.decks")

	require.NoError(t, os.WriteFile(path, []byte("[game\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to decode config")
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, "/tmp/cfg/yomiquiz/config.toml", DefaultConfigPath())
	assert.Equal(t, "/tmp/data/yomiquiz/history.db", DefaultDBPath())
	assert.Equal(t, "/tmp/data/yomiquiz/save.json", DefaultSavePath())
	assert.Equal(t, "/tmp/data/yomiquiz/scores.csv", DefaultScoresPath())
	assert.Equal(t, "/tmp/data/yomiquiz/yomiquiz.log", DefaultLogPath())
}
