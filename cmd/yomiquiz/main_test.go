package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/yomiquiz/internal/config"
	"github.com/verte-zerg/yomiquiz/internal/maturity"
	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/scoring"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := config.DefaultConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var b strings.Builder
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		b.WriteString(line + "\n")
	}
	writeConfig(t, b.String())

	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	require.NoError(t, err)
	require.NotNil(t, cfg.Game.Deck)
	assert.Equal(t, defaultDeck, *cfg.Game.Deck)
	assert.Equal(t, defaultTimeAttack, *cfg.Game.TimeAttack)
	assert.Equal(t, []string{"young", "mature"}, cfg.Game.Filter)
	assert.Equal(t, scoring.DefaultRules().Points, cfg.Scoring.Points)
	assert.Equal(t, scoring.DefaultRules().Thresholds, cfg.Scoring.Thresholds)
	assert.Equal(t, defaultDictTimeout, *cfg.Dictionary.Timeout)
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	writeConfig(t, `
[game]
deck = "Core 2k"
mode = "time_attack"
countdown = 0
feedback-correct = 500

[scoring]
multiplier-cap = 2.0
`)
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--mode", "fast", "--filter", "young,mature"}))

	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "Core 2k", cfg.Deck)
	assert.Equal(t, model.ModeFast, cfg.DefaultPlayMode)
	assert.Equal(t, 0, cfg.CountdownTicks)
	assert.Equal(t, 500*time.Millisecond, cfg.FeedbackCorrect)
	assert.Equal(t, 3*time.Second, cfg.FeedbackWrong)
	assert.Equal(t, []string{"young", "mature"}, cfg.FilterLevels)
	assert.InDelta(t, 2.0, cfg.MultiplierCap, 1e-9)
	assert.Equal(t, config.DefaultSavePath(), cfg.SaveFilePath)

	settings, err := settingsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, []maturity.Level{maturity.Young, maturity.Mature}, settings.Filter)
	assert.Equal(t, model.ModeFast, settings.Mode)
	assert.Equal(t, 0, settings.CountdownTicks)
	assert.InDelta(t, 2.0, settings.Rules.MultiplierCap, 1e-9)
}

func TestResolveConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
	}{
		{name: "mode", args: []string{"--mode", "slow"}},
		{name: "filter", args: []string{"--filter", "ancient"}},
		{name: "time attack", args: []string{"--time-attack", "0"}},
		{name: "empty deck", args: []string{"--deck", "  "}},
		{name: "scoring bands", content: "[scoring]\npoints = [1, 2]\n"},
		{name: "unknown key", content: "[game]\nspeed = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.content)
			cmd := newRootCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))
			_, err := resolveConfig(cmd)
			assert.Error(t, err)
		})
	}
}

func TestRenderMaturity(t *testing.T) {
	cards := []model.Card{
		{ID: 1, Type: 0},
		{ID: 2, Type: 1},
		{ID: 3, Type: 2, Interval: 5},
		{ID: 4, Type: 2, Interval: 30},
		{ID: 5, Type: 2, Interval: 40},
	}
	var buf bytes.Buffer
	require.NoError(t, renderMaturity(&buf, "Core", cards))
	out := buf.String()
	assert.Contains(t, out, "Core: 5 cards")
	assert.Regexp(t, `Mature Cards \(≥21 days\)\s+2\n`, out)
	assert.Regexp(t, `New Cards\s+1\n`, out)
}

func TestParseSince(t *testing.T) {
	since, err := parseSince("")
	require.NoError(t, err)
	assert.Nil(t, since)

	since, err = parseSince("2025-03-01")
	require.NoError(t, err)
	require.NotNil(t, since)
	assert.Equal(t, 2025, since.Year())

	_, err = parseSince("03/01/2025")
	assert.Error(t, err)
}

func TestParseModeFilter(t *testing.T) {
	mode, err := parseModeFilter("")
	require.NoError(t, err)
	assert.Equal(t, model.Mode(""), mode)

	mode, err = parseModeFilter("time-attack")
	require.NoError(t, err)
	assert.Equal(t, model.ModeTimeAttack, mode)

	_, err = parseModeFilter("sprint")
	assert.Error(t, err)
}
