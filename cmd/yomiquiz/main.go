// Package main provides the CLI entrypoint for yomiquiz.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/verte-zerg/yomiquiz/internal/anki"
	"github.com/verte-zerg/yomiquiz/internal/config"
	"github.com/verte-zerg/yomiquiz/internal/jisho"
	"github.com/verte-zerg/yomiquiz/internal/logging"
	"github.com/verte-zerg/yomiquiz/internal/maturity"
	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/preload"
	"github.com/verte-zerg/yomiquiz/internal/scoring"
	"github.com/verte-zerg/yomiquiz/internal/session"
	"github.com/verte-zerg/yomiquiz/internal/stats"
	"github.com/verte-zerg/yomiquiz/internal/statsui"
	"github.com/verte-zerg/yomiquiz/internal/store"
	"github.com/verte-zerg/yomiquiz/internal/tui"
)

const (
	defaultDeck              = "日本語::Mining"
	defaultMode              = "normal"
	defaultTimeAttack        = 60
	defaultCountdown         = 3
	defaultFeedbackCorrect   = 2000
	defaultFeedbackIncorrect = 3000
	defaultDictTimeout       = 10
	defaultAnkiTimeout       = 30 * time.Second
	defaultCurveWindow       = 5
	defaultWordsTop          = 15
	defaultWordsWindow       = 50
	defaultTermWidth         = 80
	defaultLeaderboard       = 5
)

var (
	playDeck       string
	playMode       string
	playPreload    int
	playTimeAttack int
	playCountdown  int
	playFilter     []string
	playAnkiURL    string
	playDictURL    string
	playDebug      bool

	scoresMode        string
	scoresSince       string
	scoresLast        int
	scoresCurveWindow int

	wordsTop    int
	wordsWindow int

	statsMode   string
	statsSince  string
	statsLast   int
	statsWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "yomiquiz",
		Short:         "Kanji reading quiz over an Anki deck",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&playDeck, "deck", defaultDeck, "Anki deck name")
	rootCmd.PersistentFlags().StringVar(&playAnkiURL, "anki-url", anki.DefaultURL, "AnkiConnect endpoint")
	rootCmd.Flags().StringVar(&playMode, "mode", defaultMode, "default game mode (normal, fast, time_attack)")
	rootCmd.Flags().IntVar(&playPreload, "preload", preload.DefaultDepth, "number of words to look up ahead")
	rootCmd.Flags().IntVar(&playTimeAttack, "time-attack", defaultTimeAttack, "time attack round length in seconds")
	rootCmd.Flags().IntVar(&playCountdown, "countdown", defaultCountdown, "countdown ticks before a round")
	rootCmd.Flags().StringSliceVar(&playFilter, "filter", nil, "maturity levels to quiz (new, learning, young, mature)")
	rootCmd.Flags().StringVar(&playDictURL, "dict-url", jisho.DefaultURL, "dictionary search endpoint")
	rootCmd.Flags().BoolVar(&playDebug, "debug", false, "verbose human-readable log file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDecksCmd())
	rootCmd.AddCommand(newMaturityCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	settings, err := settingsFromConfig(cfg)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFilePath, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() {
		// Best-effort flush.
		_ = logger.Sync()
	}()

	st, err := store.Open(cfg.HistoryDBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	dict, err := jisho.NewCached(jisho.New(cfg.DictionaryURL, cfg.DictionaryWait, logger.Named("jisho")), cfg.DictionaryCache)
	if err != nil {
		return err
	}

	machine, err := session.New(settings, session.Deps{
		Cards:   anki.New(cfg.AnkiURL, defaultAnkiTimeout),
		Dict:    dict,
		Scores:  store.NewScoreLog(cfg.ScoresFilePath),
		Saves:   store.NewSaveSlot(cfg.SaveFilePath),
		History: st,
		Logger:  logger.Named("session"),
	})
	if err != nil {
		return err
	}
	defer machine.Close()

	logger.Info("game started", zap.String("deck", cfg.Deck), zap.String("mode", string(cfg.DefaultPlayMode)))
	program := tea.NewProgram(tui.NewModel(machine), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveConfig merges the config file under the command line flags.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "deck", &playDeck, fileCfg.Game.Deck)
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Game.Mode)
	applyIntConfig(cmd, "preload", &playPreload, fileCfg.Game.Preload)
	applyIntConfig(cmd, "time-attack", &playTimeAttack, fileCfg.Game.TimeAttack)
	applyIntConfig(cmd, "countdown", &playCountdown, fileCfg.Game.Countdown)
	applyStringsConfig(cmd, "filter", &playFilter, fileCfg.Game.Filter)
	applyStringConfig(cmd, "anki-url", &playAnkiURL, fileCfg.Anki.URL)
	applyStringConfig(cmd, "dict-url", &playDictURL, fileCfg.Dictionary.URL)

	mode, err := model.ParseMode(playMode)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --mode: %w", err)
	}

	rules := scoring.DefaultRules()
	if fileCfg.Scoring.Points != nil {
		rules.Points = fileCfg.Scoring.Points
	}
	if fileCfg.Scoring.Thresholds != nil {
		rules.Thresholds = fileCfg.Scoring.Thresholds
	}
	if fileCfg.Scoring.MultiplierStep != nil {
		rules.MultiplierStep = *fileCfg.Scoring.MultiplierStep
	}
	if fileCfg.Scoring.MultiplierCap != nil {
		rules.MultiplierCap = *fileCfg.Scoring.MultiplierCap
	}

	cfg := model.Config{
		Deck:            strings.TrimSpace(playDeck),
		AnkiURL:         playAnkiURL,
		DictionaryURL:   playDictURL,
		DictionaryCache: intOr(fileCfg.Dictionary.CacheSize, jisho.DefaultCacheSize),
		DictionaryWait:  time.Duration(intOr(fileCfg.Dictionary.Timeout, defaultDictTimeout)) * time.Second,
		PreloadDepth:    playPreload,
		TimeAttack:      time.Duration(playTimeAttack) * time.Second,
		CountdownTicks:  playCountdown,
		FeedbackCorrect: time.Duration(intOr(fileCfg.Game.FeedbackCorrect, defaultFeedbackCorrect)) * time.Millisecond,
		FeedbackWrong:   time.Duration(intOr(fileCfg.Game.FeedbackIncorrect, defaultFeedbackIncorrect)) * time.Millisecond,
		FilterLevels:    playFilter,
		SpeedPoints:     rules.Points,
		SpeedThresholds: rules.Thresholds,
		MultiplierStep:  rules.MultiplierStep,
		MultiplierCap:   rules.MultiplierCap,
		SaveFilePath:    config.DefaultSavePath(),
		ScoresFilePath:  config.DefaultScoresPath(),
		HistoryDBPath:   config.DefaultDBPath(),
		LogFilePath:     config.DefaultLogPath(),
		Debug:           playDebug,
		DefaultPlayMode: mode,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// settingsFromConfig converts the resolved config into session settings.
func settingsFromConfig(cfg model.Config) (session.Settings, error) {
	settings := session.DefaultSettings(cfg.Deck)
	settings.Mode = cfg.DefaultPlayMode
	settings.Rules = scoring.Rules{
		Thresholds:     cfg.SpeedThresholds,
		Points:         cfg.SpeedPoints,
		MultiplierStep: cfg.MultiplierStep,
		MultiplierCap:  cfg.MultiplierCap,
	}
	settings.PreloadDepth = cfg.PreloadDepth
	settings.TimeAttack = cfg.TimeAttack
	settings.CountdownTicks = cfg.CountdownTicks
	settings.FeedbackCorrect = cfg.FeedbackCorrect
	settings.FeedbackWrong = cfg.FeedbackWrong
	for _, name := range cfg.FilterLevels {
		level, err := maturity.ParseLevel(name)
		if err != nil {
			return session.Settings{}, fmt.Errorf("invalid --filter: %w", err)
		}
		settings.Filter = append(settings.Filter, level)
	}
	return settings, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newDecksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List Anki decks",
		Args:  cobra.NoArgs,
		RunE:  runDecksCmd,
	}
}

func runDecksCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names, err := anki.New(cfg.AnkiURL, defaultAnkiTimeout).DeckNames(cmd.Context())
	if err != nil {
		logErrln(session.DescribeLoadError(err, cfg.Deck))
		return fmt.Errorf("failed to list decks: %w", err)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newMaturityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maturity",
		Short: "Show card maturity of the deck",
		Args:  cobra.NoArgs,
		RunE:  runMaturityCmd,
	}
}

func runMaturityCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	client := anki.New(cfg.AnkiURL, defaultAnkiTimeout)
	cards, err := fetchCards(cmd.Context(), client, cfg.Deck)
	if err != nil {
		logErrln(session.DescribeLoadError(err, cfg.Deck))
		return fmt.Errorf("failed to load deck: %w", err)
	}
	return renderMaturity(cmd.OutOrStdout(), cfg.Deck, cards)
}

// fetchCards asks for the deck list and the deck's card ids at the same time.
func fetchCards(ctx context.Context, client *anki.Client, deck string) ([]model.Card, error) {
	var names []string
	var ids []int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		names, err = client.DeckNames(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ids, err = client.CardIDs(gctx, deck)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !slices.Contains(names, deck) || len(ids) == 0 {
		return nil, anki.ErrEmptyDeck
	}
	return client.CardsInfo(ctx, ids)
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show high scores and progress",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	cmd.Flags().StringVar(&scoresMode, "mode", "", "only rounds of this mode in the progress curves")
	cmd.Flags().StringVar(&scoresSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&scoresLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&scoresCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	if scoresCurveWindow <= 0 {
		return fmt.Errorf("--curve-window must be > 0")
	}
	mode, err := parseModeFilter(scoresMode)
	if err != nil {
		return err
	}
	since, err := parseSince(scoresSince)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	records, err := store.NewScoreLog(config.DefaultScoresPath()).Read()
	if err != nil {
		return fmt.Errorf("failed to read score log: %w", err)
	}
	if err := stats.RenderLeaderboard(out, stats.HighScores(records, defaultLeaderboard)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	report, err := stats.BuildReport(cmd.Context(), st, stats.ReportConfig{
		Mode:  mode,
		Since: since,
		Last:  scoresLast,
	})
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(out, report.Rounds); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCurves(out, report.Rounds, scoresCurveWindow, terminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Show the weakest words",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().IntVar(&wordsTop, "top", defaultWordsTop, "number of words to list")
	cmd.Flags().IntVar(&wordsWindow, "window", defaultWordsWindow, "number of recent rounds to consider")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	if wordsTop <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	if wordsWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	report, err := stats.BuildReport(cmd.Context(), st, stats.ReportConfig{
		Window: wordsWindow,
		Top:    wordsTop,
	})
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderWordTable(out, "Weakest words", report.WeakWords); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(report.Frequent) > 0 {
		if _, err := fmt.Fprintf(out, "Most practised: %s\n", strings.Join(report.Frequent, " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse history interactively",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "only rounds of this mode")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&statsWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	mode, err := parseModeFilter(statsMode)
	if err != nil {
		return err
	}
	since, err := parseSince(statsSince)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	model := statsui.NewModel(st, store.NewScoreLog(config.DefaultScoresPath()), stats.ReportConfig{
		Mode:   mode,
		Since:  since,
		Last:   statsLast,
		Window: statsWindow,
		Top:    defaultWordsTop,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

// parseModeFilter accepts an empty value meaning every mode.
func parseModeFilter(value string) (model.Mode, error) {
	if value == "" {
		return "", nil
	}
	mode, err := model.ParseMode(value)
	if err != nil {
		return "", fmt.Errorf("invalid --mode: %w", err)
	}
	return mode, nil
}

func parseSince(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --since value: %w", err)
	}
	return &parsed, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

func renderMaturity(w io.Writer, deck string, cards []model.Card) error {
	counts := maturity.Analyze(cards)
	if _, err := fmt.Fprintf(w, "%s: %d cards\n", deck, len(cards)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, level := range maturity.Levels {
		if _, err := fmt.Fprintf(w, "  %-24s %5d\n", level.DisplayName(), counts[level]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringsConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func defaultConfigTemplate() string {
	rules := scoring.DefaultRules()
	return fmt.Sprintf(`# yomiquiz configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# deck = %q                 # Anki deck name
# mode = %q                 # Mode preselected in the mode menu (normal, fast, time_attack)
# preload = %d              # Words looked up ahead of the player
# time-attack = %d          # Time attack round length in seconds
# countdown = %d            # Countdown ticks before a round
# feedback-correct = %d     # Milliseconds the answer stays up after a correct answer (normal mode)
# feedback-incorrect = %d   # Milliseconds the answer stays up after a wrong answer (normal mode)
# filter = ["young", "mature"]  # Maturity levels to quiz (new, learning, young, mature)

[anki]
# url = %q                  # AnkiConnect endpoint

[dictionary]
# url = %q                  # Dictionary search endpoint
# cache-size = %d           # Cached lookups
# timeout = %d              # Lookup timeout in seconds

[scoring]
# points = %v               # Base points per speed band, fastest first
# thresholds = %v           # Band limits in seconds
# multiplier-step = %.1f    # Streak bonus per correct answer
# multiplier-cap = %.1f     # Highest streak multiplier
`,
		defaultDeck,
		defaultMode,
		preload.DefaultDepth,
		defaultTimeAttack,
		defaultCountdown,
		defaultFeedbackCorrect,
		defaultFeedbackIncorrect,
		anki.DefaultURL,
		jisho.DefaultURL,
		jisho.DefaultCacheSize,
		defaultDictTimeout,
		tomlInts(rules.Points),
		tomlFloats(rules.Thresholds),
		rules.MultiplierStep,
		rules.MultiplierCap,
	)
}

func tomlInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func tomlFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.1f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func validateConfig(cfg model.Config) error {
	if cfg.Deck == "" {
		return fmt.Errorf("--deck must not be empty")
	}
	if cfg.PreloadDepth <= 0 {
		return fmt.Errorf("--preload must be > 0")
	}
	if cfg.TimeAttack <= 0 {
		return fmt.Errorf("--time-attack must be > 0")
	}
	if cfg.CountdownTicks < 0 {
		return fmt.Errorf("--countdown must be >= 0")
	}
	if cfg.FeedbackCorrect < 0 || cfg.FeedbackWrong < 0 {
		return fmt.Errorf("feedback delays must be >= 0")
	}
	if cfg.DictionaryCache <= 0 {
		return fmt.Errorf("dictionary cache-size must be > 0")
	}
	if cfg.DictionaryWait <= 0 {
		return fmt.Errorf("dictionary timeout must be > 0")
	}
	for _, name := range cfg.FilterLevels {
		if _, err := maturity.ParseLevel(name); err != nil {
			return fmt.Errorf("invalid --filter: %w", err)
		}
	}
	rules := scoring.Rules{
		Thresholds:     cfg.SpeedThresholds,
		Points:         cfg.SpeedPoints,
		MultiplierStep: cfg.MultiplierStep,
		MultiplierCap:  cfg.MultiplierCap,
	}
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("invalid [scoring]: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
