// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/yomiquiz/internal/maturity"
	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/session"
	"github.com/verte-zerg/yomiquiz/internal/stats"
)

const frameInterval = time.Second / 60

// meaningWidth caps a single dictionary meaning before wrapping.
const meaningWidth = 60

var modes = []model.Mode{model.ModeNormal, model.ModeFast, model.ModeTimeAttack}

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	wordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	inputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = pendingStyle.Underline(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	boxStyle       = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

type tickMsg time.Time

// Model implements the Bubble Tea quiz UI. It only renders session views and forwards
// keys to named session transitions.
type Model struct {
	machine *session.Machine

	width  int
	height int

	review      viewport.Model
	reviewShown bool
}

// NewModel constructs a quiz TUI model around machine.
func NewModel(machine *session.Machine) *Model {
	return &Model{
		machine: machine,
		review:  viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.review.Width = max(msg.Width-4, 1)
		m.review.Height = max(msg.Height-6, 1)
		return m, nil
	case tickMsg:
		m.machine.Tick()
		m.syncReview()
		return m, tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		cmd := m.handleKey(msg)
		m.syncReview()
		return m, cmd
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch m.machine.State() {
	case session.StateLoadingError:
		switch key {
		case "r":
			m.machine.LoadDeck()
		case "esc", "q":
			return tea.Quit
		}
	case session.StateMenu:
		switch key {
		case "enter", "s":
			m.machine.OpenModeSelect()
		case "l":
			m.machine.LoadSave()
		case "f":
			m.machine.OpenFilter()
		case "h":
			m.machine.OpenLeaderboard()
		case "q", "esc":
			return tea.Quit
		}
	case session.StateModeSelect:
		switch key {
		case "1", "2", "3":
			m.machine.SelectMode(modes[key[0]-'1'])
		case "enter":
			m.machine.StartRound()
		case "esc":
			m.machine.Back()
		}
	case session.StateFilterSelect:
		switch key {
		case "1", "2", "3", "4":
			m.machine.ToggleFilter(maturity.Levels[key[0]-'1'])
		case "c":
			m.machine.ClearFilter()
		case "esc", "enter":
			m.machine.Back()
		}
	case session.StateCountdown:
		if key == "esc" {
			m.machine.Leave()
		}
	case session.StatePlaying:
		m.handlePlayingKey(msg)
	case session.StatePaused:
		switch key {
		case "esc", "enter", "p":
			m.machine.Resume()
		case "s":
			m.machine.SaveGame()
		case "q":
			m.machine.Leave()
		}
	case session.StateGameOver:
		if key == "enter" || key == " " {
			m.machine.Continue()
		}
	case session.StateReviewIncorrect:
		switch key {
		case "esc", "enter", "q":
			m.machine.Back()
		default:
			var cmd tea.Cmd
			m.review, cmd = m.review.Update(msg)
			return cmd
		}
	case session.StateLeaderboard:
		if key == "esc" || key == "enter" || key == "q" {
			m.machine.Back()
		}
	}
	return nil
}

func (m *Model) handlePlayingKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.machine.Pause()
	case tea.KeyEnter:
		if !m.machine.Submit() {
			m.machine.Skip()
		}
	case tea.KeyBackspace, tea.KeyDelete:
		m.machine.Backspace()
	case tea.KeyRunes:
		m.machine.Type(string(msg.Runes))
	}
}

// syncReview fills the review viewport once each time the review screen opens.
func (m *Model) syncReview() {
	inReview := m.machine.State() == session.StateReviewIncorrect
	if inReview && !m.reviewShown {
		v := m.machine.View()
		m.review.SetContent(strings.Join(stats.IncorrectLines(v.Incorrect), "\n"))
		m.review.GotoTop()
	}
	m.reviewShown = inReview
}

// View implements tea.Model.
func (m *Model) View() string {
	v := m.machine.View()
	content := m.renderContent(v)
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := renderFooter(v)
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(int(float64(m.width)*0.70), 1)
}

func (m *Model) renderContent(v session.View) string {
	switch v.State {
	case session.StateLoading:
		return pendingStyle.Render(fmt.Sprintf("Loading deck %q…", v.Deck))
	case session.StateLoadingError:
		return lines(
			incorrectStyle.Render(v.LoadingError),
			"",
			pendingStyle.Render("r retry · esc quit"),
		)
	case session.StateMenu:
		return renderMenu(v)
	case session.StateModeSelect:
		return renderModeSelect(v)
	case session.StateFilterSelect:
		return renderFilter(v)
	case session.StateCountdown:
		return lines(
			pendingStyle.Render(v.Mode.Label()),
			titleStyle.Render(fmt.Sprintf("%d", v.Countdown)),
		)
	case session.StatePlaying:
		return renderPlaying(v, m.contentWidth())
	case session.StatePaused:
		return renderPaused(v)
	case session.StateSaving:
		return pendingStyle.Render("Saving…")
	case session.StateLoadingSave:
		return pendingStyle.Render("Loading save…")
	case session.StateGameOver:
		return renderGameOver(v)
	case session.StateReviewIncorrect:
		return lines(
			titleStyle.Render("Review"),
			boxStyle.Render(m.review.View()),
			pendingStyle.Render("↑/↓ scroll · enter menu"),
		)
	case session.StateLeaderboard:
		return renderLeaderboard(v)
	default:
		return ""
	}
}

func renderMenu(v session.View) string {
	out := []string{
		titleStyle.Render("読み Quiz"),
		pendingStyle.Render(fmt.Sprintf("%s · %d cards · %s", v.Deck, v.DeckSize, v.FilterSummary)),
		"",
		"enter  start",
	}
	if v.HasSave {
		out = append(out, "l      load saved game")
	}
	out = append(out,
		"f      filter cards",
		"h      high scores",
		"q      quit",
	)
	return lines(append(out, messages(v)...)...)
}

func renderModeSelect(v session.View) string {
	out := []string{titleStyle.Render("Mode"), ""}
	for i, mode := range modes {
		marker := "  "
		style := pendingStyle
		if mode == v.Mode {
			marker = "> "
			style = inputStyle
		}
		out = append(out, style.Render(fmt.Sprintf("%s%d %s", marker, i+1, mode.Label())))
	}
	out = append(out, "", pendingStyle.Render("enter start · esc back"))
	return lines(append(out, messages(v)...)...)
}

func renderFilter(v session.View) string {
	selected := make(map[maturity.Level]bool, len(v.Filter))
	for _, level := range v.Filter {
		selected[level] = true
	}
	out := []string{titleStyle.Render("Filter"), ""}
	for i, level := range maturity.Levels {
		mark := "[ ]"
		if selected[level] {
			mark = "[x]"
		}
		out = append(out, fmt.Sprintf("%s %d %s (%d)", mark, i+1, level.DisplayName(), v.LevelCounts[level]))
	}
	out = append(out,
		"",
		pendingStyle.Render(v.FilterSummary),
		pendingStyle.Render("1-4 toggle · c clear · esc back"),
	)
	return lines(out...)
}

func renderPlaying(v session.View, width int) string {
	out := []string{pendingStyle.Render(progressLine(v)), ""}
	if v.Waiting {
		out = append(out, pendingStyle.Render("Loading next word…"))
	} else {
		out = append(out, wordStyle.Render(v.Word))
	}
	out = append(out, "")
	if v.Answered && v.Feedback != nil {
		out = append(out, renderFeedback(*v.Feedback, width)...)
		out = append(out, "", pendingStyle.Render("enter next"))
		return lines(out...)
	}
	out = append(out, renderInput(v))
	if v.Feedback != nil && v.Mode.AutoAdvance() {
		out = append(out, "", renderLastAnswer(*v.Feedback))
	}
	return lines(out...)
}

func progressLine(v session.View) string {
	segments := []string{v.Mode.Label(), fmt.Sprintf("%d/%d", v.Total, v.RoundSize)}
	if v.Mode == model.ModeTimeAttack {
		segments = append(segments, fmt.Sprintf("%.0fs left", v.TimeLeft.Seconds()))
	}
	if !v.Waiting && !v.Answered {
		segments = append(segments, fmt.Sprintf("%.1fs", v.QuestionElapsed.Seconds()))
	}
	return strings.Join(segments, " · ")
}

// renderInput shows the converted answer; the raw keystrokes sit dimmed underneath.
func renderInput(v session.View) string {
	line := "> " + inputStyle.Render(v.Input) + cursorStyle.Render(" ")
	if v.Romaji == "" {
		return line
	}
	return lines(line, pendingStyle.Render("  "+v.Romaji))
}

func renderFeedback(fb session.Feedback, width int) []string {
	var out []string
	if fb.Correct {
		out = append(out, correctStyle.Render(fmt.Sprintf("Correct! +%d", fb.Points)))
	} else {
		out = append(out,
			incorrectStyle.Render("Incorrect"),
			"You typed: "+fb.Answer,
		)
	}
	out = append(out, "Reading: "+fb.Readings)
	if meanings := joinMeanings(fb.Meanings); meanings != "" {
		out = append(out, pendingStyle.Render(wrapText(meanings, width)))
	}
	return out
}

func renderLastAnswer(fb session.Feedback) string {
	if fb.Correct {
		return correctStyle.Render(fmt.Sprintf("%s %s +%d", fb.Word, fb.Readings, fb.Points))
	}
	return incorrectStyle.Render(fmt.Sprintf("%s %s (you typed %s)", fb.Word, fb.Readings, fb.Answer))
}

func joinMeanings(meanings []string) string {
	out := make([]string, 0, len(meanings))
	for _, meaning := range meanings {
		out = append(out, stats.Truncate(meaning, meaningWidth))
	}
	return strings.Join(out, "; ")
}

func renderPaused(v session.View) string {
	out := []string{
		titleStyle.Render("Paused"),
		"",
		"esc    resume",
		"s      save and quit to menu",
		"q      leave round",
	}
	return lines(append(out, messages(v)...)...)
}

func renderGameOver(v session.View) string {
	return lines(
		titleStyle.Render("Game Over"),
		"",
		fmt.Sprintf("Score   %d/%d (%d%%)", v.Correct, v.Total, v.Percentage),
		fmt.Sprintf("Points  %d", v.Points),
		fmt.Sprintf("Average %d", v.Average),
		"",
		pendingStyle.Render("enter continue"),
	)
}

func renderLeaderboard(v session.View) string {
	out := []string{titleStyle.Render("High Scores")}
	out = append(out, tableOrEmpty(v.Leaderboard.Standard)...)
	out = append(out, "", titleStyle.Render("Time Attack"))
	out = append(out, tableOrEmpty(v.Leaderboard.TimeAttack)...)
	out = append(out, "", pendingStyle.Render("esc back"))
	return lines(append(out, messages(v)...)...)
}

func tableOrEmpty(records []model.ScoreRecord) []string {
	if len(records) == 0 {
		return []string{pendingStyle.Render("No scores yet.")}
	}
	return stats.LeaderboardLines(records)
}

func messages(v session.View) []string {
	var out []string
	if v.Status != "" {
		out = append(out, "", pendingStyle.Render(v.Status))
	}
	if v.SaveLoadError != "" {
		out = append(out, "", incorrectStyle.Render(v.SaveLoadError))
	}
	return out
}

func lines(parts ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderFooter shows the running tally while a round is on screen.
func renderFooter(v session.View) string {
	if !v.State.InRound() && v.State != session.StateGameOver {
		return ""
	}
	segments := []string{
		fmt.Sprintf("Score %d/%d", v.Correct, v.Total),
		fmt.Sprintf("Points %d", v.Points),
		fmt.Sprintf("Streak %d ×%.1f", v.Streak, v.Multiplier),
		fmt.Sprintf("Avg %d", v.Average),
	}
	if v.LastPoints > 0 {
		segments = append(segments, fmt.Sprintf("Last +%d", v.LastPoints))
	}
	if v.Ready > 0 {
		segments = append(segments, fmt.Sprintf("Ready %d", v.Ready))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
