// Package statsui provides the Bubble Tea history browser.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/yomiquiz/internal/model"
	"github.com/verte-zerg/yomiquiz/internal/stats"
)

const (
	tabOverview = iota
	tabWords
	tabScores
)

const leaderboardSize = 5

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// ScoreReader reads the finished rounds of the score log.
type ScoreReader interface {
	Read() ([]model.ScoreRecord, error)
}

// Model implements the Bubble Tea history UI.
type Model struct {
	history stats.HistorySource
	scores  ScoreReader
	cfg     stats.ReportConfig

	report      stats.Report
	leaderboard stats.Leaderboard
	errMsg      string

	tabs      []string
	activeTab int
	viewports []viewport.Model

	width  int
	height int
}

// NewModel constructs a history UI model.
func NewModel(history stats.HistorySource, scores ScoreReader, cfg stats.ReportConfig) *Model {
	if cfg.Window <= 0 {
		cfg.Window = 5
	}
	if cfg.Top <= 0 {
		cfg.Top = 15
	}
	m := &Model{
		history: history,
		scores:  scores,
		cfg:     cfg,
		tabs:    []string{"Overview", "Words", "High Scores"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.Window = nextCurveWindow(m.cfg.Window)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.Window = prevCurveWindow(m.cfg.Window)
			m.refreshReport()
			return m, nil
		case "g", "home":
			m.viewports[m.activeTab].GotoTop()
			return m, nil
		case "G", "end":
			m.viewports[m.activeTab].GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	m.activeTab = (m.activeTab + delta + count) % count
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render(fmt.Sprintf("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/= (%d)  Quit: q", m.cfg.Window))
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

// refreshReport reloads history and the score log. The window drives both the curve
// smoothing and the number of recent rounds behind the word tables.
func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.history, m.cfg)
	if err != nil {
		m.errMsg = "Failed to load history: " + err.Error()
		m.report = stats.Report{}
	} else {
		m.errMsg = ""
		m.report = report
	}
	records, err := m.scores.Read()
	if err != nil {
		m.errMsg = "Failed to read scores: " + err.Error()
	}
	m.leaderboard = stats.HighScores(records, leaderboardSize)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report.Rounds, m.cfg.Window, width))
	m.viewports[tabWords].SetContent(renderWords(m.report))
	m.viewports[tabScores].SetContent(capture(func(b *bytes.Buffer) error {
		return stats.RenderLeaderboard(b, m.leaderboard)
	}))
}

func renderOverview(rounds []model.RoundAggregate, window, width int) string {
	return capture(func(b *bytes.Buffer) error {
		if err := stats.RenderSummary(b, rounds); err != nil {
			return err
		}
		return stats.RenderCurves(b, rounds, window, width)
	})
}

func renderWords(report stats.Report) string {
	return capture(func(b *bytes.Buffer) error {
		if err := stats.RenderWordTable(b, "Weakest words", report.WeakWords); err != nil {
			return err
		}
		if len(report.Frequent) == 0 {
			return nil
		}
		_, err := fmt.Fprintf(b, "Most practised: %s\n", strings.Join(report.Frequent, " "))
		return err
	})
}

// capture runs a stats renderer into a string. Writes to a bytes.Buffer cannot fail.
func capture(render func(b *bytes.Buffer) error) string {
	var b bytes.Buffer
	_ = render(&b)
	return strings.TrimRight(b.String(), "\n")
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
