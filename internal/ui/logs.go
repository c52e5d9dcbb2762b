package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/todo/internal/logtail"
)

// logState holds the diagnostics overlay, a tail of the client log file.
type logState struct {
	visible  bool
	lines    []string
	err      error
	viewport viewport.Model
}

type logTailMsg struct {
	lines []string
	err   error
}

func refreshLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.ReadFile(path, LogTailLines)
		return logTailMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogTail(msg logTailMsg) {
	m.logs.lines = msg.lines
	m.logs.err = msg.err
	m.logs.viewport.SetContent(m.renderLogContent())
	m.logs.viewport.GotoBottom()
}

// resizeLogViewport fits the viewport inside the overlay box: header above,
// status line below, borders around.
func (m *Model) resizeLogViewport() {
	width := max(m.width-2, 0)
	height := max(m.height-headerHeight-footerHeight-boxBorders, 0)
	if m.logs.viewport.Width == 0 && m.logs.viewport.Height == 0 {
		m.logs.viewport = viewport.New(width, height)
	} else {
		m.logs.viewport.Width = width
		m.logs.viewport.Height = height
	}
	m.logs.viewport.SetContent(m.renderLogContent())
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.logs.visible = false
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, refreshLogsCmd(m.logFile)
	case key.Matches(msg, m.keys.Top):
		m.logs.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logs.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	return m, cmd
}

// renderLogs renders the diagnostics overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := "Client log"
	if m.logFile != "" {
		title += " " + truncateMiddle(m.logFile, max(m.width/2, 10))
	}
	contentHeight := m.height - headerHeight - footerHeight
	box := m.renderTitledBox(title, m.logs.viewport.View(), m.width, contentHeight)

	status := "r:Reload  j/k:Scroll  g/G:Top/Bottom  esc:Close"
	return m.renderHeader() + "\n" + box + "\n" + styles.Footer.Width(m.width).Render(status)
}

// renderLogContent colors each line by the level it was written at.
func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	switch {
	case m.logs.err != nil:
		return styles.DangerText.Render("Unable to read log: " + m.logs.err.Error())
	case m.logFile == "":
		return styles.MutedText.Render("Logging to a file is disabled")
	case len(m.logs.lines) == 0:
		return styles.MutedText.Render("No log entries yet")
	}

	var b strings.Builder
	for i, line := range m.logs.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(levelStyle(logtail.LevelOf(line), styles).Render(line))
	}
	return b.String()
}

func levelStyle(level logtail.Level, styles Styles) lipgloss.Style {
	switch level {
	case logtail.LevelError:
		return styles.DangerText
	case logtail.LevelWarn:
		return styles.WarningText
	case logtail.LevelDebug:
		return styles.FaintText
	case logtail.LevelInfo:
		return styles.Text
	default:
		return styles.MutedText
	}
}
