package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/todo/internal/todoapi"
)

// renderMain renders the header, draft line, item list, notification and footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderDraftLine())
	b.WriteString("\n")

	listHeight := m.height - headerHeight - inputHeight - noticeHeight - footerHeight
	b.WriteString(m.renderTitledBox(m.listTitle(), m.renderItems(m.width-2, listHeight-boxBorders), m.width, listHeight))
	b.WriteString("\n")

	b.WriteString(m.renderNotice())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the status bar: name, service, counts and activity.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("todo", styles.Logo)}

	if m.width >= LayoutCompactWidth && m.baseURL != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.baseURL, m.width/3), styles.MutedText))
	}

	if m.loaded {
		done, pending := m.view.Counts()
		parts = append(parts,
			bg.Render(plural(pending, "open item"), styles.AccentText)+bg.Space()+
				bg.Render("·", styles.FaintText)+bg.Space()+
				bg.Render(plural(done, "done item"), styles.SuccessText))
	}

	if m.inflight > 0 {
		parts = append(parts, m.spinner.View()+bg.Space()+bg.Render("Working...", styles.WarningText))
	}

	if m.width >= LayoutWideWidth {
		parts = append(parts,
			bg.Render("T", styles.AccentText)+bg.Sep(":")+bg.Render(m.theme.Name, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderDraftLine shows the add input, or the pending draft when unfocused.
func (m Model) renderDraftLine() string {
	styles := m.theme.Styles()
	label := styles.AccentText.Bold(true).Render("New") + styles.FaintText.Render(" › ")

	switch {
	case m.mode == modeAdd:
		return label + m.input.View()
	case m.view.Draft != "":
		return label + styles.MutedText.Render(truncate(singleLine(m.view.Draft), m.width-8))
	default:
		return label + styles.FaintText.Render("press a to add a todo")
	}
}

func (m Model) listTitle() string {
	if !m.loaded && m.inflight > 0 {
		return "Todos (loading)"
	}
	return "Todos"
}

// renderItems renders the rows that fit in height, keeping the cursor visible.
func (m Model) renderItems(width, height int) string {
	styles := m.theme.Styles()
	items := m.view.Items
	if len(items) == 0 {
		msg := "No todos yet"
		if !m.loaded {
			msg = "Fetching todos..."
		}
		return lipgloss.Place(width, max(height, 1), lipgloss.Center, lipgloss.Center,
			styles.MutedText.Background(lipgloss.Color(m.theme.SurfaceAlt)).Render(msg),
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.SurfaceAlt)))
	}

	start, end := visibleRange(m.selected, len(items), height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(items[i], width, i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// renderRow formats one item: "[x] text · date". The row being edited shows
// the edit input in place of its text.
func (m Model) renderRow(item todoapi.TodoItem, width int, selected bool) string {
	bgColor := m.theme.SurfaceAlt
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}

	var boxStyle, textStyle, dateStyle lipgloss.Style
	switch {
	case selected:
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		boxStyle, textStyle, dateStyle = sel, sel, sel
		if item.Completed {
			textStyle = sel.Strikethrough(true)
		}
	case item.Completed:
		boxStyle, textStyle, dateStyle = styles.SuccessText, styles.Done, styles.FaintText
	default:
		boxStyle, textStyle, dateStyle = styles.MutedText, styles.Text, styles.FaintText
	}

	date := ""
	if !m.prefs.HideTimestamps && width >= LayoutCompactWidth {
		date = formatCreatedAt(item, m.location)
	}

	var text string
	if m.mode == modeEdit && m.view.EditingID == item.ID {
		text = m.input.View()
	} else {
		textWidth := width - len(box) - 2
		if date != "" {
			textWidth -= len(date) + 3
		}
		text = bg.Render(truncate(singleLine(item.Text), max(textWidth, 8)), textStyle)
	}

	row := bg.Render(box, boxStyle) + bg.Space() + text
	if date != "" {
		row += bg.Render(" · ", styles.FaintText) + bg.Render(date, dateStyle)
	}
	return bg.FillLine(row, width)
}

// visibleRange returns the window [start, end) of total rows that fits in
// height and contains cursor.
func visibleRange(cursor, total, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

// renderNotice renders the notification bar, or an empty line.
func (m Model) renderNotice() string {
	notice := m.view.Notice
	if !notice.Visible {
		return lipgloss.NewStyle().Width(m.width).Render("")
	}
	color := m.theme.noticeColor(notice.Severity)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(m.theme.Background)).
		Bold(true).
		Padding(0, 1).
		Width(m.width).
		Render(truncate(notice.Message, m.width-4) + "  (esc)")
}

// renderFooter renders the short key help for the current mode.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bindings := m.keys.ShortHelp()
	if m.mode != modeBrowse {
		bindings = m.keys.inputHelp()
	}
	return styles.Footer.Width(m.width).Render(m.help.ShortHelpView(bindings))
}

// renderTitledBox renders content in a box with the title embedded in the top
// border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int) string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(m.theme.SurfaceAlt))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-boxBorders, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return top + "\n" + strings.Join(lines, "\n") + "\n" + bottom
}
