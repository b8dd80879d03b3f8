package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateForm:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = docStyle.Render(m.habitList.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("habitkit")

	var flags []string
	if m.tracker.PendingOnly() {
		flags = append(flags, "pending only")
	}
	if m.tracker.IsRefreshing() {
		flags = append(flags, "refreshing")
	}
	if m.tracker.IsImporting() {
		flags = append(flags, "importing")
	}

	if len(flags) == 0 {
		return title
	}

	line := ""
	for i, f := range flags {
		if i > 0 {
			line += " | "
		}
		line += f
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, statusStyle.Render(line))
}

func (m Model) viewStatus() string {
	if m.errText != "" {
		return errorStyle.Render(m.errText)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit?"),
			"",
			"The habit is hidden, not destroyed; its row stays in the store.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
