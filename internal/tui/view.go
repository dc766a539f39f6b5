package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/sknn/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateRoutines:
		content = docStyle.Render(m.routinesModel.View())
	case constants.StateAddRoutine:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmReset:
		content = m.viewConfirmReset()
	}

	var status string
	if m.statusMessage != "" {
		status = warningStyle.Render(m.statusMessage)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		status,
		content,
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	p := m.store.Progress()
	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("Today's Progress: %d of %d completed", p.Completed, p.Total)),
		m.progressBar.ViewAs(p.Fraction),
	))
}

func (m Model) viewConfirmReset() string {
	return lipgloss.Place(m.width, m.height-6,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Reset today's progress for every routine?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
