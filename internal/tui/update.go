package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sknn/internal/constants"
	"github.com/julianstephens/sknn/internal/logger"
	"github.com/julianstephens/sknn/internal/models"
	"github.com/julianstephens/sknn/internal/tui/components/routines"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Add Routine State
	if m.state == constants.StateAddRoutine {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateRoutines
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if _, err := m.store.Add(m.addForm.Name, m.addForm.TimeOfDay); err != nil {
				// Stay in the form so the user can fix the input or cancel with esc
				m.statusMessage = fmt.Sprintf("Failed to add routine: %v", err)
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.statusMessage = ""
			m.refresh()
			m.state = constants.StateRoutines
		case huh.StateAborted:
			m.state = constants.StateRoutines
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Reset State
	if m.state == constants.StateConfirmReset {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if _, err := m.store.ResetAll(); err != nil {
					m.setError("reset routines", err)
				} else {
					m.statusMessage = ""
					m.refresh()
				}
				m.state = constants.StateRoutines
			case "n", "N", "esc", "q":
				m.state = constants.StateRoutines
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Header, progress bar and help take roughly five lines
		listHeight := msg.Height - 5

		h, v := docStyle.GetFrameSize()
		m.routinesModel.SetSize(msg.Width-h, listHeight-v)
		m.progressBar.Width = min(msg.Width-h, 60)

	case tea.KeyMsg:
		if m.routinesModel.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case routines.AddRoutineMsg:
		m.addForm = &AddFormModel{TimeOfDay: models.TimeMorning}
		m.form = NewAddForm(m.addForm)
		m.state = constants.StateAddRoutine
		return m, m.form.Init()

	case routines.ToggleRoutineMsg:
		if _, err := m.store.Toggle(msg.ID); err != nil {
			m.setError("toggle routine", err)
			return m, nil
		}
		m.statusMessage = ""
		m.refresh()
		return m, nil

	case routines.DeleteRoutineMsg:
		if !m.routinesModel.MarkRemoving(msg.ID) {
			return m, nil
		}
		id := msg.ID
		return m, tea.Tick(constants.DeleteAnimationMs*time.Millisecond, func(time.Time) tea.Msg {
			return deleteTickMsg{ID: id}
		})

	case deleteTickMsg:
		if _, err := m.store.Delete(msg.ID); err != nil {
			m.setError("delete routine", err)
		} else {
			m.statusMessage = ""
		}
		// On failure the row reappears unmarked once the store's list is redrawn
		m.routinesModel.ClearRemoving(msg.ID)
		m.refresh()
		return m, nil

	case routines.ResetRoutinesMsg:
		m.state = constants.StateConfirmReset
		return m, nil
	}

	var cmd tea.Cmd
	m.routinesModel, cmd = m.routinesModel.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) setError(action string, err error) {
	logger.Error("TUI operation failed", "action", action, "error", err)
	m.statusMessage = fmt.Sprintf("Failed to %s: %v", action, err)
}
