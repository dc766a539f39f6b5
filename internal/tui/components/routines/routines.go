package routines

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sknn/internal/models"
)

type AddRoutineMsg struct{}

type ResetRoutinesMsg struct{}

type ToggleRoutineMsg struct {
	ID string
}

type DeleteRoutineMsg struct {
	ID string
}

type Item struct {
	Routine  models.RoutineItem
	Removing bool
}

func (i Item) Title() string {
	switch {
	case i.Removing:
		return "✗ " + i.Routine.Name
	case i.Routine.Completed:
		return "✓ " + i.Routine.Name
	default:
		return "○ " + i.Routine.Name
	}
}

func (i Item) Description() string {
	if i.Removing {
		return "removing…"
	}
	if i.Routine.Completed {
		return string(i.Routine.TimeOfDay) + " · done today"
	}
	return string(i.Routine.TimeOfDay)
}

func (i Item) FilterValue() string { return i.Routine.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	Reset  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset all"),
		),
	}
}

type Model struct {
	list     list.Model
	keys     KeyMap
	removing map[string]bool // routineID -> awaiting delete
}

func New(items []models.RoutineItem, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Routines"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Delete, keys.Reset}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Delete, keys.Reset}
	}

	m := Model{
		list:     l,
		keys:     keys,
		removing: make(map[string]bool),
	}
	m.SetRoutines(items)
	return m
}

// SetRoutines replaces the displayed list. Rows still awaiting deletion keep their marker.
func (m *Model) SetRoutines(items []models.RoutineItem) {
	present := make(map[string]bool, len(items))
	listItems := make([]list.Item, len(items))
	for i, r := range items {
		present[r.ID] = true
		listItems[i] = Item{Routine: r, Removing: m.removing[r.ID]}
	}
	for id := range m.removing {
		if !present[id] {
			delete(m.removing, id)
		}
	}
	m.list.SetItems(listItems)
}

// MarkRemoving flags a row as pending deletion. It reports false if the row was already flagged.
func (m *Model) MarkRemoving(id string) bool {
	if m.removing[id] {
		return false
	}
	m.removing[id] = true
	for i, li := range m.list.Items() {
		if item, ok := li.(Item); ok && item.Routine.ID == id {
			item.Removing = true
			m.list.SetItem(i, item)
			break
		}
	}
	return true
}

// ClearRemoving drops the pending-deletion flag. Call SetRoutines afterwards to redraw.
func (m *Model) ClearRemoving(id string) {
	delete(m.removing, id)
}

func (m Model) IsRemoving(id string) bool {
	return m.removing[id]
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddRoutineMsg{} }
		case key.Matches(msg, m.keys.Reset):
			if len(m.list.Items()) > 0 {
				return m, func() tea.Msg { return ResetRoutinesMsg{} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Removing {
				return m, func() tea.Msg { return ToggleRoutineMsg{ID: i.Routine.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Removing {
				return m, func() tea.Msg { return DeleteRoutineMsg{ID: i.Routine.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No routines yet. Add your first step!\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
