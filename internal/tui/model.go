package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sknn/internal/constants"
	"github.com/julianstephens/sknn/internal/routine"
	"github.com/julianstephens/sknn/internal/tui/components/routines"
)

// deleteTickMsg fires once a row's removal delay has elapsed
type deleteTickMsg struct {
	ID string
}

type Model struct {
	store         *routine.Store
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	routinesModel routines.Model
	progressBar   progress.Model
	form          *huh.Form
	addForm       *AddFormModel
	statusMessage string
	quitting      bool
	width         int
	height        int
}

// NewModel builds the TUI over an initialized routine store.
func NewModel(store *routine.Store) Model {
	return Model{
		store:         store,
		state:         constants.StateRoutines,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		routinesModel: routines.New(store.Items(), 0, 0),
		progressBar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(40),
		),
	}
}

func (m Model) ShortHelp() []key.Binding {
	rk := routines.DefaultKeyMap()
	return []key.Binding{rk.Toggle, rk.Add, rk.Delete, rk.Reset, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	rk := routines.DefaultKeyMap()
	return [][]key.Binding{
		{rk.Toggle, rk.Add, rk.Delete, rk.Reset},
		{m.keys.Quit, m.keys.Help},
	}
}

func (m Model) Init() tea.Cmd {
	return m.routinesModel.Init()
}

// refresh re-renders from the store's current list
func (m *Model) refresh() {
	m.routinesModel.SetRoutines(m.store.Items())
}
