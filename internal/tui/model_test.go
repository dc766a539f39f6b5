package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sknn/internal/constants"
	"github.com/julianstephens/sknn/internal/models"
	"github.com/julianstephens/sknn/internal/routine"
	"github.com/julianstephens/sknn/internal/storage"
	"github.com/julianstephens/sknn/internal/tui/components/routines"
)

func newTestModel(t *testing.T, seeded string) (Model, *routine.Store) {
	t.Helper()
	kv := storage.NewMemoryStore()
	if seeded != "" {
		if err := kv.Set(constants.RoutinesKey, seeded); err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}

	n := 0
	store := routine.New(kv,
		routine.WithClock(func() time.Time { return time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local) }),
		routine.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	if _, err := store.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return NewModel(store), store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewShowsProgressHeader(t *testing.T) {
	m, _ := newTestModel(t, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if view := m.View(); !strings.Contains(view, "Today's Progress: 0 of 7 completed") {
		t.Errorf("header missing from view:\n%s", view)
	}
}

func TestToggleRoutine(t *testing.T) {
	m, store := newTestModel(t, "")

	m, _ = update(t, m, routines.ToggleRoutineMsg{ID: "id-1"})

	if got := store.Progress().Completed; got != 1 {
		t.Fatalf("completed = %d, want 1", got)
	}
	if view := m.View(); !strings.Contains(view, "Today's Progress: 1 of 7 completed") {
		t.Errorf("header not updated:\n%s", view)
	}
}

func TestDeleteIsDeferred(t *testing.T) {
	m, store := newTestModel(t, "")

	m, cmd := update(t, m, routines.DeleteRoutineMsg{ID: "id-2"})
	if cmd == nil {
		t.Fatal("expected a tick command for the deferred delete")
	}
	if got := len(store.Items()); got != 7 {
		t.Fatalf("store changed before the delay elapsed: %d items", got)
	}
	if !m.routinesModel.IsRemoving("id-2") {
		t.Error("row should be shown as removing")
	}

	if _, again := update(t, m, routines.DeleteRoutineMsg{ID: "id-2"}); again != nil {
		t.Error("a second delete for the same row should not schedule another tick")
	}

	m, _ = update(t, m, deleteTickMsg{ID: "id-2"})
	items := store.Items()
	if len(items) != 6 {
		t.Fatalf("expected 6 items after the delay, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == "id-2" {
			t.Error("id-2 should have been deleted")
		}
	}
	if m.routinesModel.IsRemoving("id-2") {
		t.Error("removing flag should be cleared after the delete")
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	m, store := newTestModel(t, "")
	m, _ = update(t, m, routines.ToggleRoutineMsg{ID: "id-1"})
	m, _ = update(t, m, routines.ToggleRoutineMsg{ID: "id-2"})

	m, _ = update(t, m, routines.ResetRoutinesMsg{})
	if m.state != constants.StateConfirmReset {
		t.Fatalf("state = %v, want StateConfirmReset", m.state)
	}
	m, _ = update(t, m, keyPress("n"))
	if m.state != constants.StateRoutines {
		t.Fatalf("state = %v after declining, want StateRoutines", m.state)
	}
	if got := store.Progress().Completed; got != 2 {
		t.Fatalf("declined reset changed progress to %d", got)
	}

	m, _ = update(t, m, routines.ResetRoutinesMsg{})
	m, _ = update(t, m, keyPress("y"))
	if m.state != constants.StateRoutines {
		t.Errorf("state = %v after confirming, want StateRoutines", m.state)
	}
	if got := store.Progress().Completed; got != 0 {
		t.Errorf("completed = %d after reset, want 0", got)
	}
}

func TestAddRoutineFormCanBeCancelled(t *testing.T) {
	m, store := newTestModel(t, "")

	m, _ = update(t, m, routines.AddRoutineMsg{})
	if m.state != constants.StateAddRoutine {
		t.Fatalf("state = %v, want StateAddRoutine", m.state)
	}
	if m.addForm.TimeOfDay != models.TimeMorning {
		t.Errorf("default time of day = %q, want Morning", m.addForm.TimeOfDay)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateRoutines {
		t.Errorf("state = %v after esc, want StateRoutines", m.state)
	}
	if got := len(store.Items()); got != 7 {
		t.Errorf("cancelled form changed the list: %d items", got)
	}
}

func TestEmptyListView(t *testing.T) {
	m, _ := newTestModel(t, "[]")

	view := m.View()
	if !strings.Contains(view, "No routines yet. Add your first step!") {
		t.Errorf("empty list text missing:\n%s", view)
	}
	if !strings.Contains(view, "Today's Progress: 0 of 0 completed") {
		t.Errorf("header missing for empty list:\n%s", view)
	}
}

func TestQuitAndHelpKeys(t *testing.T) {
	m, _ := newTestModel(t, "")

	m, _ = update(t, m, keyPress("?"))
	if !m.help.ShowAll {
		t.Error("? should expand the help view")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !m.quitting {
		t.Error("model should be quitting")
	}
	if m.View() != "" {
		t.Error("view should be empty once quitting")
	}
}
