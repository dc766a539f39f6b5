package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sknn/internal/models"
)

// AddFormModel holds the values bound to the add-routine form
type AddFormModel struct {
	Name      string
	TimeOfDay models.TimeOfDay
}

// NewAddForm creates the form for adding a routine step
func NewAddForm(fm *AddFormModel) *huh.Form {
	options := make([]huh.Option[models.TimeOfDay], 0, len(models.AllTimesOfDay()))
	for _, t := range models.AllTimesOfDay() {
		options = append(options, huh.NewOption(string(t), t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Step Name").
				Placeholder("e.g. Toner").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("step name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.TimeOfDay]().
				Title("Time of Day").
				Options(options...).
				Value(&fm.TimeOfDay),
		),
	).WithTheme(huh.ThemeDracula())
}
