package routine

import "github.com/julianstephens/sknn/internal/models"

var defaultSteps = []struct {
	name string
	time models.TimeOfDay
}{
	{"Cleanser", models.TimeMorning},
	{"Vitamin C Serum", models.TimeMorning},
	{"Moisturizer", models.TimeMorning},
	{"Sunscreen", models.TimeMorning},
	{"Cleanser", models.TimeNight},
	{"Retinol", models.TimeNight},
	{"Night Cream", models.TimeNight},
}

// DefaultRoutines builds the seed list used when nothing has been stored yet.
func DefaultRoutines(newID func() string) []models.RoutineItem {
	items := make([]models.RoutineItem, 0, len(defaultSteps))
	for _, step := range defaultSteps {
		items = append(items, models.RoutineItem{
			ID:        newID(),
			Name:      step.name,
			TimeOfDay: step.time,
		})
	}
	return items
}
