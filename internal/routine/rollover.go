package routine

import "github.com/julianstephens/sknn/internal/models"

// Rollover clears completions that were not made on today (YYYY-MM-DD).
// It returns a new list and the number of items it cleared. Applying it
// twice on the same day changes nothing the second time.
func Rollover(items []models.RoutineItem, today string) ([]models.RoutineItem, int) {
	out := models.CloneItems(items)
	cleared := 0
	for i := range out {
		if out[i].Completed && !out[i].CompletedOn(today) {
			out[i].Completed = false
			out[i].LastCompletedDate = nil
			cleared++
		}
	}
	return out, cleared
}
