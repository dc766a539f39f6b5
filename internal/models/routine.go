package models

import (
	"fmt"
	"strings"
)

// TimeOfDay tags when a routine step is performed
type TimeOfDay string

const (
	TimeMorning TimeOfDay = "Morning"
	TimeNight   TimeOfDay = "Night"
	TimeBoth    TimeOfDay = "Both"
	TimeWeekly  TimeOfDay = "Weekly"
)

// AllTimesOfDay returns the valid time-of-day tags in display order.
func AllTimesOfDay() []TimeOfDay {
	return []TimeOfDay{TimeMorning, TimeNight, TimeBoth, TimeWeekly}
}

// ParseTimeOfDay matches s against the known tags, ignoring case and surrounding space.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, t := range AllTimesOfDay() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid time of day: %q (expected Morning, Night, Both or Weekly)", s)
}

// Valid reports whether t is exactly one of the known tags.
func (t TimeOfDay) Valid() bool {
	for _, known := range AllTimesOfDay() {
		if t == known {
			return true
		}
	}
	return false
}

// RoutineItem is one tracked step in a skincare routine
type RoutineItem struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	TimeOfDay         TimeOfDay `json:"time"`
	Completed         bool      `json:"completed"`
	LastCompletedDate *string   `json:"lastCompletedDate,omitempty"` // YYYY-MM-DD
}

// Validate checks the fields a persisted item must carry.
func (r RoutineItem) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("routine id cannot be empty")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("routine %s: name cannot be empty", r.ID)
	}
	if !r.TimeOfDay.Valid() {
		return fmt.Errorf("routine %s: invalid time of day %q", r.ID, r.TimeOfDay)
	}
	return nil
}

// CompletedOn reports whether the item was marked done on the given date.
func (r RoutineItem) CompletedOn(day string) bool {
	return r.Completed && r.LastCompletedDate != nil && *r.LastCompletedDate == day
}

// Clone returns a copy that shares no pointers with r.
func (r RoutineItem) Clone() RoutineItem {
	if r.LastCompletedDate != nil {
		d := *r.LastCompletedDate
		r.LastCompletedDate = &d
	}
	return r
}

// CloneItems deep-copies a routine list.
func CloneItems(items []RoutineItem) []RoutineItem {
	out := make([]RoutineItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// Progress is the derived completion view over a routine list
type Progress struct {
	Completed int
	Total     int
	Fraction  float64
}

// ComputeProgress counts completed items. Fraction is 0 for an empty list.
func ComputeProgress(items []RoutineItem) Progress {
	p := Progress{Total: len(items)}
	for _, item := range items {
		if item.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Fraction = float64(p.Completed) / float64(p.Total)
	}
	return p
}

// Percent returns the fraction as a whole-number percentage.
func (p Progress) Percent() int {
	return int(p.Fraction*100 + 0.5)
}

func (p Progress) String() string {
	return fmt.Sprintf("%d of %d completed (%d%%)", p.Completed, p.Total, p.Percent())
}
