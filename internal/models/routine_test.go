package models

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "exact", input: "Morning", want: TimeMorning},
		{name: "lower case", input: "night", want: TimeNight},
		{name: "padded", input: "  Both ", want: TimeBoth},
		{name: "upper case", input: "WEEKLY", want: TimeWeekly},
		{name: "unknown", input: "Noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayValid(t *testing.T) {
	for _, tod := range AllTimesOfDay() {
		if !tod.Valid() {
			t.Errorf("%q should be valid", tod)
		}
	}
	if TimeOfDay("morning").Valid() {
		t.Error("lower-case tag should not be valid as a stored value")
	}
}

func TestRoutineItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    RoutineItem
		wantErr bool
	}{
		{name: "valid", item: RoutineItem{ID: "1", Name: "Toner", TimeOfDay: TimeNight}},
		{name: "missing id", item: RoutineItem{Name: "Toner", TimeOfDay: TimeNight}, wantErr: true},
		{name: "blank name", item: RoutineItem{ID: "1", Name: "  ", TimeOfDay: TimeNight}, wantErr: true},
		{name: "bad time", item: RoutineItem{ID: "1", Name: "Toner", TimeOfDay: "Noon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRoutineItem_Clone(t *testing.T) {
	orig := RoutineItem{ID: "1", Name: "Retinol", TimeOfDay: TimeNight, Completed: true, LastCompletedDate: strPtr("2026-01-15")}
	cp := orig.Clone()
	*cp.LastCompletedDate = "2026-01-16"

	if *orig.LastCompletedDate != "2026-01-15" {
		t.Errorf("clone shares date pointer with original: %s", *orig.LastCompletedDate)
	}
}

func TestRoutineItem_CompletedOn(t *testing.T) {
	item := RoutineItem{ID: "1", Name: "Sunscreen", TimeOfDay: TimeMorning, Completed: true, LastCompletedDate: strPtr("2026-01-15")}
	if !item.CompletedOn("2026-01-15") {
		t.Error("expected item to be completed on its completion date")
	}
	if item.CompletedOn("2026-01-16") {
		t.Error("expected item not to be completed on another date")
	}
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name  string
		items []RoutineItem
		want  Progress
	}{
		{name: "empty list", items: nil, want: Progress{}},
		{
			name: "none completed",
			items: []RoutineItem{
				{ID: "1", Name: "Cleanser", TimeOfDay: TimeMorning},
				{ID: "2", Name: "Moisturizer", TimeOfDay: TimeMorning},
			},
			want: Progress{Completed: 0, Total: 2, Fraction: 0},
		},
		{
			name: "one of four",
			items: []RoutineItem{
				{ID: "1", Name: "Cleanser", TimeOfDay: TimeMorning, Completed: true},
				{ID: "2", Name: "Moisturizer", TimeOfDay: TimeMorning},
				{ID: "3", Name: "Retinol", TimeOfDay: TimeNight},
				{ID: "4", Name: "Night Cream", TimeOfDay: TimeNight},
			},
			want: Progress{Completed: 1, Total: 4, Fraction: 0.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProgress(tt.items)
			if got != tt.want {
				t.Errorf("ComputeProgress() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProgressString(t *testing.T) {
	p := Progress{Completed: 1, Total: 8, Fraction: 0.125}
	if got, want := p.String(), "1 of 8 completed (13%)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
