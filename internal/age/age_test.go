package age

import (
	"errors"
	"testing"
	"time"

	"sproutplan/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveBrackets(t *testing.T) {
	asOf := date(2026, time.June, 15)

	tests := []struct {
		name      string
		birthdate time.Time
		bracket   models.Bracket
		display   string
	}{
		{
			name:      "newborn",
			birthdate: date(2026, time.June, 1),
			bracket:   models.Bracket0to1,
			display:   "0 months",
		},
		{
			name:      "ten months",
			birthdate: date(2025, time.August, 10),
			bracket:   models.Bracket0to1,
			display:   "10 months",
		},
		{
			name:      "toddler",
			birthdate: date(2024, time.December, 15),
			bracket:   models.Bracket1to2,
			display:   "1 year, 6 months",
		},
		{
			name:      "preschooler",
			birthdate: date(2023, time.March, 15),
			bracket:   models.Bracket3to4,
			display:   "3 years, 3 months",
		},
		{
			name:      "kindergarten",
			birthdate: date(2020, time.September, 1),
			bracket:   models.Bracket5to6,
			display:   "5 years, 9 months",
		},
		{
			name:      "school age",
			birthdate: date(2019, time.June, 20),
			bracket:   models.Bracket6Plus,
			display:   "6 years, 11 months",
		},
		{
			name:      "seven exactly still supported",
			birthdate: date(2019, time.June, 15),
			bracket:   models.Bracket6Plus,
			display:   "7 years",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(tt.birthdate, asOf)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if res.Bracket != tt.bracket {
				t.Errorf("Bracket = %v, want %v", res.Bracket, tt.bracket)
			}
			if res.Display != tt.display {
				t.Errorf("Display = %q, want %q", res.Display, tt.display)
			}
		})
	}
}

func TestResolveBirthdayBoundary(t *testing.T) {
	// A child born exactly three years before "today" belongs to 3-4, not
	// 2-3: the bracket switches on the birthday itself.
	asOf := date(2026, time.April, 10)
	birthdate := date(2023, time.April, 10)

	res, err := Resolve(birthdate, asOf)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Bracket != models.Bracket3to4 {
		t.Errorf("Bracket on birthday = %v, want %v", res.Bracket, models.Bracket3to4)
	}
	if res.Years != 3 || res.Months != 0 {
		t.Errorf("age = %d years %d months, want 3 years 0 months", res.Years, res.Months)
	}

	// The day before the birthday the child is still in 2-3
	res, err = Resolve(birthdate, asOf.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Bracket != models.Bracket2to3 {
		t.Errorf("Bracket day before birthday = %v, want %v", res.Bracket, models.Bracket2to3)
	}
}

func TestResolveErrors(t *testing.T) {
	asOf := date(2026, time.June, 15)

	if _, err := Resolve(date(2026, time.July, 1), asOf); !errors.Is(err, ErrInvalidBirthdate) {
		t.Errorf("future birthdate error = %v, want ErrInvalidBirthdate", err)
	}

	if _, err := Resolve(date(2018, time.June, 14), asOf); !errors.Is(err, ErrOutOfSupportedRange) {
		t.Errorf("over-age error = %v, want ErrOutOfSupportedRange", err)
	}
}
