// Package age resolves a child's birthdate to the platform's fixed age
// brackets. Pure calendar arithmetic, no side effects.
package age

import (
	"errors"
	"fmt"
	"time"

	"sproutplan/internal/models"
)

// MaxSupportedYears is the platform ceiling: children older than this in
// whole years are out of range.
const MaxSupportedYears = 7

var (
	// ErrInvalidBirthdate is returned when the birthdate is after the
	// reference date.
	ErrInvalidBirthdate = errors.New("birthdate is in the future")

	// ErrOutOfSupportedRange is returned when the computed age exceeds the
	// supported ceiling.
	ErrOutOfSupportedRange = fmt.Errorf("age exceeds supported range (0-%d years)", MaxSupportedYears)
)

// Resolution is the result of resolving a birthdate
type Resolution struct {
	Bracket models.Bracket
	Years   int
	Months  int    // months past the last whole year, 0-11
	Display string // e.g. "2 years, 3 months"
}

// Resolve maps a birthdate to its age bracket as of the given reference
// date. A child belongs to the earlier bracket until the exact birthday: a
// child turning three moves from "2-3" to "3-4" on the birthday itself.
func Resolve(birthdate, asOf time.Time) (*Resolution, error) {
	birthdate = dateOnly(birthdate)
	asOf = dateOnly(asOf)

	if birthdate.After(asOf) {
		return nil, ErrInvalidBirthdate
	}

	years, months := yearsAndMonths(birthdate, asOf)
	if years > MaxSupportedYears {
		return nil, ErrOutOfSupportedRange
	}

	return &Resolution{
		Bracket: bracketForYears(years),
		Years:   years,
		Months:  months,
		Display: formatAge(years, months),
	}, nil
}

// ResolveNow resolves against the current date
func ResolveNow(birthdate time.Time) (*Resolution, error) {
	return Resolve(birthdate, time.Now())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// yearsAndMonths computes completed years and leftover completed months,
// counting a year/month as completed only once the day-of-month is reached.
func yearsAndMonths(birthdate, asOf time.Time) (int, int) {
	years := asOf.Year() - birthdate.Year()
	if asOf.Month() < birthdate.Month() ||
		(asOf.Month() == birthdate.Month() && asOf.Day() < birthdate.Day()) {
		years--
	}

	months := int(asOf.Month()) - int(birthdate.Month())
	if months < 0 {
		months += 12
	}
	if asOf.Day() < birthdate.Day() {
		months = (months + 11) % 12
	}

	return years, months
}

func bracketForYears(years int) models.Bracket {
	switch {
	case years < 1:
		return models.Bracket0to1
	case years < 2:
		return models.Bracket1to2
	case years < 3:
		return models.Bracket2to3
	case years < 4:
		return models.Bracket3to4
	case years < 5:
		return models.Bracket4to5
	case years < 6:
		return models.Bracket5to6
	default:
		return models.Bracket6Plus
	}
}

func formatAge(years, months int) string {
	yearText := fmt.Sprintf("%d years", years)
	if years == 1 {
		yearText = "1 year"
	}
	monthText := fmt.Sprintf("%d months", months)
	if months == 1 {
		monthText = "1 month"
	}

	switch {
	case years == 0:
		return monthText
	case months == 0:
		return yearText
	default:
		return yearText + ", " + monthText
	}
}
