// Package mealplan contains the core domain logic for weekly meal planning.
// This follows Domain-Driven Design principles with rich domain models.
package mealplan

import "strings"

// Day is a canonical lowercase weekday name
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// CanonicalWeek is the fixed week order used for rotation
var CanonicalWeek = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDay parses a day name case-insensitively
func ParseDay(s string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(s)))
	for _, day := range CanonicalWeek {
		if day == d {
			return day, nil
		}
	}
	return "", ErrInvalidStartDay
}

// Rotation returns the 7 canonical days starting at start, wrapping circularly
func Rotation(start Day) []Day {
	offset := 0
	for i, day := range CanonicalWeek {
		if day == start {
			offset = i
			break
		}
	}

	days := make([]Day, 0, len(CanonicalWeek))
	for i := 0; i < len(CanonicalWeek); i++ {
		days = append(days, CanonicalWeek[(offset+i)%len(CanonicalWeek)])
	}
	return days
}

// Title returns the day name with an uppercase first letter for prompt text
func (d Day) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[0])) + string(d[1:])
}
