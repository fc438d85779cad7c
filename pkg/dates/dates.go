// Package dates provides calendar arithmetic on ISO (YYYY-MM-DD) date
// strings. All operations are timezone-free: a date is a calendar day,
// never an instant.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

var weekdaysTr = [...]string{"pazar", "pazartesi", "salı", "çarşamba", "perşembe", "cuma", "cumartesi"}

// Today returns the current local calendar date in ISO form.
func Today() string {
	return time.Now().Format(isoLayout)
}

// Parse validates an ISO date string and returns the calendar day in UTC.
// Unpadded inputs such as "2026-1-2" are rejected.
func Parse(iso string) (time.Time, error) {
	t, err := time.ParseInLocation(isoLayout, iso, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", iso, err)
	}
	if t.Format(isoLayout) != iso {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: want YYYY-MM-DD", iso)
	}
	return t, nil
}

// IsValid reports whether iso is a well-formed calendar date.
func IsValid(iso string) bool {
	_, err := Parse(iso)
	return err == nil
}

// Format renders a time as an ISO calendar date.
func Format(t time.Time) string {
	return t.Format(isoLayout)
}

// DaysInMonth returns the number of days in the given month (1-12).
func DaysInMonth(year, month int) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddDays shifts an ISO date by the given number of calendar days.
func AddDays(iso string, days int) (string, error) {
	t, err := Parse(iso)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, days)), nil
}

// AddMonths shifts an ISO date by whole months, clamping the day to the
// target month's length (Jan 31 + 1 month = Feb 28/29). Negative months
// roll backwards across year boundaries.
func AddMonths(iso string, months int) (string, error) {
	t, err := Parse(iso)
	if err != nil {
		return "", err
	}

	total := int(t.Month()) - 1 + months
	year := t.Year() + floorDiv(total, 12)
	month := mod(total, 12) + 1

	day := t.Day()
	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	return Format(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)), nil
}

// DiffDays returns the number of calendar days from one ISO date to another.
func DiffDays(fromIso, toIso string) (int, error) {
	from, err := Parse(fromIso)
	if err != nil {
		return 0, err
	}
	to, err := Parse(toIso)
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours() / 24), nil
}

// WeekdayTr returns the Turkish weekday name for an ISO date, or "" for
// malformed input.
func WeekdayTr(iso string) string {
	t, err := Parse(iso)
	if err != nil {
		return ""
	}
	return weekdaysTr[int(t.Weekday())]
}

// ToDisplay converts YYYY-MM-DD to the DD.MM.YYYY form used in the UI.
// Malformed input is returned unchanged.
func ToDisplay(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return fmt.Sprintf("%s.%s.%s", pad2(parts[2]), pad2(parts[1]), parts[0])
}

// FromDisplay converts DD.MM.YYYY back to ISO form. Malformed input is
// returned unchanged.
func FromDisplay(display string) string {
	parts := strings.Split(display, ".")
	if len(parts) != 3 {
		return display
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[1]), pad2(parts[0]))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
