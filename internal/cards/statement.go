package cards

import (
	"fmt"

	"github.com/escafood/kasadefteri-backend/pkg/dates"
)

// NextDueDate resolves the next upcoming payment date seen from the
// reference date. Due days past a short month clamp to its last day.
func NextDueDate(dueDay int, referenceIso string) (string, error) {
	if dueDay < 1 || dueDay > 31 {
		return "", fmt.Errorf("due day %d out of range", dueDay)
	}
	ref, err := dates.Parse(referenceIso)
	if err != nil {
		return "", err
	}

	year, month := ref.Year(), int(ref.Month())
	candidate := clampedDate(year, month, dueDay)
	if candidate < referenceIso {
		year, month = nextMonth(year, month)
		candidate = clampedDate(year, month, dueDay)
	}
	return candidate, nil
}

// StatementClosingDate resolves the closing date of the statement whose
// payment falls on the next due date.
//
// When the cutoff day precedes the due day the statement closes in the
// due date's own month; otherwise it closed in the month before,
// rolling the year back across January.
func StatementClosingDate(cutoffDay, dueDay int, referenceIso string) (string, error) {
	if cutoffDay < 1 || cutoffDay > 31 {
		return "", fmt.Errorf("cutoff day %d out of range", cutoffDay)
	}
	due, err := NextDueDate(dueDay, referenceIso)
	if err != nil {
		return "", err
	}
	dueDate, err := dates.Parse(due)
	if err != nil {
		return "", err
	}

	year, month := dueDate.Year(), int(dueDate.Month())
	if cutoffDay >= dueDay {
		year, month = prevMonth(year, month)
	}
	return clampedDate(year, month, cutoffDay), nil
}

// InCurrentStatement reports whether a transaction dated txDateIso
// counts against the statement whose payment is next due. The closing
// date itself is inclusive.
func InCurrentStatement(txDateIso string, cutoffDay, dueDay int, referenceIso string) (bool, error) {
	if !dates.IsValid(txDateIso) {
		return false, fmt.Errorf("invalid transaction date %q", txDateIso)
	}
	closing, err := StatementClosingDate(cutoffDay, dueDay, referenceIso)
	if err != nil {
		return false, err
	}
	// Zero-padded ISO dates order lexicographically.
	return txDateIso <= closing, nil
}

func clampedDate(year, month, day int) string {
	if max := dates.DaysInMonth(year, month); day > max {
		day = max
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func nextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

func prevMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
