package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidRecurrence = errors.New("model: invalid recurrence")

type Recurrence string

const (
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
	RecurrenceNever   Recurrence = "never"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly, RecurrenceNever:
		return true
	default:
		return false
	}
}

// ParseRecurrence accepts canonical names and the Portuguese names written by
// older data files. Blank input yields RecurrenceNever.
func ParseRecurrence(raw string) (Recurrence, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return RecurrenceNever, nil
	case "daily", "diaria", "diária":
		return RecurrenceDaily, nil
	case "weekly", "semanal":
		return RecurrenceWeekly, nil
	case "monthly", "mensal":
		return RecurrenceMonthly, nil
	case "yearly", "anual":
		return RecurrenceYearly, nil
	case "never", "nunca":
		return RecurrenceNever, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRecurrence, raw)
	}
}

// Next advances due by one recurrence step. Month and year steps keep the
// day of month, clamped to the last day of the target month. RecurrenceNever
// and unknown values return due unchanged.
func (r Recurrence) Next(due time.Time) time.Time {
	base := Day(due)
	switch r {
	case RecurrenceDaily:
		return base.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return base.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return addMonthsClamped(base, 1)
	case RecurrenceYearly:
		return addMonthsClamped(base, 12)
	default:
		return base
	}
}

func addMonthsClamped(from time.Time, months int) time.Time {
	y, m, d := from.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
