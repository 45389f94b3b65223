package model

import "fmt"

// errTimespanOrder and errShiftCrossesDay are invariant violations in the
// Timespan algebra: programmer errors per spec.md §7, not user-data
// problems, so they are plain errors rather than *errors.AppError — callers
// at the package boundary are expected to have already validated the shapes
// that would trigger these.

func errTimespanOrder(start, end fmt.Stringer) error {
	return fmt.Errorf("model: timespan start must not be after end (start=%v end=%v)", start, end)
}

func errShiftCrossesDay(delta fmt.Stringer) error {
	return fmt.Errorf("model: shift by %v would cross the anchor day for a time-of-day span", delta)
}
