package model

import (
	"testing"
	"time"
)

func TestEmployee_HasPosition(t *testing.T) {
	e := NewEmployee("Alice")
	e.Positions["Barista"] = struct{}{}

	tests := []struct {
		position string
		expected bool
	}{
		{"Barista", true},
		{"Cashier", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			if got := e.HasPosition(tt.position); got != tt.expected {
				t.Errorf("HasPosition(%s) = %v, expected %v", tt.position, got, tt.expected)
			}
		})
	}
}

func TestEmployee_IsAvailableFor(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	e := NewEmployee("Bob")
	e.Availability = []Timespan{mustSpan(t, day.Add(9*time.Hour), day.Add(17*time.Hour))}

	inside := mustSpan(t, day.Add(10*time.Hour), day.Add(13*time.Hour))
	outside := mustSpan(t, day.Add(16*time.Hour), day.Add(19*time.Hour))

	if !e.IsAvailableFor(inside) {
		t.Error("expected shift fully inside availability window to be available")
	}
	if e.IsAvailableFor(outside) {
		t.Error("expected shift extending past availability window to be unavailable")
	}
}

func TestEmployee_ShiftPreferenceScore_UnavailablePenalty(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	e := NewEmployee("Carol")
	e.Preferences = NewAverage()
	shift := mustSpan(t, day.Add(9*time.Hour), day.Add(13*time.Hour))

	score := e.ShiftPreferenceScore(shift)
	if score > -9000 {
		t.Errorf("expected large unavailability penalty, got %v", score)
	}
}

func TestEmployee_SatisfactionDetails_DeviationFromPreferred(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC) // a Monday
	e := NewEmployee("Dana")
	e.PreferredHours = 6
	e.Preferences = NewAverage()
	e.Availability = []Timespan{mustSpan(t, day.Add(0*time.Hour), day.Add(23*time.Hour))}

	shifts := []Timespan{mustSpan(t, day.Add(9*time.Hour), day.Add(12*time.Hour))} // 3h worked

	deviation, _ := e.SatisfactionDetails(shifts)
	if deviation != 3.0 { // |3 - 6| * deviation_weight(1.0)
		t.Errorf("deviation = %v, expected 3.0", deviation)
	}
}
