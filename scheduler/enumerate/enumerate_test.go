package enumerate

import (
	"testing"
	"time"

	"github.com/shiftsat/shiftsat/pkg/model"
)

func mustWindow(t *testing.T, day time.Time, startHour, endHour int) model.Timespan {
	t.Helper()
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, time.UTC)
	span, err := model.NewTimespan(start, end)
	if err != nil {
		t.Fatalf("NewTimespan failed: %v", err)
	}
	return span
}

func TestCandidates_HourAlignedLengths(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	req := model.CoverageRequirement{
		PositionID:   1,
		PositionName: "Barista",
		Window:       mustWindow(t, day, 7, 13),
	}

	shifts, err := Candidates(req, DefaultOptions())
	if err != nil {
		t.Fatalf("Candidates failed: %v", err)
	}
	if len(shifts) == 0 {
		t.Fatal("expected at least one candidate shift")
	}

	for _, s := range shifts {
		if s.Span.Length().Hours() < 2.5 {
			t.Errorf("candidate shorter than absolute minimum: %v", s.Span.Length())
		}
		if s.Span.Length().Hours() > 4 {
			t.Errorf("candidate longer than max shift length: %v", s.Span.Length())
		}
		if s.PositionID != 1 || s.PositionName != "Barista" {
			t.Errorf("unexpected position identity: %+v", s)
		}
	}
}

func TestCandidates_ClampedToWindowEnd(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	req := model.CoverageRequirement{
		PositionID:   2,
		PositionName: "Cashier",
		Window:       mustWindow(t, day, 20, 23),
	}

	shifts, err := Candidates(req, DefaultOptions())
	if err != nil {
		t.Fatalf("Candidates failed: %v", err)
	}
	for _, s := range shifts {
		if s.Span.End.After(req.Window.End) {
			t.Errorf("candidate %v extends past window end %v", s.Span.End, req.Window.End)
		}
	}
}

func TestCandidates_ShortWindowProducesNoShifts(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	req := model.CoverageRequirement{
		PositionID:   3,
		PositionName: "Runner",
		Window:       mustWindow(t, day, 9, 10),
	}

	shifts, err := Candidates(req, DefaultOptions())
	if err != nil {
		t.Fatalf("Candidates failed: %v", err)
	}
	if len(shifts) != 0 {
		t.Errorf("expected no candidates for a 1-hour window below the minimum length, got %d", len(shifts))
	}
}
