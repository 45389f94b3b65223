package model

import (
	"testing"
	"time"
)

func TestPreference_SpecificTOD_Monotonicity(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	shift := mustSpan(t, day.Add(9*time.Hour), day.Add(12*time.Hour))
	window := mustSpan(t, day.Add(8*time.Hour), day.Add(13*time.Hour))

	before := NewSpecificTOD(nil)
	if got := before.Score(shift); got != 0.0 {
		t.Fatalf("expected 0 score with no windows, got %v", got)
	}

	after := NewSpecificTOD([]Timespan{window})
	if got := after.Score(shift); got != 1.0 {
		t.Fatalf("expected 1 score after adding containing window, got %v", got)
	}

	if after.Score(shift) < before.Score(shift) {
		t.Error("adding a window must not decrease the score of a shift it contains")
	}
}

func TestPreference_RelativeTOD_Buckets(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	p := NewRelativeTOD(1, 0, 0, 0) // all morning

	morning := mustSpan(t, day.Add(8*time.Hour), day.Add(11*time.Hour))
	afternoon := mustSpan(t, day.Add(13*time.Hour), day.Add(16*time.Hour))

	if got := p.Score(morning); got != 1.0 {
		t.Errorf("morning shift score = %v, expected 1.0", got)
	}
	if got := p.Score(afternoon); got != 0.0 {
		t.Errorf("afternoon shift score = %v, expected 0.0", got)
	}
}

func TestPreference_RelativeTOD_DefaultsUniform(t *testing.T) {
	p := NewRelativeTOD(0, 0, 0, 0)
	total := p.MorningWeight + p.AfternoonWeight + p.EveningWeight + p.NightWeight
	if total < 0.999 || total > 1.001 {
		t.Errorf("weights should sum to 1, got %v", total)
	}
}

func TestPreference_Mixin_UsesTagLibrary(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC) // a Monday
	morningShift := mustSpan(t, day.Add(7*time.Hour), day.Add(10*time.Hour))

	p := NewMixin("morning")
	if got := p.Score(morningShift); got != 1.0 {
		t.Errorf("morning tag on a morning shift = %v, expected 1.0", got)
	}

	eveningShift := mustSpan(t, day.Add(18*time.Hour), day.Add(21*time.Hour))
	if got := p.Score(eveningShift); got != 0.0 {
		t.Errorf("morning tag on an evening shift = %v, expected 0.0", got)
	}
}

func TestPreference_Mixin_UnknownTagScoresZero(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	shift := mustSpan(t, day.Add(7*time.Hour), day.Add(10*time.Hour))
	p := NewMixin("not-a-real-tag")
	if got := p.Score(shift); got != 0.0 {
		t.Errorf("unknown tag must score 0, got %v", got)
	}
}

func TestPreference_Average(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	shift := mustSpan(t, day.Add(7*time.Hour), day.Add(10*time.Hour))

	p := NewAverage(NewMixin("morning"), NewMixin("opening"))
	if got := p.Score(shift); got != 1.0 {
		t.Errorf("average of two matching predicates = %v, expected 1.0", got)
	}

	empty := NewAverage()
	if got := empty.Score(shift); got != 0.0 {
		t.Errorf("empty average = %v, expected 0.0", got)
	}
}

func TestPreference_Max_WithGain(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	shift := mustSpan(t, day.Add(7*time.Hour), day.Add(10*time.Hour))

	p := NewMax(7, NewMixin("morning"), NewMixin("evening"))
	if got := p.Score(shift); got != 7.0 {
		t.Errorf("max*gain = %v, expected 7.0", got)
	}
}
