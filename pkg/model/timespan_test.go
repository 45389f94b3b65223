package model

import (
	"testing"
	"time"
)

func mustSpan(t *testing.T, start, end time.Time) Timespan {
	t.Helper()
	s, err := NewTimespan(start, end)
	if err != nil {
		t.Fatalf("NewTimespan(%v, %v) failed: %v", start, end, err)
	}
	return s
}

func TestTimespan_OverlapsWith(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		a, b     Timespan
		expected bool
	}{
		{
			name:     "重叠区间",
			a:        mustSpan(t, day.Add(9*time.Hour), day.Add(12*time.Hour)),
			b:        mustSpan(t, day.Add(11*time.Hour), day.Add(14*time.Hour)),
			expected: true,
		},
		{
			name:     "首尾相接不重叠",
			a:        mustSpan(t, day.Add(9*time.Hour), day.Add(12*time.Hour)),
			b:        mustSpan(t, day.Add(12*time.Hour), day.Add(15*time.Hour)),
			expected: false,
		},
		{
			name:     "完全分离",
			a:        mustSpan(t, day.Add(9*time.Hour), day.Add(10*time.Hour)),
			b:        mustSpan(t, day.Add(13*time.Hour), day.Add(14*time.Hour)),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.OverlapsWith(tt.b); got != tt.expected {
				t.Errorf("OverlapsWith() = %v, expected %v", got, tt.expected)
			}
			if got := tt.b.OverlapsWith(tt.a); got != tt.expected {
				t.Errorf("OverlapsWith() not symmetric: got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTimespan_OverlapsWith_Irreflexive(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	a := mustSpan(t, day.Add(9*time.Hour), day.Add(9*time.Hour))
	if a.OverlapsWith(a) {
		t.Error("a zero-length span must not overlap with itself")
	}
}

func TestTimespan_Contains(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	outer := mustSpan(t, day.Add(9*time.Hour), day.Add(17*time.Hour))

	tests := []struct {
		name     string
		inner    Timespan
		expected bool
	}{
		{"完全包含", mustSpan(t, day.Add(10*time.Hour), day.Add(12*time.Hour)), true},
		{"边界相等", mustSpan(t, day.Add(9*time.Hour), day.Add(17*time.Hour)), true},
		{"超出结束边界", mustSpan(t, day.Add(10*time.Hour), day.Add(18*time.Hour)), false},
		{"超出开始边界", mustSpan(t, day.Add(8*time.Hour), day.Add(10*time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.expected {
				t.Errorf("Contains() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTimespan_WithDateStripDateRoundTrip(t *testing.T) {
	tod := mustSpan(t, timespanAnchorDate.Add(9*time.Hour), timespanAnchorDate.Add(17*time.Hour))
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	bound, err := tod.WithDate(day)
	if err != nil {
		t.Fatalf("WithDate failed: %v", err)
	}

	stripped, err := bound.StripDate()
	if err != nil {
		t.Fatalf("StripDate failed: %v", err)
	}

	if !stripped.Equal(tod) {
		t.Errorf("round trip mismatch: got %v, expected %v", stripped, tod)
	}
}

func TestTimespan_Length(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	s := mustSpan(t, day.Add(9*time.Hour), day.Add(12*time.Hour))
	if got := s.Length(); got != 3*time.Hour {
		t.Errorf("Length() = %v, expected 3h", got)
	}
}

func TestNewTimespan_RejectsBackwards(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	_, err := NewTimespan(day.Add(12*time.Hour), day.Add(9*time.Hour))
	if err == nil {
		t.Error("expected error for start after end")
	}
}

func TestTimespan_Shift(t *testing.T) {
	tod := mustSpan(t, timespanAnchorDate.Add(9*time.Hour), timespanAnchorDate.Add(12*time.Hour))
	shifted, err := tod.Shift(2 * time.Hour)
	if err != nil {
		t.Fatalf("Shift failed: %v", err)
	}
	expected := mustSpan(t, timespanAnchorDate.Add(11*time.Hour), timespanAnchorDate.Add(14*time.Hour))
	if !shifted.Equal(expected) {
		t.Errorf("Shift() = %v, expected %v", shifted, expected)
	}
}

func TestTimespan_Shift_RejectsCrossingDay(t *testing.T) {
	tod := mustSpan(t, timespanAnchorDate.Add(22*time.Hour), timespanAnchorDate.Add(23*time.Hour))
	if _, err := tod.Shift(3 * time.Hour); err == nil {
		t.Error("expected error shifting a time-of-day span across midnight")
	}
}

func TestTimespan_Union(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	a := mustSpan(t, day.Add(9*time.Hour), day.Add(12*time.Hour))
	b := mustSpan(t, day.Add(11*time.Hour), day.Add(15*time.Hour))
	union := a.Union(b)
	expected := mustSpan(t, day.Add(9*time.Hour), day.Add(15*time.Hour))
	if !union.Equal(expected) {
		t.Errorf("Union() = %v, expected %v", union, expected)
	}
}
