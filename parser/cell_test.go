package parser

import (
	"testing"
	"time"
)

func TestParseCell_AllDay(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	spans, err := ParseCell(day, "All Day")
	if err != nil {
		t.Fatalf("ParseCell failed: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Length() < 23*time.Hour {
		t.Errorf("expected near-24h span, got %v", spans[0].Length())
	}
}

func TestParseCell_MultipleWindows(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	spans, err := ParseCell(day, "8am-12pm, 2pm-6pm")
	if err != nil {
		t.Fatalf("ParseCell failed: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Length() != 4*time.Hour {
		t.Errorf("first window length = %v, expected 4h", spans[0].Length())
	}
	if spans[1].Length() != 4*time.Hour {
		t.Errorf("second window length = %v, expected 4h", spans[1].Length())
	}
}

func TestParseCell_MidnightAlias(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	spans, err := ParseCell(day, "6pm-midnight")
	if err != nil {
		t.Fatalf("ParseCell failed: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].End.Hour() != 23 || spans[0].End.Minute() != 59 {
		t.Errorf("midnight alias did not pin to 11:59pm, got %v", spans[0].End)
	}
}

func TestParseCell_SkipsNoiseFragments(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	spans, err := ParseCell(day, "8am-12pm, n/a")
	if err != nil {
		t.Fatalf("ParseCell failed: %v", err)
	}
	if len(spans) != 1 {
		t.Errorf("expected noise fragment to be skipped, got %d spans", len(spans))
	}
}

func TestParseCell_Empty(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	spans, err := ParseCell(day, "")
	if err != nil {
		t.Fatalf("ParseCell failed: %v", err)
	}
	if len(spans) != 0 {
		t.Errorf("expected no spans for empty cell, got %d", len(spans))
	}
}
