package parser

import (
	"strings"
	"testing"

	"github.com/shiftsat/shiftsat/pkg/model"
)

func TestParseAvailability_BindsDateColumns(t *testing.T) {
	employees := map[string]*model.Employee{
		"Alice": model.NewEmployee("Alice"),
	}

	csv := "Employee,Positions,\"June 03, 2024\",\"June 04, 2024\"\n" +
		"Alice,\"Barista, Cashier\",8am-12pm,all day\n"

	if err := ParseAvailability(strings.NewReader(csv), employees); err != nil {
		t.Fatalf("ParseAvailability failed: %v", err)
	}

	alice := employees["Alice"]
	if !alice.HasPosition("Barista") || !alice.HasPosition("Cashier") {
		t.Errorf("expected Alice to have Barista and Cashier positions, got %+v", alice.Positions)
	}
	if len(alice.Availability) != 2 {
		t.Fatalf("expected 2 availability windows, got %d", len(alice.Availability))
	}
}

func TestParseAvailability_IgnoresUnknownEmployee(t *testing.T) {
	employees := map[string]*model.Employee{}
	csv := "Employee,Positions,\"June 03, 2024\"\nGhost,Barista,all day\n"

	if err := ParseAvailability(strings.NewReader(csv), employees); err != nil {
		t.Fatalf("ParseAvailability failed: %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("expected no employees to be added by availability parsing")
	}
}

func TestParseAvailability_IgnoresNonDateColumns(t *testing.T) {
	employees := map[string]*model.Employee{
		"Bob": model.NewEmployee("Bob"),
	}
	csv := "Employee,Positions,Notes\nBob,Barista,some free-text note\n"

	if err := ParseAvailability(strings.NewReader(csv), employees); err != nil {
		t.Fatalf("ParseAvailability failed: %v", err)
	}
	if len(employees["Bob"].Availability) != 0 {
		t.Errorf("expected no availability parsed from a non-date column")
	}
}
