package model

import (
	"testing"
	"time"
)

func TestSlotFor(t *testing.T) {
	plan := DefaultPostingPlan()

	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	slot, err := plan.SlotFor(monday)
	if err != nil {
		t.Fatal(err)
	}
	if slot.Poll || slot.Category != CategoryStudentVisa {
		t.Errorf("Monday slot = %+v, want student_visa", slot)
	}

	friday := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	slot, err = plan.SlotFor(friday)
	if err != nil {
		t.Fatal(err)
	}
	if !slot.Poll {
		t.Errorf("Friday slot = %+v, want poll", slot)
	}
}

func TestSlotFor_MissingDay(t *testing.T) {
	plan := PostingPlan{"Monday": string(CategoryGeneral)}
	if _, err := plan.SlotFor(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Error("expected error for uncovered weekday")
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultPostingPlan().Validate(); err != nil {
		t.Errorf("default plan invalid: %v", err)
	}

	bad := DefaultPostingPlan()
	bad["Monday"] = "tourist_visa"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown category")
	}

	incomplete := DefaultPostingPlan()
	delete(incomplete, "Sunday")
	if err := incomplete.Validate(); err == nil {
		t.Error("expected error for missing weekday")
	}
}
