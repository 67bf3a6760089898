package models

import (
	"testing"
	"time"
)

func TestCourseSlot_ActiveAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	hour := time.Hour

	end := now.Add(hour)
	pastEnd := now.Add(-hour)

	tests := []struct {
		name string
		slot CourseSlot
		want bool
	}{
		{"not started yet", CourseSlot{StartTime: now.Add(hour)}, false},
		{"within window", CourseSlot{StartTime: now.Add(-hour), EndTime: &end}, true},
		{"starts exactly now", CourseSlot{StartTime: now, EndTime: &end}, true},
		{"ends exactly now", CourseSlot{StartTime: now.Add(-2 * hour), EndTime: &now}, true},
		{"already over", CourseSlot{StartTime: now.Add(-2 * hour), EndTime: &pastEnd}, false},
		{"open ended once started", CourseSlot{StartTime: now.Add(-hour)}, true},
		{"open ended not started", CourseSlot{StartTime: now.Add(hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.slot.ActiveAt(now); got != tt.want {
				t.Errorf("ActiveAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnumValidity(t *testing.T) {
	for _, v := range []OfferType{OfferPaid, OfferFree, OfferExchange} {
		if !v.Valid() {
			t.Errorf("%s should be valid", v)
		}
	}
	if OfferType("GRATUIT").Valid() {
		t.Error("Unknown offer type should be invalid")
	}

	for _, v := range []Modality{ModalityOnline, ModalityInPerson, ModalityFlexible} {
		if !v.Valid() {
			t.Errorf("%s should be valid", v)
		}
	}
	if Modality("HYBRID").Valid() {
		t.Error("Unknown modality should be invalid")
	}
}
