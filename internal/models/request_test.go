package models

import "testing"

func TestRequestStatus_ValidDecision(t *testing.T) {
	if !RequestAccepted.ValidDecision() || !RequestDeclined.ValidDecision() {
		t.Error("ACCEPTED and DECLINED are the only decisions")
	}
	if RequestPending.ValidDecision() {
		t.Error("PENDING is a starting state, not a decision")
	}
	if RequestStatus("CANCELLED").ValidDecision() {
		t.Error("Unknown status should be rejected")
	}
}
