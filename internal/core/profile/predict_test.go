package profile

import (
	"testing"
	"time"

	"gearbox/internal/core/geo"
)

func testProfiles() map[string]*Profile {
	return map[string]*Profile{
		"ACME REPAIR, TX": {
			DisplayName:      "Acme Repair, TX",
			NormalizedName:   "ACME REPAIR, TX",
			MedianTurnaround: 10,
			Variance:         1,
			Shipping:         geo.Estimate{Avg: 2, Min: 1, Max: 3},
		},
	}
}

func TestPredict_OnTrack(t *testing.T) {
	t.Parallel()

	// expected = 10 + 2 = 12 days, confidence = ceil(1 + 3 - 1) = 3
	o := Order{ID: "1", ShopName: "acme   Repair, tx", DropOff: now.AddDate(0, 0, -5)}
	pred := Predict(o, testProfiles(), now)
	if pred == nil {
		t.Fatal("Predict returned nil")
	}
	if pred.Status != PredictOnTrack {
		t.Fatalf("status = %q, want on-track", pred.Status)
	}
	if pred.ConfidenceDays != 3 {
		t.Fatalf("confidence = %d, want 3", pred.ConfidenceDays)
	}
	// 7 days remain of the 12 expected
	want := now.Add(7 * 24 * time.Hour)
	if d := pred.EstimatedDate.Sub(want); d < -time.Minute || d > time.Minute {
		t.Fatalf("estimated = %v, want %v", pred.EstimatedDate, want)
	}
}

func TestPredict_AtRisk(t *testing.T) {
	t.Parallel()

	// elapsed 13 > expected 12 but within the 3-day confidence window
	o := Order{ID: "1", ShopName: "Acme Repair, TX", DropOff: now.AddDate(0, 0, -13)}
	pred := Predict(o, testProfiles(), now)
	if pred.Status != PredictAtRisk {
		t.Fatalf("status = %q, want at-risk", pred.Status)
	}
	// overdue work never yields a past estimate
	if pred.EstimatedDate.Before(now) {
		t.Fatalf("estimated %v is before now", pred.EstimatedDate)
	}
}

func TestPredict_Overdue(t *testing.T) {
	t.Parallel()

	// elapsed 20 > expected 12 + confidence 3
	o := Order{ID: "1", ShopName: "Acme Repair, TX", DropOff: now.AddDate(0, 0, -20)}
	pred := Predict(o, testProfiles(), now)
	if pred.Status != PredictOverdue {
		t.Fatalf("status = %q, want overdue", pred.Status)
	}
}

func TestPredict_NoSignal(t *testing.T) {
	t.Parallel()

	// unknown shop
	o := Order{ID: "1", ShopName: "Nowhere Garage", DropOff: now.AddDate(0, 0, -5)}
	if pred := Predict(o, testProfiles(), now); pred != nil {
		t.Fatalf("unknown shop prediction = %+v, want nil", pred)
	}

	// missing drop-off
	o = Order{ID: "2", ShopName: "Acme Repair, TX"}
	if pred := Predict(o, testProfiles(), now); pred != nil {
		t.Fatalf("no drop-off prediction = %+v, want nil", pred)
	}
}
