package geo

import (
	"testing"
)

func TestHaversineMiles_KnownDistances(t *testing.T) {
	t.Parallel()

	// Austin to Dallas is roughly 180 miles great-circle
	d := haversineMiles(30.2672, -97.7431, 32.7767, -96.7970)
	if d < 160 || d > 200 {
		t.Fatalf("Austin-Dallas = %.1f mi, want ~180", d)
	}

	// zero distance
	if d := haversineMiles(30, -97, 30, -97); d != 0 {
		t.Fatalf("same point distance = %v", d)
	}

	// Austin to Anchorage is well past the farthest tier
	d = haversineMiles(30.2672, -97.7431, 61.3707, -152.4044)
	if d < 3000 {
		t.Fatalf("Austin-Anchorage = %.1f mi, want > 3000", d)
	}
}

func TestEstimateShipping_Tiers(t *testing.T) {
	t.Parallel()

	// TX centroid is under 400 miles from HQ
	if got := EstimateShipping("TX"); got != (Estimate{Avg: 2, Min: 1, Max: 3}) {
		t.Fatalf("TX estimate = %+v", got)
	}

	// Alaska lands in the farthest tier
	if got := EstimateShipping("AK"); got != (Estimate{Avg: 5, Min: 4, Max: 7}) {
		t.Fatalf("AK estimate = %+v", got)
	}

	// mid-country states land between
	ok := EstimateShipping("OK")
	if ok.Avg < 2 || ok.Avg > 4 {
		t.Fatalf("OK estimate = %+v", ok)
	}
}

func TestEstimateShipping_UnknownState(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"", "ZZ", "tx", "PUERTO RICO"} {
		if got := EstimateShipping(code); got != DefaultEstimate {
			t.Fatalf("EstimateShipping(%q) = %+v, want default", code, got)
		}
	}
}

func TestEstimateShipping_TotalOverAllCentroids(t *testing.T) {
	t.Parallel()

	for code := range centroids {
		got := EstimateShipping(code)
		if got.Min <= 0 || got.Max < got.Avg || got.Avg < got.Min {
			t.Fatalf("EstimateShipping(%s) = %+v, malformed band", code, got)
		}
		if got.Max > 7 {
			t.Fatalf("EstimateShipping(%s) = %+v, above widest tier", code, got)
		}
	}
	if len(centroids) < 50 {
		t.Fatalf("centroid table has %d entries, want >= 50", len(centroids))
	}
}
