package turnstat

import (
	"testing"
	"time"

	"gearbox/internal/platform/testkit"
)

func TestMedian(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"unsorted heavy tail", []float64{100, 10, 14, 12}, 13},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Median(tc.in); got != tc.want {
				t.Fatalf("Median(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []float64{5, 1, 3}
	Median(in)
	if in[0] != 5 || in[1] != 1 || in[2] != 3 {
		t.Fatalf("input reordered: %v", in)
	}
}

func TestCompute_OutlierResistance(t *testing.T) {
	t.Parallel()

	// the 100-day outlier should not inflate the dispersion the way a
	// standard deviation would
	got := Compute([]float64{10, 12, 14, 100})
	testkit.CloseEnough(t, got.Median, 13, 1e-9)
	testkit.CloseEnough(t, got.MAD, 2, 1e-9)
}

func TestCompute_Empty(t *testing.T) {
	t.Parallel()

	if got := Compute(nil); got != (Stats{}) {
		t.Fatalf("Compute(nil) = %+v, want zero", got)
	}
}

func TestTurnaroundDays(t *testing.T) {
	t.Parallel()

	drop := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	got, ok := TurnaroundDays(drop, drop.AddDate(0, 0, 12))
	if !ok {
		t.Fatal("expected ok")
	}
	testkit.CloseEnough(t, got, 12, 1e-9)

	// clock skew clamps to zero rather than going negative
	got, ok = TurnaroundDays(drop, drop.Add(-6*time.Hour))
	if !ok || got != 0 {
		t.Fatalf("skewed dates = (%v, %v), want (0, true)", got, ok)
	}

	if _, ok := TurnaroundDays(time.Time{}, drop); ok {
		t.Fatal("missing drop-off should not produce a sample")
	}
	if _, ok := TurnaroundDays(drop, time.Time{}); ok {
		t.Fatal("missing status date should not produce a sample")
	}
}

func TestElapsedDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	testkit.CloseEnough(t, ElapsedDays(now.AddDate(0, 0, -3), now), 3, 1e-9)

	if got := ElapsedDays(time.Time{}, now); got != 0 {
		t.Fatalf("zero drop-off elapsed = %v", got)
	}
	if got := ElapsedDays(now.Add(time.Hour), now); got != 0 {
		t.Fatalf("future drop-off elapsed = %v, want 0", got)
	}
}
