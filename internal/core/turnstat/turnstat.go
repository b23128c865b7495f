// Package turnstat computes robust cycle-time statistics over repair
// turnaround samples.
//
// Median and median absolute deviation are used instead of mean and
// standard deviation because repair turnaround distributions are heavy
// tailed: one stalled order waiting on a back-ordered part should not
// drag the whole shop's estimate
package turnstat

import (
	"math"
	"sort"
	"time"
)

// hoursPerDay converts durations to fractional days
const hoursPerDay = 24

// Stats is the robust summary of a turnaround sample.
// A zero Stats means "no signal", not "instant turnaround";
// callers must check the sample size themselves
type Stats struct {
	Median float64
	MAD    float64
}

// Compute returns the median and MAD of the given day durations.
// Empty input yields the zero Stats
func Compute(days []float64) Stats {
	if len(days) == 0 {
		return Stats{}
	}
	med := Median(days)
	devs := make([]float64, len(days))
	for i, d := range days {
		devs[i] = math.Abs(d - med)
	}
	return Stats{Median: med, MAD: Median(devs)}
}

// Median returns the middle value of xs, averaging the two central
// values for even-length input. Empty input yields 0.
// xs is not modified
func Median(xs []float64) float64 {
	switch len(xs) {
	case 0:
		return 0
	case 1:
		return xs[0]
	}
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// TurnaroundDays returns the elapsed days between drop-off and the
// status date, clamped to >= 0 to guard against clock skew between the
// two timestamps. ok is false when either date is missing, in which
// case the order must be excluded from the sample
func TurnaroundDays(dropOff, statusDate time.Time) (days float64, ok bool) {
	if dropOff.IsZero() || statusDate.IsZero() {
		return 0, false
	}
	d := statusDate.Sub(dropOff).Hours() / hoursPerDay
	if d < 0 {
		d = 0
	}
	return d, true
}

// ElapsedDays returns the days elapsed from dropOff until now, clamped
// to >= 0. Used as the fallback sample for shops with no completed
// orders yet, and by the prediction engine for in-flight orders
func ElapsedDays(dropOff, now time.Time) float64 {
	if dropOff.IsZero() {
		return 0
	}
	d := now.Sub(dropOff).Hours() / hoursPerDay
	if d < 0 {
		d = 0
	}
	return d
}
