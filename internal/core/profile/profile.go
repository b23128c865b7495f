// Package profile builds per-shop analytics profiles from raw repair
// order records: grouping by normalized shop name, robust turnaround
// statistics, trend detection and status velocity
package profile

import (
	"strings"
	"time"

	"gearbox/internal/core/geo"
	"gearbox/internal/core/shopname"
	"gearbox/internal/core/turnstat"
)

// Trend directions
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// trend window boundaries and thresholds
const (
	recentWindowDays   = 30
	olderWindowDays    = 90
	minTrendSamples    = 2
	improvingThreshold = 0.9
	decliningThreshold = 1.1
)

// Order is the input record the analytics core consumes. The
// repository layer maps its own rows onto this shape; the core never
// sees where the record came from
type Order struct {
	ID         string
	ShopName   string
	Status     string
	DropOff    time.Time
	StatusDate time.Time
	Cost       float64
}

// Completed reports whether the order has reached a terminal status
func (o Order) Completed() bool {
	s := strings.ToUpper(o.Status)
	return strings.Contains(s, "COMPLETED") || strings.Contains(s, "RECEIVED")
}

// Trend summarizes the direction of a shop's recent turnaround times
// against its 30-90 day history
type Trend struct {
	Direction     string
	RecentMedian  float64
	OverallMedian float64
}

// Profile is the full analytics view of one shop. Profiles are built
// wholesale and never mutated in place, so a caller holding one never
// observes a torn update
type Profile struct {
	DisplayName      string
	NormalizedName   string
	State            string
	Shipping         geo.Estimate
	MedianTurnaround float64
	// Variance holds the median absolute deviation of the turnaround
	// sample, kept under the name downstream consumers already use
	Variance       float64
	StatusVelocity map[string]float64
	Trend          Trend
	ActiveOrderIDs []string
	TotalOrders    int
}

// Group buckets orders by normalized shop name. Orders with an empty
// shop name land under the sentinel unknown group
func Group(orders []Order) map[string][]Order {
	out := make(map[string][]Order)
	for _, o := range orders {
		key := shopname.GroupKey(o.ShopName)
		out[key] = append(out[key], o)
	}
	return out
}

// BuildAll builds a profile per normalized group. now anchors the
// trend windows and velocity math
func BuildAll(orders []Order, now time.Time) map[string]*Profile {
	out := make(map[string]*Profile)
	for key, group := range Group(orders) {
		if p := Build(key, group, now); p != nil {
			out[key] = p
		}
	}
	return out
}

// Build constructs the profile for one normalized group from its
// orders. Returns nil for an empty group. Insufficient data degrades
// to zeros and empty collections rather than an error
func Build(group string, orders []Order, now time.Time) *Profile {
	if len(orders) == 0 {
		return nil
	}

	var completed, active []Order
	for _, o := range orders {
		if o.Completed() {
			completed = append(completed, o)
		} else {
			active = append(active, o)
		}
	}

	stats := turnstat.Compute(turnaroundSample(completed, active, now))
	state := deriveState(orders[0].ShopName)

	p := &Profile{
		DisplayName:      electDisplayName(orders),
		NormalizedName:   group,
		State:            state,
		Shipping:         geo.EstimateShipping(state),
		MedianTurnaround: stats.Median,
		Variance:         stats.MAD,
		StatusVelocity:   statusVelocity(orders, now),
		Trend:            detectTrend(completed, stats.Median, now),
		ActiveOrderIDs:   activeIDs(active),
		TotalOrders:      len(orders),
	}
	return p
}

// turnaroundSample prefers completed-order turnarounds; a shop with no
// completions yet falls back to elapsed time on its active orders so
// new shops still get a usable estimate
func turnaroundSample(completed, active []Order, now time.Time) []float64 {
	var sample []float64
	for _, o := range completed {
		if d, ok := turnstat.TurnaroundDays(o.DropOff, o.StatusDate); ok {
			sample = append(sample, d)
		}
	}
	if len(sample) > 0 {
		return sample
	}
	for _, o := range active {
		if !o.DropOff.IsZero() {
			sample = append(sample, turnstat.ElapsedDays(o.DropOff, now))
		}
	}
	return sample
}

// electDisplayName picks the most frequent raw spelling in the group,
// breaking ties by the longest string so the result is deterministic
func electDisplayName(orders []Order) string {
	counts := make(map[string]int, len(orders))
	for _, o := range orders {
		name := strings.TrimSpace(o.ShopName)
		if name == "" {
			continue
		}
		counts[name]++
	}
	var best string
	var bestN int
	for name, n := range counts {
		if n > bestN || (n == bestN && betterTie(name, best)) {
			best, bestN = name, n
		}
	}
	if best == "" {
		return shopname.UnknownDisplay
	}
	return best
}

// betterTie orders equal-frequency candidates: longer wins, then
// lexicographically smaller, so map iteration order cannot leak through
func betterTie(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

// deriveState takes the text after the first comma of the raw shop
// name. Best effort only; unknown codes fall through to the default
// shipping estimate downstream
func deriveState(rawName string) string {
	_, after, found := strings.Cut(rawName, ",")
	if !found {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(after))
}

// detectTrend compares the recent window (status date within 30 days)
// against the older window (30-90 days ago). Both windows need at
// least two samples; otherwise the trend is stable and the recent
// median defaults to the overall median
func detectTrend(completed []Order, overallMedian float64, now time.Time) Trend {
	var recent, older []float64
	for _, o := range completed {
		d, ok := turnstat.TurnaroundDays(o.DropOff, o.StatusDate)
		if !ok {
			continue
		}
		age := turnstat.ElapsedDays(o.StatusDate, now)
		switch {
		case age <= recentWindowDays:
			recent = append(recent, d)
		case age <= olderWindowDays:
			older = append(older, d)
		}
	}

	tr := Trend{Direction: TrendStable, RecentMedian: overallMedian, OverallMedian: overallMedian}
	if len(recent) < minTrendSamples || len(older) < minTrendSamples {
		return tr
	}

	recentMed := turnstat.Median(recent)
	olderMed := turnstat.Median(older)
	tr.RecentMedian = recentMed
	switch {
	case recentMed < improvingThreshold*olderMed:
		tr.Direction = TrendImproving
	case recentMed > decliningThreshold*olderMed:
		tr.Direction = TrendDeclining
	}
	return tr
}

// statusVelocity computes, per distinct status value, the median days
// since orders entered that status
func statusVelocity(orders []Order, now time.Time) map[string]float64 {
	ages := make(map[string][]float64)
	for _, o := range orders {
		if o.Status == "" || o.StatusDate.IsZero() {
			continue
		}
		ages[o.Status] = append(ages[o.Status], turnstat.ElapsedDays(o.StatusDate, now))
	}
	out := make(map[string]float64, len(ages))
	for status, xs := range ages {
		out[status] = turnstat.Median(xs)
	}
	return out
}

func activeIDs(active []Order) []string {
	ids := make([]string, 0, len(active))
	for _, o := range active {
		ids = append(ids, o.ID)
	}
	return ids
}
