package profile

import (
	"math"
	"time"

	"gearbox/internal/core/shopname"
	"gearbox/internal/core/turnstat"
)

// Prediction statuses
const (
	PredictOnTrack = "on-track"
	PredictAtRisk  = "at-risk"
	PredictOverdue = "overdue"
)

// Prediction is the completion estimate for one in-flight order
type Prediction struct {
	EstimatedDate  time.Time
	ConfidenceDays int
	Status         string
}

// Predict estimates when an order will complete based on its shop's
// profile. Returns nil when the shop has no profile or the order has
// no drop-off date; a prediction without either anchor would be noise
func Predict(o Order, profiles map[string]*Profile, now time.Time) *Prediction {
	if o.DropOff.IsZero() {
		return nil
	}
	p, ok := profiles[shopname.GroupKey(o.ShopName)]
	if !ok || p == nil {
		return nil
	}

	expected := p.MedianTurnaround + float64(p.Shipping.Avg)
	elapsed := turnstat.ElapsedDays(o.DropOff, now)
	remaining := expected - elapsed
	if remaining < 0 {
		remaining = 0
	}

	confidence := math.Ceil(p.Variance + float64(p.Shipping.Max-p.Shipping.Min))

	status := PredictOnTrack
	switch {
	case elapsed > expected+confidence:
		status = PredictOverdue
	case elapsed > expected:
		status = PredictAtRisk
	}

	return &Prediction{
		EstimatedDate:  now.Add(time.Duration(remaining * float64(24*time.Hour))),
		ConfidenceDays: int(confidence),
		Status:         status,
	}
}
