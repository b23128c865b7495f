// Package domain defines analytics transport shapes and ports
package domain

import "time"

// RepairOrder is the transport shape of one repair order record
type RepairOrder struct {
	ID         string     `json:"id"`
	ShopName   string     `json:"shop_name"`
	Status     string     `json:"status"`
	DropOff    *time.Time `json:"drop_off,omitempty"`
	StatusDate *time.Time `json:"status_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	Cost       float64    `json:"cost"`
}

// CreateOrderInput is the admin payload for recording a new order
type CreateOrderInput struct {
	ShopName   string     `json:"shop_name" validate:"required"`
	Status     string     `json:"status" validate:"required"`
	DropOff    *time.Time `json:"drop_off,omitempty"`
	StatusDate *time.Time `json:"status_date,omitempty"`
	Cost       float64    `json:"cost" validate:"gte=0"`
}

// UpdateOrderInput carries the mutable order fields; nil means keep
type UpdateOrderInput struct {
	Status     *string    `json:"status,omitempty"`
	StatusDate *time.Time `json:"status_date,omitempty"`
	Cost       *float64   `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

// ShippingEstimate is the shipping band in days for a shop's state
type ShippingEstimate struct {
	Avg int `json:"avg"`
	Min int `json:"min"`
	Max int `json:"max"`
}

// Trend describes the direction of a shop's recent turnaround times
type Trend struct {
	Direction     string  `json:"direction"`
	RecentMedian  float64 `json:"recent_median"`
	OverallMedian float64 `json:"overall_median"`
}

// ShopProfile is the full analytics view served for one shop
type ShopProfile struct {
	DisplayName      string             `json:"display_name"`
	NormalizedName   string             `json:"normalized_name"`
	State            string             `json:"state"`
	Shipping         ShippingEstimate   `json:"shipping_days"`
	MedianTurnaround float64            `json:"median_turnaround"`
	Variance         float64            `json:"variance"`
	StatusVelocity   map[string]float64 `json:"status_velocity"`
	Trend            Trend              `json:"trend"`
	ActiveOrderIDs   []string           `json:"active_order_ids"`
	TotalOrders      int                `json:"total_orders"`
}

// ShopSummary is the fleet-overview row served by the shop list
type ShopSummary struct {
	DisplayName      string  `json:"display_name"`
	NormalizedName   string  `json:"normalized_name"`
	State            string  `json:"state"`
	MedianTurnaround float64 `json:"median_turnaround"`
	TrendDirection   string  `json:"trend_direction"`
	TotalOrders      int     `json:"total_orders"`
	ActiveOrders     int     `json:"active_orders"`
}

// Prediction is the completion estimate for one in-flight order
type Prediction struct {
	OrderID        string    `json:"order_id"`
	ShopName       string    `json:"shop_name"`
	EstimatedDate  time.Time `json:"estimated_date"`
	ConfidenceDays int       `json:"confidence_days"`
	Status         string    `json:"status"`
}

// InvalidateInput is the admin payload for targeted cache invalidation
type InvalidateInput struct {
	Reason   string   `json:"reason" validate:"omitempty,oneof=create update delete manual"`
	Shops    []string `json:"shops,omitempty"`
	Statuses []string `json:"statuses,omitempty"`
	All      bool     `json:"all,omitempty"`
}

// InvalidateResult reports how many entries an invalidation removed
type InvalidateResult struct {
	Removed int `json:"removed"`
}

// WarmResult reports what a warming pass populated
type WarmResult struct {
	WarmedKeys int      `json:"warmed_keys"`
	Shops      []string `json:"shops"`
}
