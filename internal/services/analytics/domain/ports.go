package domain

import (
	"context"

	"gearbox/internal/platform/cache"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	ListShops(ctx context.Context) ([]ShopSummary, error)
	GetShop(ctx context.Context, name string) (*ShopProfile, error)
	PredictOrder(ctx context.Context, shopName, orderID string) (*Prediction, error)

	CreateOrder(ctx context.Context, in CreateOrderInput) (*RepairOrder, error)
	UpdateOrder(ctx context.Context, id string, in UpdateOrderInput) (*RepairOrder, error)
	DeleteOrder(ctx context.Context, id string) error

	InvalidateCache(ctx context.Context, in InvalidateInput) (InvalidateResult, error)
	WarmCache(ctx context.Context) (WarmResult, error)
	CacheStats(ctx context.Context) (cache.Stats, error)
}
