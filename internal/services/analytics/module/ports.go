package module

import (
	"context"

	"gearbox/internal/platform/cache"
	"gearbox/internal/services/analytics/domain"
	asvc "gearbox/internal/services/analytics/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptAnalyticsPort struct{ svc asvc.Service }

// ListShops returns the fleet overview rows
func (a adaptAnalyticsPort) ListShops(ctx context.Context) ([]domain.ShopSummary, error) {
	return a.svc.ListShops(ctx)
}

// GetShop returns one shop's analytics profile
func (a adaptAnalyticsPort) GetShop(ctx context.Context, name string) (*domain.ShopProfile, error) {
	return a.svc.GetShop(ctx, name)
}

// PredictOrder estimates completion for one order
func (a adaptAnalyticsPort) PredictOrder(ctx context.Context, shopName, orderID string) (*domain.Prediction, error) {
	return a.svc.PredictOrder(ctx, shopName, orderID)
}

// InvalidateCache relays the repository-change hook
func (a adaptAnalyticsPort) InvalidateCache(ctx context.Context, in domain.InvalidateInput) (domain.InvalidateResult, error) {
	return a.svc.InvalidateCache(ctx, in)
}

// CacheStats exposes cache counters for health surfaces
func (a adaptAnalyticsPort) CacheStats(ctx context.Context) (cache.Stats, error) {
	return a.svc.CacheStats(ctx)
}
