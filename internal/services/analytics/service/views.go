package service

import (
	"context"
	"sort"

	"gearbox/internal/core/profile"
	"gearbox/internal/core/shopname"
	"gearbox/internal/platform/cache"
	perr "gearbox/internal/platform/errors"
	"gearbox/internal/services/analytics/domain"
	"gearbox/internal/services/analytics/repo"
)

// warmTopShops is how many of the busiest shops get pre-built entries
const warmTopShops = 10

// ListShops serves the fleet overview through the global cache entry
func (s *Svc) ListShops(ctx context.Context) ([]domain.ShopSummary, error) {
	key := cache.GlobalKey{}
	if v, ok := s.cache.Get(key); ok {
		if out, ok := v.([]domain.ShopSummary); ok {
			return out, nil
		}
	}

	v, err, _ := s.sf.Do(key.String(), func() (any, error) {
		orders, err := s.loadOrders(ctx)
		if err != nil {
			return nil, err
		}
		out := buildSummaries(profile.BuildAll(orders, s.clock.Now()))
		s.cache.Set(key, out)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.ShopSummary), nil
}

// GetShop serves one shop's analytics profile, building on cache miss
func (s *Svc) GetShop(ctx context.Context, name string) (*domain.ShopProfile, error) {
	p, err := s.shopProfile(ctx, name)
	if err != nil {
		return nil, err
	}
	return toProfileDTO(p), nil
}

// PredictOrder estimates completion for one order of the given shop
func (s *Svc) PredictOrder(ctx context.Context, shopName, orderID string) (*domain.Prediction, error) {
	row, err := s.Repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	group := shopname.GroupKey(shopName)
	if shopname.GroupKey(row.ShopName) != group {
		return nil, perr.InvalidArgf("order %s does not belong to shop %s", orderID, shopName)
	}

	p, err := s.shopProfile(ctx, shopName)
	if err != nil {
		return nil, err
	}

	pred := profile.Predict(profile.Order{
		ID:         row.ID,
		ShopName:   row.ShopName,
		Status:     row.Status,
		DropOff:    derefTime(row.DropOff),
		StatusDate: derefTime(row.StatusDate),
		Cost:       row.Cost,
	}, map[string]*profile.Profile{group: p}, s.clock.Now())
	if pred == nil {
		return nil, perr.NotFoundf("no prediction available for order %s", orderID)
	}
	return &domain.Prediction{
		OrderID:        row.ID,
		ShopName:       p.DisplayName,
		EstimatedDate:  pred.EstimatedDate,
		ConfidenceDays: pred.ConfidenceDays,
		Status:         pred.Status,
	}, nil
}

// WarmCache eagerly builds the global view plus the busiest shops
func (s *Svc) WarmCache(ctx context.Context) (domain.WarmResult, error) {
	orders, err := s.loadOrders(ctx)
	if err != nil {
		return domain.WarmResult{}, err
	}

	grouped := profile.Group(orders)
	top := topShops(grouped, warmTopShops)

	keys := make([]cache.Key, 0, len(top)+1)
	keys = append(keys, cache.GlobalKey{})
	for _, name := range top {
		keys = append(keys, cache.ShopKey{Name: name})
	}

	now := s.clock.Now()
	s.cache.Warm(ctx, keys, func(_ context.Context, k cache.Key) (any, error) {
		switch key := k.(type) {
		case cache.GlobalKey:
			return buildSummaries(profile.BuildAll(orders, now)), nil
		case cache.ShopKey:
			group := shopname.GroupKey(key.Name)
			p := profile.Build(group, grouped[group], now)
			if p == nil {
				return nil, perr.NotFoundf("no orders for shop %s", key.Name)
			}
			return p, nil
		default:
			return nil, perr.InvalidArgf("unwarmable key %s", k.String())
		}
	})

	return domain.WarmResult{WarmedKeys: len(keys), Shops: top}, nil
}

// shopProfile returns the core profile for a shop, consulting the
// cache first and deduping concurrent rebuilds of the same key
func (s *Svc) shopProfile(ctx context.Context, name string) (*profile.Profile, error) {
	key := cache.ShopKey{Name: name}
	if v, ok := s.cache.Get(key); ok {
		if p, ok := v.(*profile.Profile); ok {
			return p, nil
		}
	}

	v, err, _ := s.sf.Do(key.String(), func() (any, error) {
		orders, err := s.loadOrders(ctx)
		if err != nil {
			return nil, err
		}
		group := shopname.GroupKey(name)
		p := profile.Build(group, profile.Group(orders)[group], s.clock.Now())
		if p == nil {
			return nil, perr.NotFoundf("shop %s not found", name)
		}
		s.cache.Set(key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*profile.Profile), nil
}

// loadOrders pulls every order row and maps it onto the core shape
func (s *Svc) loadOrders(ctx context.Context) ([]profile.Order, error) {
	rows, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return OrdersFromRows(rows), nil
}

// topShops ranks normalized groups by raw order count, ties broken by
// name so warming is deterministic
func topShops(grouped map[string][]profile.Order, n int) []string {
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := len(grouped[names[i]]), len(grouped[names[j]])
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

func buildSummaries(profiles map[string]*profile.Profile) []domain.ShopSummary {
	out := make([]domain.ShopSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, domain.ShopSummary{
			DisplayName:      p.DisplayName,
			NormalizedName:   p.NormalizedName,
			State:            p.State,
			MedianTurnaround: p.MedianTurnaround,
			TrendDirection:   p.Trend.Direction,
			TotalOrders:      p.TotalOrders,
			ActiveOrders:     len(p.ActiveOrderIDs),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalOrders != out[j].TotalOrders {
			return out[i].TotalOrders > out[j].TotalOrders
		}
		return out[i].NormalizedName < out[j].NormalizedName
	})
	return out
}

func toProfileDTO(p *profile.Profile) *domain.ShopProfile {
	return &domain.ShopProfile{
		DisplayName:    p.DisplayName,
		NormalizedName: p.NormalizedName,
		State:          p.State,
		Shipping: domain.ShippingEstimate{
			Avg: p.Shipping.Avg,
			Min: p.Shipping.Min,
			Max: p.Shipping.Max,
		},
		MedianTurnaround: p.MedianTurnaround,
		Variance:         p.Variance,
		StatusVelocity:   p.StatusVelocity,
		Trend: domain.Trend{
			Direction:     p.Trend.Direction,
			RecentMedian:  p.Trend.RecentMedian,
			OverallMedian: p.Trend.OverallMedian,
		},
		ActiveOrderIDs: p.ActiveOrderIDs,
		TotalOrders:    p.TotalOrders,
	}
}

// OrdersFromRows maps storage rows onto the analytics core shape;
// shared with the report CLI which reads spreadsheet exports
func OrdersFromRows(rows []repo.OrderRow) []profile.Order {
	out := make([]profile.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, profile.Order{
			ID:         r.ID,
			ShopName:   r.ShopName,
			Status:     r.Status,
			DropOff:    derefTime(r.DropOff),
			StatusDate: derefTime(r.StatusDate),
			Cost:       r.Cost,
		})
	}
	return out
}
