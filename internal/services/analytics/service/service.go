// Package service contains analytics workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"golang.org/x/sync/singleflight"

	"gearbox/internal/modkit/repokit"
	"gearbox/internal/platform/cache"
	perr "gearbox/internal/platform/errors"
	"gearbox/internal/platform/logger"
	"gearbox/internal/services/analytics/domain"
	"gearbox/internal/services/analytics/repo"
)

// Service defines the analytics service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the analytics service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	cache *cache.Cache[any]
	sf    singleflight.Group
	clock clockz.Clock
	log   logger.Logger
}

// Option tunes service construction
type Option func(*Svc)

// WithClock injects the time source used for profile math
func WithClock(c clockz.Clock) Option {
	return func(s *Svc) { s.clock = c }
}

// WithLogger sets the service logger
func WithLogger(l logger.Logger) Option {
	return func(s *Svc) { s.log = l }
}

// New constructs an analytics service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], c *cache.Cache[any], opts ...Option) *Svc {
	if db == nil {
		panic("analytics.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("analytics.Service requires a non nil Repo binder")
	}
	if c == nil {
		panic("analytics.Service requires a non nil cache")
	}
	s := &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		cache:  c,
		clock:  clockz.RealClock,
		log:    *logger.Named("analytics"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateOrder records a new repair order and invalidates stale views
func (s *Svc) CreateOrder(ctx context.Context, in domain.CreateOrderInput) (*domain.RepairOrder, error) {
	row := repo.OrderRow{
		ID:         uuid.NewString(),
		ShopName:   in.ShopName,
		Status:     in.Status,
		DropOff:    in.DropOff,
		StatusDate: in.StatusDate,
		CreatedAt:  s.clock.Now().UTC(),
		Cost:       in.Cost,
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		return nil, err
	}
	s.invalidate(cache.ReasonCreate, []string{row.ShopName}, []string{row.Status})
	return toOrderDTO(row), nil
}

// UpdateOrder patches an order's status, status date, or cost
func (s *Svc) UpdateOrder(ctx context.Context, id string, in domain.UpdateOrderInput) (*domain.RepairOrder, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	row := *existing
	statuses := []string{existing.Status}
	if in.Status != nil {
		row.Status = *in.Status
		statuses = append(statuses, *in.Status)
	}
	if in.StatusDate != nil {
		row.StatusDate = in.StatusDate
	}
	if in.Cost != nil {
		row.Cost = *in.Cost
	}
	if err := s.Repo.Update(ctx, row); err != nil {
		return nil, err
	}
	s.invalidate(cache.ReasonUpdate, []string{row.ShopName}, statuses)
	return toOrderDTO(row), nil
}

// DeleteOrder removes an order and invalidates stale views
func (s *Svc) DeleteOrder(ctx context.Context, id string) error {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(cache.ReasonDelete, []string{existing.ShopName}, []string{existing.Status})
	return nil
}

// InvalidateCache serves the admin invalidation hook
func (s *Svc) InvalidateCache(_ context.Context, in domain.InvalidateInput) (domain.InvalidateResult, error) {
	if in.All {
		return domain.InvalidateResult{Removed: s.cache.InvalidateAll()}, nil
	}
	reason := cache.Reason(in.Reason)
	if reason == "" {
		reason = cache.ReasonManual
	}
	if len(in.Shops) == 0 && len(in.Statuses) == 0 && reason == cache.ReasonManual {
		return domain.InvalidateResult{}, perr.InvalidArgf("nothing to invalidate: name shops, statuses, or set all")
	}
	n := s.cache.Invalidate(cache.Event{
		Reason:   reason,
		Shops:    in.Shops,
		Statuses: in.Statuses,
		At:       s.clock.Now(),
	})
	return domain.InvalidateResult{Removed: n}, nil
}

// CacheStats returns a snapshot of cache counters
func (s *Svc) CacheStats(_ context.Context) (cache.Stats, error) {
	return s.cache.Stats(), nil
}

func (s *Svc) invalidate(reason cache.Reason, shops, statuses []string) {
	n := s.cache.Invalidate(cache.Event{
		Reason:   reason,
		Shops:    shops,
		Statuses: statuses,
		At:       s.clock.Now(),
	})
	s.log.Debug().
		Str("reason", string(reason)).
		Strs("shops", shops).
		Int("removed", n).
		Msg("cache invalidated")
}

func toOrderDTO(row repo.OrderRow) *domain.RepairOrder {
	return &domain.RepairOrder{
		ID:         row.ID,
		ShopName:   row.ShopName,
		Status:     row.Status,
		DropOff:    row.DropOff,
		StatusDate: row.StatusDate,
		CreatedAt:  row.CreatedAt,
		Cost:       row.Cost,
	}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
