// Package http provides http transport for analytics
package http

import (
	stdhttp "net/http"

	"gearbox/internal/modkit/httpkit"
	"gearbox/internal/services/analytics/domain"
	svc "gearbox/internal/services/analytics/service"
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// fleet overview and per-shop profiles
	httpkit.Get(r, "/shops", h.listShops)
	httpkit.Get(r, "/shops/{name}", h.getShop)
	httpkit.Get(r, "/shops/{name}/prediction/{id}", h.predict)

	// order admin; each write fires a cache invalidation
	httpkit.PostJSON[domain.CreateOrderInput](r, "/orders", h.createOrder)
	httpkit.PutJSON[domain.UpdateOrderInput](r, "/orders/{id}", h.updateOrder)
	httpkit.Delete(r, "/orders/{id}", h.deleteOrder)

	// cache administration
	httpkit.PostJSON[domain.InvalidateInput](r, "/cache/invalidate", h.invalidate)
	httpkit.Post(r, "/cache/warm", h.warm)
	httpkit.Get(r, "/cache/stats", h.stats)
}

type handlers struct{ svc svc.Service }

func (h *handlers) listShops(r *stdhttp.Request) (any, error) {
	return h.svc.ListShops(r.Context())
}

func (h *handlers) getShop(r *stdhttp.Request) (any, error) {
	return h.svc.GetShop(r.Context(), httpkit.URLParam(r, "name"))
}

func (h *handlers) predict(r *stdhttp.Request) (any, error) {
	return h.svc.PredictOrder(r.Context(), httpkit.URLParam(r, "name"), httpkit.URLParam(r, "id"))
}

func (h *handlers) createOrder(r *stdhttp.Request, in domain.CreateOrderInput) (any, error) {
	out, err := h.svc.CreateOrder(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

func (h *handlers) updateOrder(r *stdhttp.Request, in domain.UpdateOrderInput) (any, error) {
	return h.svc.UpdateOrder(r.Context(), httpkit.URLParam(r, "id"), in)
}

func (h *handlers) deleteOrder(r *stdhttp.Request) (any, error) {
	if err := h.svc.DeleteOrder(r.Context(), httpkit.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

func (h *handlers) invalidate(r *stdhttp.Request, in domain.InvalidateInput) (any, error) {
	return h.svc.InvalidateCache(r.Context(), in)
}

func (h *handlers) warm(r *stdhttp.Request) (any, error) {
	return h.svc.WarmCache(r.Context())
}

func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.CacheStats(r.Context())
}
