package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"gearbox/internal/platform/cache"
	perr "gearbox/internal/platform/errors"
	phttp "gearbox/internal/platform/net/http"
	"gearbox/internal/services/analytics/domain"
)

// fakeSvc implements domain.ServicePort with canned responses
type fakeSvc struct {
	lastInvalidate domain.InvalidateInput
	created        *domain.CreateOrderInput
}

func (f *fakeSvc) ListShops(context.Context) ([]domain.ShopSummary, error) {
	return []domain.ShopSummary{{DisplayName: "Acme Repair, TX", TotalOrders: 10}}, nil
}

func (f *fakeSvc) GetShop(_ context.Context, name string) (*domain.ShopProfile, error) {
	if name != "Acme Repair, TX" {
		return nil, perr.NotFoundf("shop %s not found", name)
	}
	return &domain.ShopProfile{DisplayName: name, MedianTurnaround: 12}, nil
}

func (f *fakeSvc) PredictOrder(_ context.Context, _, orderID string) (*domain.Prediction, error) {
	return &domain.Prediction{OrderID: orderID, Status: "on-track"}, nil
}

func (f *fakeSvc) CreateOrder(_ context.Context, in domain.CreateOrderInput) (*domain.RepairOrder, error) {
	f.created = &in
	return &domain.RepairOrder{ID: "new-id", ShopName: in.ShopName, Status: in.Status}, nil
}

func (f *fakeSvc) UpdateOrder(_ context.Context, id string, _ domain.UpdateOrderInput) (*domain.RepairOrder, error) {
	return &domain.RepairOrder{ID: id}, nil
}

func (f *fakeSvc) DeleteOrder(context.Context, string) error { return nil }

func (f *fakeSvc) InvalidateCache(_ context.Context, in domain.InvalidateInput) (domain.InvalidateResult, error) {
	f.lastInvalidate = in
	return domain.InvalidateResult{Removed: 2}, nil
}

func (f *fakeSvc) WarmCache(context.Context) (domain.WarmResult, error) {
	return domain.WarmResult{WarmedKeys: 3}, nil
}

func (f *fakeSvc) CacheStats(context.Context) (cache.Stats, error) {
	return cache.Stats{Hits: 5, Misses: 1}, nil
}

func newTestRouter(f *fakeSvc) *chi.Mux {
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), f)
	return mux
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestListShopsRoute(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(&fakeSvc{}).ServeHTTP(rec, httptest.NewRequest("GET", "/shops", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decode(t, rec)
	rows, ok := env.Data.([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestGetShopRoute_NotFound(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(&fakeSvc{}).ServeHTTP(rec, httptest.NewRequest("GET", "/shops/Nowhere", nil))

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decode(t, rec)
	if env.Error == "" {
		t.Fatal("expected error message in envelope")
	}
}

func TestPredictionRoute(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shops/Acme%20Repair%2C%20TX/prediction/ro-9", nil)
	newTestRouter(&fakeSvc{}).ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decode(t, rec)
	data := env.Data.(map[string]any)
	if data["order_id"] != "ro-9" || data["status"] != "on-track" {
		t.Fatalf("data = %#v", data)
	}
}

func TestCreateOrderRoute(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{}
	rec := httptest.NewRecorder()
	body := `{"shop_name":"Acme Repair, TX","status":"NEW","cost":10}`
	req := httptest.NewRequest("POST", "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(f).ServeHTTP(rec, req)

	if rec.Code != 201 {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if f.created == nil || f.created.ShopName != "Acme Repair, TX" {
		t.Fatalf("created = %+v", f.created)
	}
}

func TestCreateOrderRoute_ValidationFailure(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	// missing required shop_name and status
	req := httptest.NewRequest("POST", "/orders", strings.NewReader(`{"cost":1}`))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(&fakeSvc{}).ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestInvalidateRoute(t *testing.T) {
	t.Parallel()

	f := &fakeSvc{}
	rec := httptest.NewRecorder()
	body := `{"shops":["Acme"],"reason":"manual"}`
	req := httptest.NewRequest("POST", "/cache/invalidate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(f).ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(f.lastInvalidate.Shops) != 1 || f.lastInvalidate.Reason != "manual" {
		t.Fatalf("invalidate input = %+v", f.lastInvalidate)
	}
}

func TestCacheAdminRoutes(t *testing.T) {
	t.Parallel()

	r := newTestRouter(&fakeSvc{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/cache/warm", nil))
	if rec.Code != 200 {
		t.Fatalf("warm status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/cache/stats", nil))
	if rec.Code != 200 {
		t.Fatalf("stats status = %d", rec.Code)
	}
	env := decode(t, rec)
	data := env.Data.(map[string]any)
	if data["hits"] != float64(5) {
		t.Fatalf("stats data = %#v", data)
	}
}

func TestDeleteOrderRoute(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter(&fakeSvc{}).ServeHTTP(rec, httptest.NewRequest("DELETE", "/orders/ro-1", nil))
	if rec.Code != 204 {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}
