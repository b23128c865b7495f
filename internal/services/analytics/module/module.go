// Package module wires analytics into the API using modkit
package module

import (
	"net/http"

	modkit "gearbox/internal/modkit"
	"gearbox/internal/modkit/httpkit"
	"gearbox/internal/platform/cache"
	"gearbox/internal/platform/logger"
	str "gearbox/internal/platform/strings"
	ahttp "gearbox/internal/services/analytics/http"
	arepo "gearbox/internal/services/analytics/repo"
	asvc "gearbox/internal/services/analytics/service"
)

// Module implements the analytics module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc asvc.Service
}

// New constructs the analytics module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("analytics"), modkit.WithPrefix("/analytics")}, opts...)...)

	c := cache.New[any](cacheConfig(deps), cache.WithLogger(*logger.Named("cache")))
	svc := asvc.New(deps.PG, arepo.NewPG(), c, asvc.WithLogger(deps.Log))

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptAnalyticsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ahttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// cacheConfig reads the CACHE_ env view with the documented defaults
func cacheConfig(deps modkit.Deps) cache.Config {
	cfg := deps.Cfg.Prefix("CACHE_")
	return cache.Config{
		MaxEntries: cfg.MayInt("MAX_ENTRIES", cache.DefaultMaxEntries),
		MaxBytes:   cfg.MayInt64("MAX_BYTES", cache.DefaultMaxBytes),
		TTL:        cfg.MayDuration("TTL", cache.DefaultTTL),
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
