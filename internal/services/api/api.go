// Package api provides the HTTP API for the application
package api

import (
	"time"

	"gearbox/internal/platform/config"
	"gearbox/internal/platform/logger"
	phttp "gearbox/internal/platform/net/http"
	"gearbox/internal/platform/net/middleware"
	"gearbox/internal/platform/store"

	"gearbox/internal/modkit"
	"gearbox/internal/modkit/module"

	analyticsmod "gearbox/internal/services/analytics/module"
	metamod "gearbox/internal/services/meta/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log: *logger.Get(),
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	mods := []module.Module{
		metamod.New(deps),
		analyticsmod.New(deps),
	}

	// versioned API with a common middleware stack
	r.Route("/api/v1", func(api phttp.Router) {
		api.Use(
			middleware.RequestID(),
			middleware.RealIP(),
			middleware.RecoverJSON,
			middleware.AccessLog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),
			middleware.Timeout(30*time.Second),
			middleware.Heartbeat("/ping"),
			middleware.CORS(middleware.CORSOptions{}),
		)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
