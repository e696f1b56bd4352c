package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/unical/internal/plugins/apikey"
	"github.com/keyxmakerx/unical/internal/plugins/archive"
	"github.com/keyxmakerx/unical/internal/plugins/convert"
)

// RegisterRoutes sets up all application routes. It constructs each
// plugin's repository/service/handler chain and delegates to the plugin's
// route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for Docker/Cosmos health monitoring. Pings
	// both backing stores so orchestrators see real connectivity, not
	// just a live process.
	e.GET("/healthz", a.healthz)

	// All API routes live under a versioned group.
	v1 := e.Group("/api/v1")

	// convert plugin (public, read-only conversions and calendars)
	convertSvc := convert.NewConvertService(a.Redis, a.Config.Cache.CalendarTTL)
	convert.RegisterRoutes(v1, convert.NewHandler(convertSvc))

	// apikey plugin (key management, admin token guarded)
	keySvc := apikey.NewKeyService(apikey.NewKeyRepository(a.DB))
	apikey.RegisterRoutes(v1, apikey.NewHandler(keySvc), a.Config.API.AdminToken)

	// archive plugin (saved dates, API key authenticated)
	archiveSvc := archive.NewArchiveService(archive.NewArchiveRepository(a.DB))
	archive.RegisterRoutes(v1, archive.NewHandler(archiveSvc), keySvc)
}

// healthz reports whether the server and its backing stores are reachable.
// Returns 503 with per-dependency detail when either store is down.
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}

	if err := a.DB.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	body := map[string]any{
		"status": "ok",
		"checks": checks,
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	return c.JSON(status, body)
}
