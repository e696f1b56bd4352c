package archive

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/unical/internal/plugins/apikey"
)

// RegisterRoutes mounts archive endpoints under /api/v1/archive. All
// routes require API key authentication; scope middleware enforces
// read and write access levels.
func RegisterRoutes(v1 *echo.Group, h *Handler, keySvc apikey.KeyService) {
	g := v1.Group("/archive",
		apikey.RequireAPIKey(keySvc),
		apikey.RateLimit(),
	)

	// Read endpoints (require "read" scope).
	g.GET("", h.List, apikey.RequireScope(apikey.ScopeRead))
	g.GET("/upcoming", h.Upcoming, apikey.RequireScope(apikey.ScopeRead))
	g.GET("/:id", h.Get, apikey.RequireScope(apikey.ScopeRead))

	// Write endpoints (require "write" scope).
	g.POST("", h.Create, apikey.RequireScope(apikey.ScopeWrite))
	g.PUT("/:id", h.Update, apikey.RequireScope(apikey.ScopeWrite))
	g.DELETE("/:id", h.Delete, apikey.RequireScope(apikey.ScopeWrite))
}
