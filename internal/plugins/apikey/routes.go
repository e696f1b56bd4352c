package apikey

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts key management endpoints under /api/v1/keys.
// All of them require the admin token; API keys themselves cannot manage
// other keys.
func RegisterRoutes(v1 *echo.Group, h *Handler, adminToken string) {
	keys := v1.Group("/keys", RequireAdminToken(adminToken))
	keys.POST("", h.CreateKey)
	keys.GET("", h.ListKeys)
	keys.DELETE("/:id", h.RevokeKey)
}
