package convert

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the public conversion endpoints under /api/v1.
// All conversion routes are read-only GETs and need no API key; the
// group-level middleware (rate limit, CORS) still applies.
func RegisterRoutes(v1 *echo.Group, h *Handler) {
	v1.GET("/convert", h.Convert)
	v1.GET("/today", h.Today)
	v1.GET("/reverse", h.Reverse)
	v1.GET("/reverse/year", h.ReverseYear)
	v1.GET("/variants", h.Variants)

	v1.GET("/calendar/:year", h.YearCalendar)
	v1.GET("/calendar/:year/festive", h.FestiveDates)
	v1.GET("/calendar/:year/months/:month", h.MonthView)
}
