package archive

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler exposes archive endpoints over JSON.
type Handler struct {
	service ArchiveService
}

// NewHandler creates a new archive handler.
func NewHandler(service ArchiveService) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/v1/archive.
func (h *Handler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	dates, total, err := h.service.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	if dates == nil {
		dates = []SavedDateResponse{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":  dates,
		"total": total,
	})
}

// Upcoming handles GET /api/v1/archive/upcoming.
func (h *Handler) Upcoming(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	dates, err := h.service.Upcoming(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if dates == nil {
		dates = []UpcomingDate{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":  dates,
		"total": len(dates),
	})
}

// Get handles GET /api/v1/archive/:id.
func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid saved date ID")
	}

	date, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, date)
}

// Create handles POST /api/v1/archive.
func (h *Handler) Create(c echo.Context) error {
	var input CreateSavedDateInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	date, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, date)
}

// Update handles PUT /api/v1/archive/:id.
func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid saved date ID")
	}

	var input UpdateSavedDateInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	date, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, date)
}

// Delete handles DELETE /api/v1/archive/:id.
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid saved date ID")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
