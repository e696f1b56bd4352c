package apikey

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler exposes key management endpoints over JSON.
type Handler struct {
	service KeyService
}

// NewHandler creates a new API key handler.
func NewHandler(service KeyService) *Handler {
	return &Handler{service: service}
}

// CreateKey handles POST /api/v1/keys. The plaintext key appears in the
// response exactly once.
func (h *Handler) CreateKey(c echo.Context) error {
	var input CreateKeyInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.CreateKey(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}

// ListKeys handles GET /api/v1/keys.
func (h *Handler) ListKeys(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	keys, total, err := h.service.ListKeys(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	if keys == nil {
		keys = []APIKey{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data":  keys,
		"total": total,
	})
}

// RevokeKey handles DELETE /api/v1/keys/:id.
func (h *Handler) RevokeKey(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid key ID")
	}

	if err := h.service.RevokeKey(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
