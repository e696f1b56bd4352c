package convert

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/unical/internal/apperror"
	"github.com/keyxmakerx/unical/internal/unidate"
	"github.com/keyxmakerx/unical/internal/variants"
)

// Handler processes HTTP requests for the convert plugin.
type Handler struct {
	svc ConvertService
}

// NewHandler creates a new convert Handler.
func NewHandler(svc ConvertService) *Handler {
	return &Handler{svc: svc}
}

// queryStyle parses the style query param, defaulting to long.
func queryStyle(c echo.Context) (unidate.Style, error) {
	raw := c.QueryParam("style")
	if raw == "" {
		return unidate.StyleLong, nil
	}
	style, err := unidate.ParseStyle(raw)
	if err != nil {
		return "", apperror.NewBadRequest(err.Error())
	}
	return style, nil
}

// queryVariant parses the variant query param, defaulting to unified.
func queryVariant(c echo.Context) (unidate.Variant, error) {
	raw := c.QueryParam("variant")
	if raw == "" {
		return unidate.VariantUnified, nil
	}
	variant, err := unidate.ParseVariant(raw)
	if err != nil {
		return "", apperror.NewBadRequest(err.Error())
	}
	return variant, nil
}

// Convert returns the full conversion of a Gregorian date.
// GET /api/v1/convert?date=YYYY-MM-DD&style=
// An absent date converts the current system date.
func (h *Handler) Convert(c echo.Context) error {
	style, err := queryStyle(c)
	if err != nil {
		return err
	}

	resp, err := h.svc.Convert(c.Request().Context(), c.QueryParam("date"), style)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Today returns the conversion of the current system date.
// GET /api/v1/today?style=
func (h *Handler) Today(c echo.Context) error {
	style, err := queryStyle(c)
	if err != nil {
		return err
	}

	resp, err := h.svc.Convert(c.Request().Context(), "", style)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Reverse resolves a Unified ISO date back to Gregorian.
// GET /api/v1/reverse?date=YYYY-QM-DD
func (h *Handler) Reverse(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return apperror.NewBadRequest("date query parameter is required")
	}

	resp, err := h.svc.Reverse(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// ReverseYear converts a Unified year number back to Gregorian.
// GET /api/v1/reverse/year?year=NNNN
func (h *Handler) ReverseYear(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return apperror.NewBadRequest("year must be an integer")
	}

	resp, err := h.svc.ReverseYear(c.Request().Context(), year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Variants returns the variant registry metadata.
// GET /api/v1/variants
func (h *Handler) Variants(c echo.Context) error {
	list := variants.Registry()
	return c.JSON(http.StatusOK, map[string]any{
		"data":  list,
		"total": len(list),
	})
}

// YearCalendar returns every day of a Gregorian year.
// GET /api/v1/calendar/:year?variant=&style=
func (h *Handler) YearCalendar(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return apperror.NewBadRequest("invalid year")
	}
	variant, err := queryVariant(c)
	if err != nil {
		return err
	}
	style, err := queryStyle(c)
	if err != nil {
		return err
	}

	resp, err := h.svc.YearCalendar(c.Request().Context(), year, variant, style)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// FestiveDates returns the festive markers of a Gregorian year.
// GET /api/v1/calendar/:year/festive
func (h *Handler) FestiveDates(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return apperror.NewBadRequest("invalid year")
	}

	days, err := h.svc.FestiveDates(c.Request().Context(), year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"year":  year,
		"data":  days,
		"total": len(days),
	})
}

// MonthView returns the days of one Gregorian month.
// GET /api/v1/calendar/:year/months/:month?variant=&style=
func (h *Handler) MonthView(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return apperror.NewBadRequest("invalid year")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return apperror.NewBadRequest("invalid month")
	}
	variant, err := queryVariant(c)
	if err != nil {
		return err
	}
	style, err := queryStyle(c)
	if err != nil {
		return err
	}

	days, err := h.svc.MonthView(c.Request().Context(), year, month, variant, style)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"year":  year,
		"month": month,
		"data":  days,
		"total": len(days),
	})
}
