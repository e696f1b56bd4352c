package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/unical/internal/apperror"
	"github.com/keyxmakerx/unical/internal/unidate"
)

// calendarKeyPrefix is the Redis key prefix for cached year calendars.
const calendarKeyPrefix = "unical:calendar:"

// ConvertService handles conversions between the Gregorian and Unified
// calendars on behalf of the API handlers.
type ConvertService interface {
	Convert(ctx context.Context, date string, style unidate.Style) (*ConversionResponse, error)
	Reverse(ctx context.Context, unified string) (*ReverseResponse, error)
	ReverseYear(ctx context.Context, unifiedYear int) (*ReverseYearResponse, error)
	YearCalendar(ctx context.Context, year int, variant unidate.Variant, style unidate.Style) (*YearCalendarResponse, error)
	MonthView(ctx context.Context, year, month int, variant unidate.Variant, style unidate.Style) ([]unidate.CalendarDay, error)
	FestiveDates(ctx context.Context, year int) ([]unidate.FestiveDay, error)
}

// convertService implements ConvertService.
type convertService struct {
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewConvertService creates a new convert service. Year calendars are
// cached in Redis under calendarKeyPrefix with the given TTL.
func NewConvertService(rdb *redis.Client, cacheTTL time.Duration) ConvertService {
	return &convertService{redis: rdb, cacheTTL: cacheTTL}
}

// Convert unifies a Gregorian ISO date (empty means the current system
// date) and returns the full conversion.
func (s *convertService) Convert(ctx context.Context, date string, style unidate.Style) (*ConversionResponse, error) {
	d := unidate.New()
	if _, err := d.Unify(date, style); err != nil {
		return nil, mapEngineError(err)
	}
	return buildConversion(d), nil
}

// Reverse resolves a Unified ISO string back to its Gregorian date and
// returns the date together with its fresh conversion.
func (s *convertService) Reverse(ctx context.Context, unified string) (*ReverseResponse, error) {
	d := unidate.New()
	if _, err := d.ReverseUnidate(unified); err != nil {
		return nil, mapEngineError(err)
	}

	conv := buildConversion(d)
	return &ReverseResponse{
		Unidate:    strings.TrimSpace(unified),
		Gregorian:  conv.Gregorian,
		Conversion: *conv,
	}, nil
}

// ReverseYear converts a Unified year number back to its Gregorian year.
func (s *convertService) ReverseYear(ctx context.Context, unifiedYear int) (*ReverseYearResponse, error) {
	g, err := unidate.ReverseYear(unifiedYear)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return &ReverseYearResponse{Unified: unifiedYear, Gregorian: g}, nil
}

// YearCalendar returns every day of a Gregorian year in the requested
// variant and style. Listings are cached in Redis; cache failures are
// logged and the listing is computed instead.
func (s *convertService) YearCalendar(ctx context.Context, year int, variant unidate.Variant, style unidate.Style) (*YearCalendarResponse, error) {
	key := fmt.Sprintf("%s%d:%s:%s", calendarKeyPrefix, year, variant, style)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err == nil {
		var cached YearCalendarResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt entry; fall through and overwrite it.
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("calendar cache read failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	days, err := unidate.YearCalendar(year, variant, style)
	if err != nil {
		return nil, mapEngineError(err)
	}

	resp := &YearCalendarResponse{
		Year:    year,
		Variant: string(variant),
		Style:   string(style),
		Days:    days,
		Total:   len(days),
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
			slog.Warn("calendar cache write failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
	}

	return resp, nil
}

// MonthView lists the days of one Gregorian month.
func (s *convertService) MonthView(ctx context.Context, year, month int, variant unidate.Variant, style unidate.Style) ([]unidate.CalendarDay, error) {
	days, err := unidate.MonthView(year, month, variant, style)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return days, nil
}

// FestiveDates lists the festive markers of a Gregorian year.
func (s *convertService) FestiveDates(ctx context.Context, year int) ([]unidate.FestiveDay, error) {
	days, err := unidate.FestiveDates(year)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return days, nil
}

// buildConversion assembles the API representation of a populated date.
// Renderings cannot fail once Unify has succeeded, so Format errors are
// discarded here.
func buildConversion(d *unidate.Date) *ConversionResponse {
	unified, _ := d.Snapshot(unidate.VariantUnified)
	territorian, _ := d.Snapshot(unidate.VariantTerritorian)
	austral, _ := d.Snapshot(unidate.VariantAustral)

	iso, _ := d.Format(unidate.VariantUnified, unidate.StyleISO)
	uniLong, _ := d.Format(unidate.VariantUnified, unidate.StyleLong)
	uniShort, _ := d.Format(unidate.VariantUnified, unidate.StyleShort)
	swtLong, _ := d.Format(unidate.VariantTerritorian, unidate.StyleLong)
	swtShort, _ := d.Format(unidate.VariantTerritorian, unidate.StyleShort)
	ausLong, _ := d.Format(unidate.VariantAustral, unidate.StyleLong)
	ausShort, _ := d.Format(unidate.VariantAustral, unidate.StyleShort)

	return &ConversionResponse{
		Gregorian:   d.GregorianString(),
		Style:       string(d.Style()),
		Unified:     unified,
		Territorian: territorian,
		Austral:     austral,
		Renderings: Renderings{
			ISO:              iso,
			UnifiedLong:      uniLong,
			UnifiedShort:     uniShort,
			TerritorianLong:  swtLong,
			TerritorianShort: swtShort,
			AustralLong:      ausLong,
			AustralShort:     ausShort,
		},
	}
}

// mapEngineError translates engine sentinels into transport errors.
// Prehistoric years are well-formed input failing a domain rule, so
// they map to validation rather than bad request.
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, unidate.ErrPrehistoricDate):
		return apperror.NewValidation(err.Error())
	case errors.Is(err, unidate.ErrInvalidDate),
		errors.Is(err, unidate.ErrInvalidVariant),
		errors.Is(err, unidate.ErrInvalidStyle),
		errors.Is(err, unidate.ErrNoDate):
		return apperror.NewBadRequest(err.Error())
	default:
		return apperror.NewInternal(err)
	}
}
