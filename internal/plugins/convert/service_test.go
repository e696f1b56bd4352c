package convert

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/unical/internal/apperror"
	"github.com/keyxmakerx/unical/internal/unidate"
)

// --- Test Helpers ---

// newTestService builds a convert service backed by miniredis.
func newTestService(t *testing.T) (ConvertService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewConvertService(rdb, time.Hour), mr
}

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Convert Tests ---

func TestConvert_KnownDate(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Convert(context.Background(), "2019-12-30", unidate.StyleLong)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if resp.Gregorian != "2019-12-30" {
		t.Errorf("expected gregorian 2019-12-30, got %s", resp.Gregorian)
	}
	if resp.Style != "long" {
		t.Errorf("expected style long, got %s", resp.Style)
	}
	if resp.Unified.Year != 7619 {
		t.Errorf("expected year 7619, got %d", resp.Unified.Year)
	}
	if resp.Territorian.Month.Name != "Winter chill" {
		t.Errorf("unexpected territorian month: %s", resp.Territorian.Month.Name)
	}
	if resp.Austral.Month.Name != "Summer break" {
		t.Errorf("unexpected austral month: %s", resp.Austral.Month.Name)
	}

	want := Renderings{
		ISO:              "7619-45-18",
		UnifiedLong:      "Sixthday 18, Quarter four-E 7619",
		UnifiedShort:     "D18 18, Q4E 7619",
		TerritorianLong:  "Sixthday 18, Winter chill 7619",
		TerritorianShort: "D18 18, Q4E 7619",
		AustralLong:      "Sixthday 18, Summer break 7619",
		AustralShort:     "D18 18, Q4E 7619",
	}
	if resp.Renderings != want {
		t.Errorf("renderings mismatch:\n got %+v\nwant %+v", resp.Renderings, want)
	}
}

func TestConvert_EmptyDateUsesToday(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Convert(context.Background(), "", unidate.StyleShort)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if resp.Gregorian == "" {
		t.Error("expected gregorian echo for today, got empty string")
	}
	if resp.Style != "short" {
		t.Errorf("expected style short, got %s", resp.Style)
	}
}

func TestConvert_MalformedDate(t *testing.T) {
	svc, _ := newTestService(t)

	for _, date := range []string{"2019-13-01", "30-12-2019", "yesterday", "2019-02-30"} {
		_, err := svc.Convert(context.Background(), date, unidate.StyleLong)
		assertAppError(t, err, 400)
	}
}

// --- Reverse Tests ---

func TestReverse_RegularDate(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Reverse(context.Background(), "7619-45-18")
	if err != nil {
		t.Fatalf("Reverse failed: %v", err)
	}

	if resp.Unidate != "7619-45-18" {
		t.Errorf("expected unidate echo 7619-45-18, got %s", resp.Unidate)
	}
	if resp.Gregorian != "2019-12-30" {
		t.Errorf("expected gregorian 2019-12-30, got %s", resp.Gregorian)
	}
	// Reverse lookups repopulate in long style.
	if resp.Conversion.Style != "long" {
		t.Errorf("expected conversion style long, got %s", resp.Conversion.Style)
	}
	if got := resp.Conversion.Renderings.UnifiedLong; got != "Sixthday 18, Quarter four-E 7619" {
		t.Errorf("unexpected long rendering: %s", got)
	}
}

func TestReverse_FestiveIgnoresDayField(t *testing.T) {
	svc, _ := newTestService(t)

	for _, date := range []string{"7620-60-00", "7620-60-17"} {
		resp, err := svc.Reverse(context.Background(), date)
		if err != nil {
			t.Fatalf("Reverse(%q) failed: %v", date, err)
		}
		if resp.Gregorian != "2020-12-31" {
			t.Errorf("Reverse(%q): expected 2020-12-31, got %s", date, resp.Gregorian)
		}
	}
}

func TestReverse_LeapDayNeedsLeapYear(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Reverse(context.Background(), "7619-60-00")
	assertAppError(t, err, 400)
}

func TestReverse_Malformed(t *testing.T) {
	svc, _ := newTestService(t)

	for _, date := range []string{"", "7619-45", "7619-4-18", "761a-45-18", "+7619-45-18"} {
		_, err := svc.Reverse(context.Background(), date)
		assertAppError(t, err, 400)
	}
}

func TestReverse_Prehistoric(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Reverse(context.Background(), "0100-11-01")
	assertAppError(t, err, 422)
}

// --- ReverseYear Tests ---

func TestReverseYear_Known(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.ReverseYear(context.Background(), 7619)
	if err != nil {
		t.Fatalf("ReverseYear failed: %v", err)
	}
	if resp.Unified != 7619 || resp.Gregorian != 2019 {
		t.Errorf("expected 7619 -> 2019, got %d -> %d", resp.Unified, resp.Gregorian)
	}
}

func TestReverseYear_Negative(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ReverseYear(context.Background(), -5)
	assertAppError(t, err, 422)
}

// --- YearCalendar Tests ---

func TestYearCalendar_ComputesAndCaches(t *testing.T) {
	svc, mr := newTestService(t)

	resp, err := svc.YearCalendar(context.Background(), 2019, unidate.VariantUnified, unidate.StyleLong)
	if err != nil {
		t.Fatalf("YearCalendar failed: %v", err)
	}
	if resp.Total != 365 || len(resp.Days) != 365 {
		t.Fatalf("expected 365 days, got total=%d len=%d", resp.Total, len(resp.Days))
	}
	if got := resp.Days[363].Rendered; got != "Sixthday 18, Quarter four-E 7619" {
		t.Errorf("unexpected rendering for 2019-12-30: %s", got)
	}

	key := "unical:calendar:2019:unified:long"
	if !mr.Exists(key) {
		t.Fatalf("expected cache key %s to be set", key)
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Errorf("expected cache TTL 1h, got %v", ttl)
	}
}

func TestYearCalendar_LeapYear(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.YearCalendar(context.Background(), 2020, unidate.VariantUnified, unidate.StyleShort)
	if err != nil {
		t.Fatalf("YearCalendar failed: %v", err)
	}
	if resp.Total != 366 {
		t.Errorf("expected 366 days in a leap year, got %d", resp.Total)
	}
	if got := resp.Days[365].Rendered; got != "LD 7620" {
		t.Errorf("unexpected leap day rendering: %s", got)
	}
}

func TestYearCalendar_ServesFromCache(t *testing.T) {
	svc, mr := newTestService(t)

	// Seed a sentinel entry under the exact cache key. If the service
	// returns it, the listing came from Redis rather than a recompute.
	sentinel := YearCalendarResponse{Year: 2019, Variant: "unified", Style: "long", Total: 1}
	data, err := json.Marshal(sentinel)
	if err != nil {
		t.Fatalf("marshaling sentinel: %v", err)
	}
	mr.Set("unical:calendar:2019:unified:long", string(data))

	resp, err := svc.YearCalendar(context.Background(), 2019, unidate.VariantUnified, unidate.StyleLong)
	if err != nil {
		t.Fatalf("YearCalendar failed: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected the cached sentinel (total=1), got total=%d", resp.Total)
	}
}

func TestYearCalendar_CorruptCacheRecomputes(t *testing.T) {
	svc, mr := newTestService(t)

	key := "unical:calendar:2019:unified:long"
	mr.Set(key, "{not json")

	resp, err := svc.YearCalendar(context.Background(), 2019, unidate.VariantUnified, unidate.StyleLong)
	if err != nil {
		t.Fatalf("YearCalendar failed: %v", err)
	}
	if resp.Total != 365 {
		t.Errorf("expected recomputed listing with 365 days, got %d", resp.Total)
	}
}

func TestYearCalendar_InvalidYear(t *testing.T) {
	svc, mr := newTestService(t)

	_, err := svc.YearCalendar(context.Background(), 0, unidate.VariantUnified, unidate.StyleLong)
	assertAppError(t, err, 400)

	if mr.Exists("unical:calendar:0:unified:long") {
		t.Error("invalid year must not be cached")
	}
}

// --- MonthView Tests ---

func TestMonthView_LeapFebruary(t *testing.T) {
	svc, _ := newTestService(t)

	days, err := svc.MonthView(context.Background(), 2020, 2, unidate.VariantUnified, unidate.StyleLong)
	if err != nil {
		t.Fatalf("MonthView failed: %v", err)
	}
	if len(days) != 29 {
		t.Errorf("expected 29 days in February 2020, got %d", len(days))
	}
}

func TestMonthView_BadMonth(t *testing.T) {
	svc, _ := newTestService(t)

	for _, month := range []int{0, 13} {
		_, err := svc.MonthView(context.Background(), 2020, month, unidate.VariantUnified, unidate.StyleLong)
		assertAppError(t, err, 400)
	}
}

// --- FestiveDates Tests ---

func TestFestiveDates_Counts(t *testing.T) {
	svc, _ := newTestService(t)

	days, err := svc.FestiveDates(context.Background(), 2019)
	if err != nil {
		t.Fatalf("FestiveDates failed: %v", err)
	}
	if len(days) != 5 {
		t.Errorf("expected 5 festive days in 2019, got %d", len(days))
	}

	days, err = svc.FestiveDates(context.Background(), 2020)
	if err != nil {
		t.Fatalf("FestiveDates failed: %v", err)
	}
	if len(days) != 6 {
		t.Errorf("expected 6 festive days in 2020, got %d", len(days))
	}
}

func TestFestiveDates_BadYear(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FestiveDates(context.Background(), 0)
	assertAppError(t, err, 400)
}
