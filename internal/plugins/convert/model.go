// Package convert exposes the conversion engine over the versioned REST
// API. All endpoints are read-only; the year calendar listing is cached
// in Redis because it renders every day of a year on each call.
package convert

import (
	"github.com/keyxmakerx/unical/internal/unidate"
)

// Renderings holds the formatted strings of a converted date, one per
// variant and style plus the numeric ISO form. The short forms of the
// regional variants fall back to the Unified short month table because
// no regional short tables exist.
type Renderings struct {
	ISO              string `json:"iso"`
	UnifiedLong      string `json:"unified_long"`
	UnifiedShort     string `json:"unified_short"`
	TerritorianLong  string `json:"territorian_long"`
	TerritorianShort string `json:"territorian_short"`
	AustralLong      string `json:"austral_long"`
	AustralShort     string `json:"austral_short"`
}

// ConversionResponse is the full API representation of one converted
// date: the Gregorian echo, the three variant snapshots as stored, and
// every formatted rendering.
type ConversionResponse struct {
	Gregorian   string              `json:"gregorian"`
	Style       string              `json:"style"`
	Unified     unidate.UnifiedDate `json:"unified"`
	Territorian unidate.UnifiedDate `json:"territorian"`
	Austral     unidate.UnifiedDate `json:"austral"`
	Renderings  Renderings          `json:"renderings"`
}

// ReverseResponse is the result of a reverse lookup: the Gregorian date
// a Unified ISO string resolves to, plus its fresh conversion.
type ReverseResponse struct {
	Unidate    string             `json:"unidate"`
	Gregorian  string             `json:"gregorian"`
	Conversion ConversionResponse `json:"conversion"`
}

// ReverseYearResponse pairs a Unified year with its Gregorian equivalent.
type ReverseYearResponse struct {
	Unified   int `json:"unified"`
	Gregorian int `json:"gregorian"`
}

// YearCalendarResponse is the full-year listing. It is the unit stored
// in the Redis cache, so the envelope fields live here rather than in
// the handler.
type YearCalendarResponse struct {
	Year    int                   `json:"year"`
	Variant string                `json:"variant"`
	Style   string                `json:"style"`
	Days    []unidate.CalendarDay `json:"days"`
	Total   int                   `json:"total"`
}
