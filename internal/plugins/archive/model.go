// Package archive stores bookmarked Gregorian dates together with the
// variant and style they should be rendered in. Only the Gregorian date
// and its Unified ISO form are persisted; styled renderings are derived
// on every read so they always reflect the current name tables.
package archive

import (
	"time"

	"github.com/keyxmakerx/unical/internal/unidate"
)

// SavedDate is a stored archive entry.
type SavedDate struct {
	ID            int64           `json:"id"`
	Label         string          `json:"label"`
	Note          string          `json:"note,omitempty"`
	GregorianDate time.Time       `json:"-"`
	UnifiedISO    string          `json:"unified_iso"`
	Variant       unidate.Variant `json:"variant"`
	Style         unidate.Style   `json:"style"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SavedDateResponse is the API shape of a saved date with its rendering
// attached.
type SavedDateResponse struct {
	SavedDate
	Gregorian string `json:"gregorian"` // YYYY-MM-DD.
	Rendered  string `json:"rendered"`
}

// UpcomingDate pairs a saved date with its next occurrence on the
// Unified calendar.
type UpcomingDate struct {
	SavedDateResponse
	NextOccurrence string `json:"next_occurrence"` // Gregorian YYYY-MM-DD.
	DaysUntil      int    `json:"days_until"`
}

// CreateSavedDateInput is the request body for creating a saved date.
type CreateSavedDateInput struct {
	Label     string `json:"label"`
	Note      string `json:"note"`
	Gregorian string `json:"gregorian"`
	Variant   string `json:"variant"`
	Style     string `json:"style"`
}

// UpdateSavedDateInput is the request body for replacing a saved date.
type UpdateSavedDateInput struct {
	Label     string `json:"label"`
	Note      string `json:"note"`
	Gregorian string `json:"gregorian"`
	Variant   string `json:"variant"`
	Style     string `json:"style"`
}
