package unidate

import (
	"fmt"
	"strings"
)

// Variant selects a regional month-name scheme. All variants share the
// same date structure; only month names differ.
type Variant string

const (
	// VariantUnified is the canonical calendar naming.
	VariantUnified Variant = "unified"

	// VariantTerritorian is the South-Western Territories naming.
	VariantTerritorian Variant = "territorian"

	// VariantAustral is the southern-hemisphere naming.
	VariantAustral Variant = "austral"
)

// ParseVariant converts user input to a Variant. Accepts the variant
// names case-insensitively plus the "swt" alias for Territorian.
// Anything else fails with ErrInvalidVariant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unified":
		return VariantUnified, nil
	case "territorian", "swt":
		return VariantTerritorian, nil
	case "austral":
		return VariantAustral, nil
	}
	return "", fmt.Errorf("unknown variant %q: %w", s, ErrInvalidVariant)
}

func (v Variant) valid() bool {
	switch v {
	case VariantUnified, VariantTerritorian, VariantAustral:
		return true
	}
	return false
}

// Style selects how a date is rendered. It affects strings only, never
// the underlying date structure.
type Style string

const (
	// StyleLong renders full weekday and month names,
	// e.g. "Sixthday 18, Quarter four-E 7619".
	StyleLong Style = "long"

	// StyleShort renders compact codes, e.g. "D18 18, Q4E 7619".
	StyleShort Style = "short"

	// StyleISO renders the Unified ISO form "YYYY-QM-DD",
	// e.g. "7619-45-18".
	StyleISO Style = "iso"
)

// ParseStyle converts user input to a Style, case-insensitively.
// Unknown input fails with ErrInvalidStyle; this is the strict boundary.
// A Style value that skips parsing and reaches formatting falls back to
// Long rather than erroring.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long":
		return StyleLong, nil
	case "short":
		return StyleShort, nil
	case "iso":
		return StyleISO, nil
	}
	return "", fmt.Errorf("unknown style %q: %w", s, ErrInvalidStyle)
}
