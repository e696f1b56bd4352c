// Package variants defines the registry of calendar naming variants.
// Variants share the Unified calendar structure (quarters, months,
// festive days) and differ only in the month names applied to regular
// dates. They are selected per request via the variant query parameter.
package variants

// Status represents the implementation status of a variant.
type Status string

const (
	// StatusStable means the variant's name tables are complete and frozen.
	StatusStable Status = "stable"

	// StatusDraft means the variant is registered but its name tables may
	// still change between releases.
	StatusDraft Status = "draft"
)

// Info holds metadata about a registered variant.
type Info struct {
	// ID is the unique machine-readable identifier (e.g., "territorian").
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`

	// Aliases lists alternate identifiers accepted by the parser.
	Aliases []string `json:"aliases,omitempty"`

	// Description is a short summary of where the variant is used.
	Description string `json:"description"`

	// Hemisphere indicates which hemisphere the seasonal month names
	// assume ("north", "south", or "global" for season-neutral names).
	Hemisphere string `json:"hemisphere"`

	// Status indicates whether the variant's name tables are frozen.
	Status Status `json:"status"`
}

// Registry returns the list of all known variants.
// This is the canonical source of truth for what variants exist in Unical.
func Registry() []Info {
	return []Info{
		{
			ID:          "unified",
			Name:        "Unified",
			Description: "The base calendar with season-neutral month names derived from quarter positions. Default for all conversions.",
			Hemisphere:  "global",
			Status:      StatusStable,
		},
		{
			ID:          "territorian",
			Name:        "Territorian",
			Aliases:     []string{"swt"},
			Description: "Seasonal month names as used in the Southwest Territories. Seasons follow the northern hemisphere.",
			Hemisphere:  "north",
			Status:      StatusStable,
		},
		{
			ID:          "austral",
			Name:        "Austral",
			Description: "Seasonal month names shifted half a year for the southern hemisphere.",
			Hemisphere:  "south",
			Status:      StatusStable,
		},
	}
}

// Find returns the variant info for a given ID or alias, or nil if not found.
func Find(id string) *Info {
	for _, v := range Registry() {
		if v.ID == id {
			return &v
		}
		for _, alias := range v.Aliases {
			if alias == id {
				return &v
			}
		}
	}
	return nil
}
