// Package sanitize provides HTML sanitization for user-supplied text.
// Uses bluemonday to strip dangerous HTML (script tags, event handlers,
// javascript: URLs) from archive labels and notes before storage.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Policies are initialized once via sync.Once for thread-safe lazy init.
var (
	strictPolicy *bluemonday.Policy
	strictOnce   sync.Once

	notePolicy *bluemonday.Policy
	noteOnce   sync.Once
)

// getStrict returns the shared strict policy, initializing it on first call.
// The strict policy strips all HTML, leaving plain text.
func getStrict() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// getNote returns the shared note policy, initializing it on first call.
// Notes may carry basic formatting (bold, links, lists) but nothing
// executable.
func getNote() *bluemonday.Policy {
	noteOnce.Do(func() {
		notePolicy = bluemonday.UGCPolicy()
	})
	return notePolicy
}

// Label sanitizes a short user-supplied label down to plain text. All
// HTML is stripped and surrounding whitespace trimmed.
func Label(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(getStrict().Sanitize(input))
}

// Note sanitizes free-form note text by stripping dangerous elements
// (script, iframe, event handlers, javascript: URLs) while preserving
// safe formatting tags.
//
// This MUST be called on all user-provided notes before storing them
// in the database.
func Note(input string) string {
	if input == "" {
		return ""
	}
	return getNote().Sanitize(input)
}
