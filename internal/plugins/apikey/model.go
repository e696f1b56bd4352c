// Package apikey issues and authenticates the API keys that guard the
// archive endpoints. Keys are random 32-byte values shown to the caller
// once at creation; only a bcrypt hash and an 8-character prefix are
// stored, so a database leak does not leak usable keys.
package apikey

import "time"

// Scope is a permission class attached to an API key.
type Scope string

const (
	// ScopeRead allows read access to the archive.
	ScopeRead Scope = "read"
	// ScopeWrite allows creating, updating, and deleting saved dates.
	ScopeWrite Scope = "write"
)

// APIKey represents a stored API key. The hash is never marshaled.
type APIKey struct {
	ID         int        `json:"id"`
	KeyHash    string     `json:"-"`
	KeyPrefix  string     `json:"key_prefix"` // First 8 chars, for display and lookup.
	Name       string     `json:"name"`
	Scopes     []Scope    `json:"scopes"`
	RateLimit  int        `json:"rate_limit"` // Requests per minute.
	IsActive   bool       `json:"is_active"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	LastUsedIP *string    `json:"last_used_ip,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsExpired reports whether the key has passed its expiry date.
func (k *APIKey) IsExpired() bool {
	if k.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*k.ExpiresAt)
}

// HasScope reports whether the key carries the given scope.
func (k *APIKey) HasScope(scope Scope) bool {
	for _, s := range k.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// CreateKeyInput is the request body for creating a new API key.
type CreateKeyInput struct {
	Name      string     `json:"name"`
	Scopes    []Scope    `json:"scopes"`
	RateLimit int        `json:"rate_limit"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// CreateKeyResult is returned once after key creation. RawKey is the
// plaintext key; it is not stored and cannot be recovered later.
type CreateKeyResult struct {
	Key    *APIKey `json:"key"`
	RawKey string  `json:"raw_key"`
}

// RequestLog records a single authenticated API request.
type RequestLog struct {
	ID         int64     `json:"id"`
	APIKeyID   int       `json:"api_key_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  *string   `json:"user_agent,omitempty"`
	DurationMs int       `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
