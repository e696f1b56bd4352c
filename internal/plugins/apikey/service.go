package apikey

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/keyxmakerx/unical/internal/apperror"
	"golang.org/x/crypto/bcrypt"
)

// keyBytes is the number of random bytes in a generated API key.
const keyBytes = 32

// keyPrefixLen is the length of the prefix stored for key identification.
const keyPrefixLen = 8

// KeyService handles API key business logic.
type KeyService interface {
	CreateKey(ctx context.Context, input CreateKeyInput) (*CreateKeyResult, error)
	GetKey(ctx context.Context, id int) (*APIKey, error)
	ListKeys(ctx context.Context, limit, offset int) ([]APIKey, int, error)
	RevokeKey(ctx context.Context, id int) error

	AuthenticateKey(ctx context.Context, rawKey string) (*APIKey, error)
	UpdateKeyLastUsed(ctx context.Context, id int, ip string) error
	LogRequest(ctx context.Context, log *RequestLog) error
}

// keyService implements KeyService.
type keyService struct {
	repo KeyRepository
}

// NewKeyService creates a new API key service.
func NewKeyService(repo KeyRepository) KeyService {
	return &keyService{repo: repo}
}

// validScopes enumerates allowed API key scopes.
var validScopes = map[Scope]bool{
	ScopeRead:  true,
	ScopeWrite: true,
}

// CreateKey generates a new API key with bcrypt-hashed storage.
func (s *keyService) CreateKey(ctx context.Context, input CreateKeyInput) (*CreateKeyResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequest("key name is required")
	}
	if len(name) > 100 {
		return nil, apperror.NewBadRequest("key name must be at most 100 characters")
	}
	if len(input.Scopes) == 0 {
		return nil, apperror.NewBadRequest("at least one scope is required")
	}
	for _, sc := range input.Scopes {
		if !validScopes[sc] {
			return nil, apperror.NewBadRequest(fmt.Sprintf("invalid scope: %s", sc))
		}
	}
	if input.RateLimit <= 0 {
		input.RateLimit = 60 // Default.
	}
	if input.RateLimit > 1000 {
		return nil, apperror.NewBadRequest("rate limit cannot exceed 1000 requests per minute")
	}

	// Generate random key.
	raw := make([]byte, keyBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("generating key: %w", err))
	}
	rawKey := "uni_" + hex.EncodeToString(raw)
	prefix := rawKey[:keyPrefixLen]

	// Hash for storage.
	hash, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing key: %w", err))
	}

	key := &APIKey{
		KeyHash:   string(hash),
		KeyPrefix: prefix,
		Name:      name,
		Scopes:    input.Scopes,
		RateLimit: input.RateLimit,
		IsActive:  true,
		ExpiresAt: input.ExpiresAt,
	}

	if err := s.repo.CreateKey(ctx, key); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating key: %w", err))
	}

	slog.Info("api key created",
		slog.String("prefix", prefix),
		slog.String("name", name),
	)

	return &CreateKeyResult{Key: key, RawKey: rawKey}, nil
}

// GetKey retrieves an API key by ID.
func (s *keyService) GetKey(ctx context.Context, id int) (*APIKey, error) {
	return s.repo.FindKeyByID(ctx, id)
}

// ListKeys returns all API keys with pagination.
func (s *keyService) ListKeys(ctx context.Context, limit, offset int) ([]APIKey, int, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListKeys(ctx, limit, offset)
}

// RevokeKey permanently deletes an API key.
func (s *keyService) RevokeKey(ctx context.Context, id int) error {
	if err := s.repo.DeleteKey(ctx, id); err != nil {
		return err
	}
	slog.Info("api key revoked", slog.Int("id", id))
	return nil
}

// AuthenticateKey validates a raw API key and returns the stored record.
// It extracts the prefix, looks up the key, and verifies with bcrypt.
func (s *keyService) AuthenticateKey(ctx context.Context, rawKey string) (*APIKey, error) {
	if len(rawKey) < keyPrefixLen {
		return nil, apperror.NewBadRequest("invalid api key format")
	}

	prefix := rawKey[:keyPrefixLen]
	key, err := s.repo.FindKeyByPrefix(ctx, prefix)
	if err != nil {
		return nil, apperror.NewForbidden("invalid api key")
	}

	// Verify the full key against the stored hash.
	if err := bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(rawKey)); err != nil {
		return nil, apperror.NewForbidden("invalid api key")
	}

	// Check if the key is active.
	if !key.IsActive {
		return nil, apperror.NewForbidden("api key is deactivated")
	}

	// Check expiry.
	if key.IsExpired() {
		return nil, apperror.NewForbidden("api key has expired")
	}

	return key, nil
}

// UpdateKeyLastUsed records the last usage time and IP.
func (s *keyService) UpdateKeyLastUsed(ctx context.Context, id int, ip string) error {
	return s.repo.UpdateKeyLastUsed(ctx, id, ip)
}

// LogRequest records an API request. Logging failures are non-critical
// and never fail the request.
func (s *keyService) LogRequest(ctx context.Context, log *RequestLog) error {
	if err := s.repo.LogRequest(ctx, log); err != nil {
		slog.Warn("failed to log api request", slog.Any("error", err))
	}
	return nil
}
