package apikey

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/keyxmakerx/unical/internal/apperror"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock Repository ---

// mockKeyRepo implements KeyRepository for testing.
type mockKeyRepo struct {
	createKeyFn         func(ctx context.Context, key *APIKey) error
	findKeyByIDFn       func(ctx context.Context, id int) (*APIKey, error)
	findKeyByPrefixFn   func(ctx context.Context, prefix string) (*APIKey, error)
	listKeysFn          func(ctx context.Context, limit, offset int) ([]APIKey, int, error)
	updateKeyLastUsedFn func(ctx context.Context, id int, ip string) error
	deleteKeyFn         func(ctx context.Context, id int) error
	logRequestFn        func(ctx context.Context, log *RequestLog) error
}

func (m *mockKeyRepo) CreateKey(ctx context.Context, key *APIKey) error {
	if m.createKeyFn != nil {
		return m.createKeyFn(ctx, key)
	}
	key.ID = 1
	return nil
}

func (m *mockKeyRepo) FindKeyByID(ctx context.Context, id int) (*APIKey, error) {
	if m.findKeyByIDFn != nil {
		return m.findKeyByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("api key not found")
}

func (m *mockKeyRepo) FindKeyByPrefix(ctx context.Context, prefix string) (*APIKey, error) {
	if m.findKeyByPrefixFn != nil {
		return m.findKeyByPrefixFn(ctx, prefix)
	}
	return nil, apperror.NewNotFound("api key not found")
}

func (m *mockKeyRepo) ListKeys(ctx context.Context, limit, offset int) ([]APIKey, int, error) {
	if m.listKeysFn != nil {
		return m.listKeysFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockKeyRepo) UpdateKeyLastUsed(ctx context.Context, id int, ip string) error {
	if m.updateKeyLastUsedFn != nil {
		return m.updateKeyLastUsedFn(ctx, id, ip)
	}
	return nil
}

func (m *mockKeyRepo) DeleteKey(ctx context.Context, id int) error {
	if m.deleteKeyFn != nil {
		return m.deleteKeyFn(ctx, id)
	}
	return nil
}

func (m *mockKeyRepo) LogRequest(ctx context.Context, log *RequestLog) error {
	if m.logRequestFn != nil {
		return m.logRequestFn(ctx, log)
	}
	return nil
}

// --- Test Helpers ---

// assertAppError checks that err is an *apperror.AppError with the expected code.
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

// --- CreateKey Tests ---

func TestCreateKey_Success(t *testing.T) {
	var storedKey *APIKey
	repo := &mockKeyRepo{
		createKeyFn: func(ctx context.Context, key *APIKey) error {
			storedKey = key
			key.ID = 42
			return nil
		},
	}

	svc := NewKeyService(repo)
	result, err := svc.CreateKey(context.Background(), CreateKeyInput{
		Name:      "Test Key",
		Scopes:    []Scope{ScopeRead, ScopeWrite},
		RateLimit: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Raw key should start with "uni_" prefix.
	if !strings.HasPrefix(result.RawKey, "uni_") {
		t.Errorf("expected raw key to start with uni_, got %s", result.RawKey[:8])
	}

	// Key should be stored with bcrypt hash.
	if storedKey.KeyHash == "" {
		t.Error("expected key hash to be set")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedKey.KeyHash), []byte(result.RawKey)); err != nil {
		t.Error("expected bcrypt hash to match raw key")
	}

	// Prefix should be first 8 chars of raw key.
	if storedKey.KeyPrefix != result.RawKey[:keyPrefixLen] {
		t.Errorf("expected prefix %s, got %s", result.RawKey[:keyPrefixLen], storedKey.KeyPrefix)
	}

	// Should be active by default.
	if !storedKey.IsActive {
		t.Error("expected key to be active")
	}

	if result.Key.ID != 42 {
		t.Errorf("expected ID 42, got %d", result.Key.ID)
	}
}

func TestCreateKey_EmptyName(t *testing.T) {
	svc := NewKeyService(&mockKeyRepo{})
	_, err := svc.CreateKey(context.Background(), CreateKeyInput{
		Name:   "",
		Scopes: []Scope{ScopeRead},
	})
	assertAppError(t, err, 400)
}

func TestCreateKey_NameTooLong(t *testing.T) {
	svc := NewKeyService(&mockKeyRepo{})
	_, err := svc.CreateKey(context.Background(), CreateKeyInput{
		Name:   strings.Repeat("x", 101),
		Scopes: []Scope{ScopeRead},
	})
	assertAppError(t, err, 400)
}

func TestCreateKey_NoScopes(t *testing.T) {
	svc := NewKeyService(&mockKeyRepo{})
	_, err := svc.CreateKey(context.Background(), CreateKeyInput{
		Name:   "Test",
		Scopes: []Scope{},
	})
	assertAppError(t, err, 400)
}

func TestCreateKey_InvalidScope(t *testing.T) {
	svc := NewKeyService(&mockKeyRepo{})
	_, err := svc.CreateKey(context.Background(), CreateKeyInput{
		Name:   "Test",
		Scopes: []Scope{"admin"},
	})
	assertAppError(t, err, 400)
}

func TestCreateKey_DefaultRateLimit(t *testing.T) {
	var capturedKey *APIKey
	repo := &mockKeyRepo{
		createKeyFn: func(ctx context.Context, key *APIKey) error {
			capturedKey = key
			key.ID = 1
			return nil
		},
	}

	svc := NewKeyService(repo)
	_, err := svc.CreateKey(context.Background(), CreateKeyInput{
		Name:      "Test",
		Scopes:    []Scope{ScopeRead},
		RateLimit: 0, // Should default to 60.
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedKey.RateLimit != 60 {
		t.Errorf("expected default rate limit 60, got %d", capturedKey.RateLimit)
	}
}

func TestCreateKey_RateLimitTooHigh(t *testing.T) {
	svc := NewKeyService(&mockKeyRepo{})
	_, err := svc.CreateKey(context.Background(), CreateKeyInput{
		Name:      "Test",
		Scopes:    []Scope{ScopeRead},
		RateLimit: 1001,
	})
	assertAppError(t, err, 400)
}

func TestCreateKey_RepoError(t *testing.T) {
	repo := &mockKeyRepo{
		createKeyFn: func(ctx context.Context, key *APIKey) error {
			return errors.New("db error")
		},
	}

	svc := NewKeyService(repo)
	_, err := svc.CreateKey(context.Background(), CreateKeyInput{
		Name:   "Test",
		Scopes: []Scope{ScopeRead},
	})
	assertAppError(t, err, 500)
}

func TestCreateKey_NameTrimming(t *testing.T) {
	var capturedName string
	repo := &mockKeyRepo{
		createKeyFn: func(ctx context.Context, key *APIKey) error {
			capturedName = key.Name
			key.ID = 1
			return nil
		},
	}

	svc := NewKeyService(repo)
	_, err := svc.CreateKey(context.Background(), CreateKeyInput{
		Name:   "  My Key  ",
		Scopes: []Scope{ScopeRead},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedName != "My Key" {
		t.Errorf("expected trimmed name, got %q", capturedName)
	}
}

// --- AuthenticateKey Tests ---

func TestAuthenticateKey_Success(t *testing.T) {
	// Generate a valid key and hash.
	rawKey := "uni_abcdef1234567890abcdef1234567890abcdef1234567890abcdef12345678"
	hash, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt hash failed: %v", err)
	}

	repo := &mockKeyRepo{
		findKeyByPrefixFn: func(ctx context.Context, prefix string) (*APIKey, error) {
			if prefix != "uni_abcd" {
				t.Errorf("expected prefix uni_abcd, got %s", prefix)
			}
			return &APIKey{
				ID:       1,
				KeyHash:  string(hash),
				IsActive: true,
			}, nil
		},
	}

	svc := NewKeyService(repo)
	key, err := svc.AuthenticateKey(context.Background(), rawKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key.ID != 1 {
		t.Errorf("expected key ID 1, got %d", key.ID)
	}
}

func TestAuthenticateKey_ShortKey(t *testing.T) {
	svc := NewKeyService(&mockKeyRepo{})
	_, err := svc.AuthenticateKey(context.Background(), "short")
	assertAppError(t, err, 400)
}

func TestAuthenticateKey_PrefixNotFound(t *testing.T) {
	svc := NewKeyService(&mockKeyRepo{})
	_, err := svc.AuthenticateKey(context.Background(), "uni_nonexistent1234567890")
	assertAppError(t, err, 403)
}

func TestAuthenticateKey_WrongKey(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("uni_correct_key_here_0000000000000000000000000000000000000000"), bcrypt.DefaultCost)
	repo := &mockKeyRepo{
		findKeyByPrefixFn: func(ctx context.Context, prefix string) (*APIKey, error) {
			return &APIKey{
				ID:       1,
				KeyHash:  string(hash),
				IsActive: true,
			}, nil
		},
	}

	svc := NewKeyService(repo)
	_, err := svc.AuthenticateKey(context.Background(), "uni_wrong_key_here_00000000000000000000000000000000000000000")
	assertAppError(t, err, 403)
}

func TestAuthenticateKey_Deactivated(t *testing.T) {
	rawKey := "uni_test1234567890test1234567890test1234567890test1234567890test"
	hash, _ := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	repo := &mockKeyRepo{
		findKeyByPrefixFn: func(ctx context.Context, prefix string) (*APIKey, error) {
			return &APIKey{
				ID:       1,
				KeyHash:  string(hash),
				IsActive: false,
			}, nil
		},
	}

	svc := NewKeyService(repo)
	_, err := svc.AuthenticateKey(context.Background(), rawKey)
	assertAppError(t, err, 403)
}

func TestAuthenticateKey_Expired(t *testing.T) {
	rawKey := "uni_test1234567890test1234567890test1234567890test1234567890test"
	hash, _ := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	expired := time.Now().Add(-1 * time.Hour)
	repo := &mockKeyRepo{
		findKeyByPrefixFn: func(ctx context.Context, prefix string) (*APIKey, error) {
			return &APIKey{
				ID:        1,
				KeyHash:   string(hash),
				IsActive:  true,
				ExpiresAt: &expired,
			}, nil
		},
	}

	svc := NewKeyService(repo)
	_, err := svc.AuthenticateKey(context.Background(), rawKey)
	assertAppError(t, err, 403)
}

// --- RevokeKey Tests ---

func TestRevokeKey(t *testing.T) {
	var deletedID int
	repo := &mockKeyRepo{
		deleteKeyFn: func(ctx context.Context, id int) error {
			deletedID = id
			return nil
		},
	}

	svc := NewKeyService(repo)
	if err := svc.RevokeKey(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != 7 {
		t.Errorf("expected deleted ID 7, got %d", deletedID)
	}
}

func TestRevokeKey_NotFound(t *testing.T) {
	repo := &mockKeyRepo{
		deleteKeyFn: func(ctx context.Context, id int) error {
			return apperror.NewNotFound("api key not found")
		},
	}

	svc := NewKeyService(repo)
	err := svc.RevokeKey(context.Background(), 999)
	assertAppError(t, err, 404)
}

// --- LogRequest Tests ---

func TestLogRequest_NonCritical(t *testing.T) {
	// LogRequest should never return an error, even if repo fails.
	repo := &mockKeyRepo{
		logRequestFn: func(ctx context.Context, log *RequestLog) error {
			return errors.New("db error")
		},
	}

	svc := NewKeyService(repo)
	err := svc.LogRequest(context.Background(), &RequestLog{
		Method: "GET", Path: "/api/v1/archive",
	})
	if err != nil {
		t.Errorf("expected nil error (non-critical), got: %v", err)
	}
}

// --- Default Limit Tests ---

func TestListKeys_DefaultLimit(t *testing.T) {
	var capturedLimit int
	repo := &mockKeyRepo{
		listKeysFn: func(ctx context.Context, limit, offset int) ([]APIKey, int, error) {
			capturedLimit = limit
			return nil, 0, nil
		},
	}

	svc := NewKeyService(repo)
	if _, _, err := svc.ListKeys(context.Background(), 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedLimit != 50 {
		t.Errorf("expected default limit 50, got %d", capturedLimit)
	}
}

// --- Model Tests ---

func TestAPIKey_IsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"nil expiry (no expiration)", nil, false},
		{"future expiry", timePtr(time.Now().Add(1 * time.Hour)), false},
		{"past expiry", timePtr(time.Now().Add(-1 * time.Hour)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := &APIKey{ExpiresAt: tt.expiresAt}
			if got := key.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIKey_HasScope(t *testing.T) {
	key := &APIKey{Scopes: []Scope{ScopeRead}}

	if !key.HasScope(ScopeRead) {
		t.Error("expected HasScope(read) = true")
	}
	if key.HasScope(ScopeWrite) {
		t.Error("expected HasScope(write) = false")
	}
}

func TestAPIKey_HasScope_Empty(t *testing.T) {
	key := &APIKey{Scopes: nil}
	if key.HasScope(ScopeRead) {
		t.Error("expected no scopes on nil slice")
	}
}

// timePtr returns a pointer to a time value.
func timePtr(t time.Time) *time.Time {
	return &t
}
