package apikey

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/keyxmakerx/unical/internal/apperror"
)

// KeyRepository defines the data access contract for API keys.
type KeyRepository interface {
	CreateKey(ctx context.Context, key *APIKey) error
	FindKeyByID(ctx context.Context, id int) (*APIKey, error)
	FindKeyByPrefix(ctx context.Context, prefix string) (*APIKey, error)
	ListKeys(ctx context.Context, limit, offset int) ([]APIKey, int, error)
	UpdateKeyLastUsed(ctx context.Context, id int, ip string) error
	DeleteKey(ctx context.Context, id int) error
	LogRequest(ctx context.Context, log *RequestLog) error
}

// keyRepository implements KeyRepository with MariaDB.
type keyRepository struct {
	db *sql.DB
}

// NewKeyRepository creates a new API key repository.
func NewKeyRepository(db *sql.DB) KeyRepository {
	return &keyRepository{db: db}
}

// CreateKey inserts a new API key.
func (r *keyRepository) CreateKey(ctx context.Context, key *APIKey) error {
	scopesJSON, _ := json.Marshal(key.Scopes)

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, key_prefix, name, scopes, rate_limit, is_active, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key.KeyHash, key.KeyPrefix, key.Name, scopesJSON, key.RateLimit, key.IsActive, key.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("creating api key: %w", err)
	}
	id, _ := result.LastInsertId()
	key.ID = int(id)
	return nil
}

// FindKeyByID retrieves an API key by its ID.
func (r *keyRepository) FindKeyByID(ctx context.Context, id int) (*APIKey, error) {
	return r.scanKey(r.db.QueryRowContext(ctx,
		`SELECT id, key_hash, key_prefix, name, scopes, rate_limit, is_active,
		        last_used_at, last_used_ip, expires_at, created_at, updated_at
		 FROM api_keys WHERE id = ?`, id))
}

// FindKeyByPrefix retrieves an API key by its prefix (for auth lookup).
func (r *keyRepository) FindKeyByPrefix(ctx context.Context, prefix string) (*APIKey, error) {
	return r.scanKey(r.db.QueryRowContext(ctx,
		`SELECT id, key_hash, key_prefix, name, scopes, rate_limit, is_active,
		        last_used_at, last_used_ip, expires_at, created_at, updated_at
		 FROM api_keys WHERE key_prefix = ?`, prefix))
}

// ListKeys returns all API keys with pagination.
func (r *keyRepository) ListKeys(ctx context.Context, limit, offset int) ([]APIKey, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_keys`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting api keys: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, key_hash, key_prefix, name, scopes, rate_limit, is_active,
		        last_used_at, last_used_ip, expires_at, created_at, updated_at
		 FROM api_keys ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing api keys: %w", err)
	}
	defer rows.Close()

	keys, err := r.scanKeys(rows)
	return keys, total, err
}

// UpdateKeyLastUsed records the last usage time and IP.
func (r *keyRepository) UpdateKeyLastUsed(ctx context.Context, id int, ip string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used_at = NOW(), last_used_ip = ? WHERE id = ?`, ip, id)
	if err != nil {
		return fmt.Errorf("updating key last used: %w", err)
	}
	return nil
}

// DeleteKey permanently removes an API key. Request logs cascade.
func (r *keyRepository) DeleteKey(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM api_keys WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting api key: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("api key not found")
	}
	return nil
}

// LogRequest records an API request.
func (r *keyRepository) LogRequest(ctx context.Context, log *RequestLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_request_log (api_key_id, method, path, status_code, ip_address, user_agent, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.APIKeyID, log.Method, log.Path, log.StatusCode, log.IPAddress, log.UserAgent, log.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("logging api request: %w", err)
	}
	return nil
}

// scanKey scans a single API key row.
func (r *keyRepository) scanKey(row *sql.Row) (*APIKey, error) {
	k := &APIKey{}
	var scopesRaw []byte
	var lastUsedAt sql.NullTime
	var lastUsedIP sql.NullString
	var expiresAt sql.NullTime

	err := row.Scan(&k.ID, &k.KeyHash, &k.KeyPrefix, &k.Name, &scopesRaw,
		&k.RateLimit, &k.IsActive, &lastUsedAt, &lastUsedIP, &expiresAt,
		&k.CreatedAt, &k.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("api key not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning api key: %w", err)
	}

	if len(scopesRaw) > 0 {
		json.Unmarshal(scopesRaw, &k.Scopes)
	}
	if lastUsedAt.Valid {
		k.LastUsedAt = &lastUsedAt.Time
	}
	if lastUsedIP.Valid {
		k.LastUsedIP = &lastUsedIP.String
	}
	if expiresAt.Valid {
		k.ExpiresAt = &expiresAt.Time
	}
	return k, nil
}

// scanKeys scans multiple API key rows.
func (r *keyRepository) scanKeys(rows *sql.Rows) ([]APIKey, error) {
	var keys []APIKey
	for rows.Next() {
		var k APIKey
		var scopesRaw []byte
		var lastUsedAt sql.NullTime
		var lastUsedIP sql.NullString
		var expiresAt sql.NullTime

		if err := rows.Scan(&k.ID, &k.KeyHash, &k.KeyPrefix, &k.Name, &scopesRaw,
			&k.RateLimit, &k.IsActive, &lastUsedAt, &lastUsedIP, &expiresAt,
			&k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning api key: %w", err)
		}

		if len(scopesRaw) > 0 {
			json.Unmarshal(scopesRaw, &k.Scopes)
		}
		if lastUsedAt.Valid {
			k.LastUsedAt = &lastUsedAt.Time
		}
		if lastUsedIP.Valid {
			k.LastUsedIP = &lastUsedIP.String
		}
		if expiresAt.Valid {
			k.ExpiresAt = &expiresAt.Time
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
