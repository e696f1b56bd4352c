package archive

import (
	"context"
	"database/sql"

	"github.com/keyxmakerx/unical/internal/apperror"
)

// ArchiveRepository defines persistence operations for saved dates.
type ArchiveRepository interface {
	Create(ctx context.Context, sd *SavedDate) error
	GetByID(ctx context.Context, id int64) (*SavedDate, error)
	List(ctx context.Context, limit, offset int) ([]SavedDate, int, error)
	ListAll(ctx context.Context) ([]SavedDate, error)
	Update(ctx context.Context, sd *SavedDate) error
	Delete(ctx context.Context, id int64) error
}

// archiveRepo is the MariaDB implementation of ArchiveRepository.
type archiveRepo struct {
	db *sql.DB
}

// NewArchiveRepository creates a new MariaDB-backed archive repository.
func NewArchiveRepository(db *sql.DB) ArchiveRepository {
	return &archiveRepo{db: db}
}

// savedDateCols is the column list for saved date queries.
const savedDateCols = `id, label, note, gregorian_date, unified_iso, variant, style, created_at, updated_at`

// scanSavedDate reads a row into a SavedDate struct.
func scanSavedDate(scanner interface{ Scan(...any) error }) (*SavedDate, error) {
	sd := &SavedDate{}
	var note sql.NullString
	err := scanner.Scan(&sd.ID, &sd.Label, &note, &sd.GregorianDate, &sd.UnifiedISO,
		&sd.Variant, &sd.Style, &sd.CreatedAt, &sd.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if note.Valid {
		sd.Note = note.String
	}
	return sd, err
}

// Create inserts a new saved date.
func (r *archiveRepo) Create(ctx context.Context, sd *SavedDate) error {
	note := sql.NullString{String: sd.Note, Valid: sd.Note != ""}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_dates (label, note, gregorian_date, unified_iso, variant, style)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sd.Label, note, sd.GregorianDate, sd.UnifiedISO, sd.Variant, sd.Style,
	)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	sd.ID = id
	return nil
}

// GetByID returns a saved date by its ID.
func (r *archiveRepo) GetByID(ctx context.Context, id int64) (*SavedDate, error) {
	return scanSavedDate(r.db.QueryRowContext(ctx,
		`SELECT `+savedDateCols+` FROM saved_dates WHERE id = ?`, id))
}

// List returns saved dates ordered by Gregorian date with pagination.
func (r *archiveRepo) List(ctx context.Context, limit, offset int) ([]SavedDate, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_dates`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+savedDateCols+` FROM saved_dates
		 ORDER BY gregorian_date, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	dates, err := scanSavedDates(rows)
	return dates, total, err
}

// ListAll returns every saved date ordered by Gregorian date.
func (r *archiveRepo) ListAll(ctx context.Context) ([]SavedDate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+savedDateCols+` FROM saved_dates ORDER BY gregorian_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSavedDates(rows)
}

// Update replaces all mutable fields of a saved date.
func (r *archiveRepo) Update(ctx context.Context, sd *SavedDate) error {
	note := sql.NullString{String: sd.Note, Valid: sd.Note != ""}
	_, err := r.db.ExecContext(ctx,
		`UPDATE saved_dates SET label = ?, note = ?, gregorian_date = ?,
		        unified_iso = ?, variant = ?, style = ?
		 WHERE id = ?`,
		sd.Label, note, sd.GregorianDate, sd.UnifiedISO, sd.Variant, sd.Style, sd.ID,
	)
	return err
}

// Delete removes a saved date.
func (r *archiveRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_dates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("saved date not found")
	}
	return nil
}

// scanSavedDates reads multiple saved date rows.
func scanSavedDates(rows *sql.Rows) ([]SavedDate, error) {
	var dates []SavedDate
	for rows.Next() {
		var sd SavedDate
		var note sql.NullString
		if err := rows.Scan(&sd.ID, &sd.Label, &note, &sd.GregorianDate, &sd.UnifiedISO,
			&sd.Variant, &sd.Style, &sd.CreatedAt, &sd.UpdatedAt); err != nil {
			return nil, err
		}
		if note.Valid {
			sd.Note = note.String
		}
		dates = append(dates, sd)
	}
	return dates, rows.Err()
}
