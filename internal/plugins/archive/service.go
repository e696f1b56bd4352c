package archive

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/keyxmakerx/unical/internal/apperror"
	"github.com/keyxmakerx/unical/internal/sanitize"
	"github.com/keyxmakerx/unical/internal/unidate"
)

// upcomingProbeYears bounds the search for the next occurrence of a
// saved date. Leap Day lands only every fourth year, with an eight-year
// gap around skipped century leap years.
const upcomingProbeYears = 8

// ArchiveService handles business logic for saved dates.
type ArchiveService interface {
	Create(ctx context.Context, input CreateSavedDateInput) (*SavedDateResponse, error)
	Get(ctx context.Context, id int64) (*SavedDateResponse, error)
	List(ctx context.Context, limit, offset int) ([]SavedDateResponse, int, error)
	Update(ctx context.Context, id int64, input UpdateSavedDateInput) (*SavedDateResponse, error)
	Delete(ctx context.Context, id int64) error
	Upcoming(ctx context.Context, limit int) ([]UpcomingDate, error)
}

// archiveService implements ArchiveService.
type archiveService struct {
	repo ArchiveRepository
}

// NewArchiveService creates a new archive service.
func NewArchiveService(repo ArchiveRepository) ArchiveService {
	return &archiveService{repo: repo}
}

// Create validates and stores a new saved date.
func (s *archiveService) Create(ctx context.Context, input CreateSavedDateInput) (*SavedDateResponse, error) {
	sd, err := s.buildSavedDate(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sd); err != nil {
		return nil, fmt.Errorf("create saved date: %w", err)
	}

	slog.Info("saved date created",
		slog.Int64("id", sd.ID),
		slog.String("unified_iso", sd.UnifiedISO),
	)

	// Re-read for the database-assigned timestamps.
	stored, err := s.repo.GetByID(ctx, sd.ID)
	if err != nil {
		return nil, fmt.Errorf("load saved date: %w", err)
	}
	if stored == nil {
		stored = sd
	}
	return s.render(stored)
}

// Get returns a single saved date with its rendering.
func (s *archiveService) Get(ctx context.Context, id int64) (*SavedDateResponse, error) {
	sd, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get saved date: %w", err)
	}
	if sd == nil {
		return nil, apperror.NewNotFound("saved date not found")
	}
	return s.render(sd)
}

// List returns saved dates ordered by Gregorian date with pagination.
func (s *archiveService) List(ctx context.Context, limit, offset int) ([]SavedDateResponse, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	dates, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list saved dates: %w", err)
	}

	responses := make([]SavedDateResponse, 0, len(dates))
	for i := range dates {
		resp, err := s.render(&dates[i])
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *resp)
	}
	return responses, total, nil
}

// Update replaces a saved date after re-validating all fields.
func (s *archiveService) Update(ctx context.Context, id int64, input UpdateSavedDateInput) (*SavedDateResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get saved date: %w", err)
	}
	if existing == nil {
		return nil, apperror.NewNotFound("saved date not found")
	}

	sd, err := s.buildSavedDate(CreateSavedDateInput(input))
	if err != nil {
		return nil, err
	}
	sd.ID = existing.ID

	if err := s.repo.Update(ctx, sd); err != nil {
		return nil, fmt.Errorf("update saved date: %w", err)
	}

	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load saved date: %w", err)
	}
	if stored == nil {
		stored = sd
	}
	return s.render(stored)
}

// Delete removes a saved date.
func (s *archiveService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("saved date deleted", slog.Int64("id", id))
	return nil
}

// Upcoming returns saved dates ordered by their next occurrence on the
// Unified calendar. The anniversary tracks the Unified year-day, so the
// next Gregorian occurrence can shift by a day around leap years.
func (s *archiveService) Upcoming(ctx context.Context, limit int) ([]UpcomingDate, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	dates, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved dates: %w", err)
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	upcoming := make([]UpcomingDate, 0, len(dates))
	for i := range dates {
		resp, err := s.render(&dates[i])
		if err != nil {
			return nil, err
		}
		next, err := nextOccurrence(dates[i].UnifiedISO, today)
		if err != nil {
			slog.Warn("skipping saved date without upcoming occurrence",
				slog.Int64("id", dates[i].ID),
				slog.Any("error", err),
			)
			continue
		}
		upcoming = append(upcoming, UpcomingDate{
			SavedDateResponse: *resp,
			NextOccurrence:    next.Format("2006-01-02"),
			DaysUntil:         int(next.Sub(today).Hours() / 24),
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].DaysUntil != upcoming[j].DaysUntil {
			return upcoming[i].DaysUntil < upcoming[j].DaysUntil
		}
		return upcoming[i].ID < upcoming[j].ID
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

// buildSavedDate validates raw input and resolves it against the engine.
func (s *archiveService) buildSavedDate(input CreateSavedDateInput) (*SavedDate, error) {
	label := sanitize.Label(input.Label)
	if label == "" {
		return nil, apperror.NewBadRequest("label is required")
	}
	if len(label) > 120 {
		return nil, apperror.NewBadRequest("label must be at most 120 characters")
	}

	note := sanitize.Note(input.Note)
	if len(note) > 2000 {
		return nil, apperror.NewBadRequest("note must be at most 2000 characters")
	}

	variant := unidate.VariantUnified
	if strings.TrimSpace(input.Variant) != "" {
		var err error
		if variant, err = unidate.ParseVariant(input.Variant); err != nil {
			return nil, apperror.NewBadRequest(err.Error())
		}
	}

	style := unidate.StyleLong
	if strings.TrimSpace(input.Style) != "" {
		var err error
		if style, err = unidate.ParseStyle(input.Style); err != nil {
			return nil, apperror.NewBadRequest(err.Error())
		}
	}

	// An empty date would silently resolve to today.
	gregorian := strings.TrimSpace(input.Gregorian)
	if gregorian == "" {
		return nil, apperror.NewBadRequest("gregorian date is required")
	}

	d := unidate.New()
	if _, err := d.Unify(gregorian, style); err != nil {
		return nil, apperror.NewBadRequest(err.Error())
	}
	// Format cannot fail once Unify has succeeded.
	iso, _ := d.Format(unidate.VariantUnified, unidate.StyleISO)

	return &SavedDate{
		Label:         label,
		Note:          note,
		GregorianDate: d.GregorianTime(),
		UnifiedISO:    iso,
		Variant:       variant,
		Style:         style,
	}, nil
}

// render re-derives the styled rendering for a stored date.
func (s *archiveService) render(sd *SavedDate) (*SavedDateResponse, error) {
	greg := sd.GregorianDate.Format("2006-01-02")

	d := unidate.New()
	if _, err := d.Unify(greg, sd.Style); err != nil {
		return nil, fmt.Errorf("render saved date %d: %w", sd.ID, err)
	}
	rendered, err := d.Format(sd.Variant, sd.Style)
	if err != nil {
		return nil, fmt.Errorf("render saved date %d: %w", sd.ID, err)
	}

	return &SavedDateResponse{
		SavedDate: *sd,
		Gregorian: greg,
		Rendered:  rendered,
	}, nil
}

// nextOccurrence finds the first Gregorian date on or after today whose
// Unified rendering shares the saved date's quarter, month, and day.
func nextOccurrence(unifiedISO string, today time.Time) (time.Time, error) {
	idx := strings.Index(unifiedISO, "-")
	if idx < 0 {
		return time.Time{}, fmt.Errorf("malformed unified date %q", unifiedISO)
	}
	suffix := unifiedISO[idx+1:]

	d := unidate.New()
	current, err := d.Unify(today.Format("2006-01-02"), unidate.StyleISO)
	if err != nil {
		return time.Time{}, fmt.Errorf("unify today: %w", err)
	}

	for offset := 0; offset <= upcomingProbeYears; offset++ {
		candidate := fmt.Sprintf("%d-%s", current.Year+offset, suffix)
		g, err := d.ReverseUnidate(candidate)
		if err != nil {
			// Leap Day resolves only in leap years.
			continue
		}
		if !g.Before(today) {
			return g, nil
		}
	}
	return time.Time{}, fmt.Errorf("no occurrence of %q within %d years", unifiedISO, upcomingProbeYears)
}
