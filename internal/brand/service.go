package brand

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/content-suite/content-suite/internal/shared"
)

// Generator produces the narrative manual body from the structured fields.
type Generator interface {
	GenerateBrandManual(ctx context.Context, product, tone, audience, restrictions string) (string, error)
}

// Service coordinates manual generation, persistence and caching.
type Service struct {
	repo      Repository
	cache     *Cache
	generator Generator
	logger    *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, cache *Cache, generator Generator, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, generator: generator, logger: logger}
}

// CreateInput carries the fields of a manual creation request.
type CreateInput struct {
	Name           string
	Product        string
	Tone           string
	TargetAudience string
	Restrictions   string
}

// Create generates the manual body and persists the record. A generation
// failure leaves no record behind.
func (s *Service) Create(ctx context.Context, input CreateInput, actor uuid.UUID) (Manual, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Manual{}, fmt.Errorf("manual name is required: %w", shared.ErrValidation)
	}

	markdown, err := s.generator.GenerateBrandManual(ctx, input.Product, input.Tone, input.TargetAudience, input.Restrictions)
	if err != nil {
		return Manual{}, err
	}

	manual := Manual{
		ID:             uuid.New(),
		Name:           input.Name,
		Product:        input.Product,
		Tone:           input.Tone,
		TargetAudience: input.TargetAudience,
		Restrictions:   input.Restrictions,
		Markdown:       markdown,
		Version:        1,
		CreatedBy:      actor,
	}
	created, err := s.repo.Insert(ctx, manual)
	if err != nil {
		return Manual{}, err
	}
	if err := s.cache.Set(ctx, created); err != nil {
		s.logger.Warn("cache manual", slog.Any("error", err))
	}
	return created, nil
}

// Get fetches a manual, serving from cache when possible.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Manual, error) {
	if m, ok := s.cache.Get(ctx, id); ok {
		return m, nil
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return Manual{}, err
	}
	if err := s.cache.Set(ctx, m); err != nil {
		s.logger.Warn("cache manual", slog.Any("error", err))
	}
	return m, nil
}

// List returns manuals newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Manual, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, limit)
}

// Update applies a field patch and invalidates the cache entry.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch ManualPatch) (Manual, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return Manual{}, err
	}
	if err := s.cache.Set(ctx, updated); err != nil {
		s.logger.Warn("cache manual", slog.Any("error", err))
	}
	return updated, nil
}

// Delete removes a manual and drops it from the cache.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("invalidate manual cache", slog.Any("error", err))
	}
	return nil
}

// Search matches the query case-insensitively against the name, product and
// markdown of the most recent manuals.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Manual, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", shared.ErrValidation)
	}

	recent, err := s.repo.List(ctx, 100)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(query)
	var matches []Manual
	for _, m := range recent {
		haystack := fold.String(m.Name + "\n" + m.Product + "\n" + m.Markdown)
		if strings.Contains(haystack, needle) {
			matches = append(matches, m)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

// WarmCache seeds the cache with the most recent manuals. Used by the
// scheduled warmup job; errors on individual entries are logged and skipped.
func (s *Service) WarmCache(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 20
	}
	manuals, err := s.repo.List(ctx, limit)
	if err != nil {
		return 0, err
	}
	warmed := 0
	for _, m := range manuals {
		if err := s.cache.Set(ctx, m); err != nil {
			s.logger.Warn("warm manual cache", slog.String("manual_id", m.ID.String()), slog.Any("error", err))
			continue
		}
		warmed++
	}
	return warmed, nil
}
