package brand

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/content-suite/content-suite/internal/shared"
)

type memoryRepo struct {
	mu      sync.Mutex
	manuals map[uuid.UUID]Manual
	gets    int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{manuals: make(map[uuid.UUID]Manual)}
}

func (r *memoryRepo) Insert(_ context.Context, manual Manual) (Manual, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	manual.CreatedAt = now
	manual.UpdatedAt = now
	r.manuals[manual.ID] = manual
	return manual, nil
}

func (r *memoryRepo) Get(_ context.Context, id uuid.UUID) (Manual, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	m, ok := r.manuals[id]
	if !ok {
		return Manual{}, shared.ErrNotFound
	}
	return m, nil
}

func (r *memoryRepo) List(_ context.Context, limit int) ([]Manual, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Manual, 0, len(r.manuals))
	for _, m := range r.manuals {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, id uuid.UUID, patch ManualPatch) (Manual, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.manuals[id]
	if !ok {
		return Manual{}, shared.ErrNotFound
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Product != nil {
		m.Product = *patch.Product
	}
	if patch.Tone != nil {
		m.Tone = *patch.Tone
	}
	if patch.TargetAudience != nil {
		m.TargetAudience = *patch.TargetAudience
	}
	if patch.Restrictions != nil {
		m.Restrictions = *patch.Restrictions
	}
	if patch.Markdown != nil {
		m.Markdown = *patch.Markdown
	}
	m.Version++
	m.UpdatedAt = time.Now().UTC()
	r.manuals[id] = m
	return m, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.manuals[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.manuals, id)
	return nil
}

type stubGenerator struct {
	markdown string
	err      error
	calls    int
}

func (s *stubGenerator) GenerateBrandManual(_ context.Context, _, _, _, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.markdown, nil
}

type brandFixture struct {
	service   *Service
	repo      *memoryRepo
	generator *stubGenerator
	creator   uuid.UUID
}

func newBrandFixture(t *testing.T, generator *stubGenerator) brandFixture {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	repo := newMemoryRepo()
	cache := NewCache(client, time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return brandFixture{
		service:   NewService(repo, cache, generator, logger),
		repo:      repo,
		generator: generator,
		creator:   uuid.New(),
	}
}

func TestCreateManual(t *testing.T) {
	gen := &stubGenerator{markdown: "# Northwind manual"}
	fx := newBrandFixture(t, gen)

	manual, err := fx.service.Create(context.Background(), CreateInput{
		Name:           "Northwind",
		Product:        "Sparkling water",
		Tone:           "playful",
		TargetAudience: "young adults",
		Restrictions:   "no health claims",
	}, fx.creator)
	require.NoError(t, err)
	require.Equal(t, "# Northwind manual", manual.Markdown)
	require.Equal(t, 1, manual.Version)
	require.Equal(t, fx.creator, manual.CreatedBy)
	require.NotEqual(t, uuid.Nil, manual.ID)
}

func TestCreateManualRequiresName(t *testing.T) {
	gen := &stubGenerator{markdown: "# m"}
	fx := newBrandFixture(t, gen)

	_, err := fx.service.Create(context.Background(), CreateInput{Name: "  "}, fx.creator)
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Zero(t, gen.calls)
}

func TestCreateManualGenerationFailureLeavesNoRecord(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	fx := newBrandFixture(t, gen)

	_, err := fx.service.Create(context.Background(), CreateInput{Name: "Northwind"}, fx.creator)
	require.Error(t, err)
	require.Empty(t, fx.repo.manuals)
}

func TestGetServesFromCache(t *testing.T) {
	gen := &stubGenerator{markdown: "# m"}
	fx := newBrandFixture(t, gen)

	manual, err := fx.service.Create(context.Background(), CreateInput{Name: "Northwind"}, fx.creator)
	require.NoError(t, err)

	got, err := fx.service.Get(context.Background(), manual.ID)
	require.NoError(t, err)
	require.Equal(t, manual.ID, got.ID)
	require.Zero(t, fx.repo.gets)
}

func TestGetFallsBackToRepository(t *testing.T) {
	gen := &stubGenerator{markdown: "# m"}
	fx := newBrandFixture(t, gen)

	manual := Manual{ID: uuid.New(), Name: "Uncached", CreatedBy: fx.creator}
	_, err := fx.repo.Insert(context.Background(), manual)
	require.NoError(t, err)

	got, err := fx.service.Get(context.Background(), manual.ID)
	require.NoError(t, err)
	require.Equal(t, "Uncached", got.Name)
	require.Equal(t, 1, fx.repo.gets)

	// Second read is a cache hit.
	_, err = fx.service.Get(context.Background(), manual.ID)
	require.NoError(t, err)
	require.Equal(t, 1, fx.repo.gets)
}

func TestUpdateRefreshesCache(t *testing.T) {
	gen := &stubGenerator{markdown: "# m"}
	fx := newBrandFixture(t, gen)

	manual, err := fx.service.Create(context.Background(), CreateInput{Name: "Northwind"}, fx.creator)
	require.NoError(t, err)

	tone := "formal"
	updated, err := fx.service.Update(context.Background(), manual.ID, ManualPatch{Tone: &tone})
	require.NoError(t, err)
	require.Equal(t, "formal", updated.Tone)
	require.Equal(t, 2, updated.Version)

	got, err := fx.service.Get(context.Background(), manual.ID)
	require.NoError(t, err)
	require.Equal(t, "formal", got.Tone)
	require.Zero(t, fx.repo.gets)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	gen := &stubGenerator{markdown: "# m"}
	fx := newBrandFixture(t, gen)

	manual, err := fx.service.Create(context.Background(), CreateInput{Name: "Northwind"}, fx.creator)
	require.NoError(t, err)

	require.NoError(t, fx.service.Delete(context.Background(), manual.ID))

	_, err = fx.service.Get(context.Background(), manual.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSearch(t *testing.T) {
	gen := &stubGenerator{markdown: "Premium SPARKLING water guide"}
	fx := newBrandFixture(t, gen)

	_, err := fx.service.Create(context.Background(), CreateInput{Name: "Northwind", Product: "Sparkling water"}, fx.creator)
	require.NoError(t, err)
	_, err = fx.service.Create(context.Background(), CreateInput{Name: "Contoso", Product: "Office chairs"}, fx.creator)
	require.NoError(t, err)

	matches, err := fx.service.Search(context.Background(), "northwind", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "Northwind", matches[0].Name)

	// Markdown participates in the match, so both manuals carry the
	// generated body.
	matches, err = fx.service.Search(context.Background(), "sparkling", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	_, err = fx.service.Search(context.Background(), "   ", 10)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestWarmCache(t *testing.T) {
	gen := &stubGenerator{markdown: "# m"}
	fx := newBrandFixture(t, gen)

	for i := 0; i < 3; i++ {
		manual := Manual{ID: uuid.New(), Name: "Manual", CreatedBy: fx.creator}
		_, err := fx.repo.Insert(context.Background(), manual)
		require.NoError(t, err)
	}

	warmed, err := fx.service.WarmCache(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 3, warmed)
}
