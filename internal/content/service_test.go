package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/content-suite/content-suite/internal/brand"
	"github.com/content-suite/content-suite/internal/shared"
)

type memoryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]Item
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[uuid.UUID]Item)}
}

func (r *memoryRepo) Insert(_ context.Context, item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = item
	return item, nil
}

func (r *memoryRepo) Get(_ context.Context, id uuid.UUID) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return Item{}, shared.ErrNotFound
	}
	return item, nil
}

func (r *memoryRepo) List(_ context.Context, state State, limit int) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Item
	for _, item := range r.items {
		if state != "" && item.State != state {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *memoryRepo) SetApproved(_ context.Context, id, actor uuid.UUID) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return Item{}, shared.ErrNotFound
	}
	item.State = StateApproved
	item.ApprovedBy = actor
	item.RejectionReason = ""
	item.UpdatedAt = time.Now().UTC()
	r.items[id] = item
	return item, nil
}

func (r *memoryRepo) SetRejected(_ context.Context, id uuid.UUID, reason string) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return Item{}, shared.ErrNotFound
	}
	item.State = StateRejected
	item.RejectionReason = reason
	item.ApprovedBy = uuid.Nil
	item.UpdatedAt = time.Now().UTC()
	r.items[id] = item
	return item, nil
}

type stubManuals struct {
	manuals map[uuid.UUID]brand.Manual
}

func (s stubManuals) Get(_ context.Context, id uuid.UUID) (brand.Manual, error) {
	manual, ok := s.manuals[id]
	if !ok {
		return brand.Manual{}, shared.ErrNotFound
	}
	return manual, nil
}

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (s *stubGenerator) GenerateContent(_ context.Context, _, _, _, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type contentFixture struct {
	service   *Service
	repo      *memoryRepo
	generator *stubGenerator
	manualID  uuid.UUID
	creator   uuid.UUID
}

func newContentFixture(t *testing.T, generator *stubGenerator) contentFixture {
	t.Helper()

	manualID := uuid.New()
	manuals := stubManuals{manuals: map[uuid.UUID]brand.Manual{
		manualID: {ID: manualID, Name: "Northwind", Product: "Sparkling water"},
	}}
	repo := newMemoryRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return contentFixture{
		service:   NewService(repo, manuals, generator, logger),
		repo:      repo,
		generator: generator,
		manualID:  manualID,
		creator:   uuid.New(),
	}
}

func TestCreatePendingItem(t *testing.T) {
	gen := &stubGenerator{text: "A crisp, refreshing description."}
	fx := newContentFixture(t, gen)

	item, err := fx.service.Create(context.Background(), CreateInput{
		ManualID: fx.manualID,
		Type:     TypeDescription,
		Title:    "Summer launch",
	}, fx.creator)
	require.NoError(t, err)
	require.Equal(t, StatePending, item.State)
	require.Equal(t, "A crisp, refreshing description.", item.Text)
	require.Equal(t, fx.creator, item.CreatedBy)
	require.Equal(t, uuid.Nil, item.ApprovedBy)
	require.Empty(t, item.RejectionReason)
}

func TestCreateValidation(t *testing.T) {
	gen := &stubGenerator{text: "text"}
	fx := newContentFixture(t, gen)

	_, err := fx.service.Create(context.Background(), CreateInput{
		ManualID: fx.manualID,
		Type:     TypeDescription,
		Title:    "   ",
	}, fx.creator)
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = fx.service.Create(context.Background(), CreateInput{
		ManualID: fx.manualID,
		Type:     Type("podcast"),
		Title:    "Summer launch",
	}, fx.creator)
	require.ErrorIs(t, err, shared.ErrValidation)

	require.Zero(t, gen.calls)
}

func TestCreateUnknownManual(t *testing.T) {
	gen := &stubGenerator{text: "text"}
	fx := newContentFixture(t, gen)

	_, err := fx.service.Create(context.Background(), CreateInput{
		ManualID: uuid.New(),
		Type:     TypeDescription,
		Title:    "Summer launch",
	}, fx.creator)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Zero(t, gen.calls)
}

func TestCreateGenerationFailureLeavesNoRecord(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	fx := newContentFixture(t, gen)

	_, err := fx.service.Create(context.Background(), CreateInput{
		ManualID: fx.manualID,
		Type:     TypeDescription,
		Title:    "Summer launch",
	}, fx.creator)
	require.Error(t, err)
	require.Empty(t, fx.repo.items)
}

func TestApprovalLifecycle(t *testing.T) {
	gen := &stubGenerator{text: "script"}
	fx := newContentFixture(t, gen)

	item, err := fx.service.Create(context.Background(), CreateInput{
		ManualID: fx.manualID,
		Type:     TypeVideoScript,
		Title:    "Launch teaser",
	}, fx.creator)
	require.NoError(t, err)

	approver := uuid.New()

	rejected, err := fx.service.Reject(context.Background(), item.ID, "off-tone opening", approver)
	require.NoError(t, err)
	require.Equal(t, StateRejected, rejected.State)
	require.Equal(t, "off-tone opening", rejected.RejectionReason)
	require.Equal(t, uuid.Nil, rejected.ApprovedBy)

	approved, err := fx.service.Approve(context.Background(), item.ID, approver)
	require.NoError(t, err)
	require.Equal(t, StateApproved, approved.State)
	require.Equal(t, approver, approved.ApprovedBy)
	require.Empty(t, approved.RejectionReason)
}

func TestRejectRequiresReason(t *testing.T) {
	gen := &stubGenerator{text: "text"}
	fx := newContentFixture(t, gen)

	item, err := fx.service.Create(context.Background(), CreateInput{
		ManualID: fx.manualID,
		Type:     TypeDescription,
		Title:    "Summer launch",
	}, fx.creator)
	require.NoError(t, err)

	_, err = fx.service.Reject(context.Background(), item.ID, "  ", uuid.New())
	require.ErrorIs(t, err, shared.ErrValidation)

	got, err := fx.service.Get(context.Background(), item.ID)
	require.NoError(t, err)
	require.Equal(t, StatePending, got.State)
}

func TestApproveOverwritesRejection(t *testing.T) {
	gen := &stubGenerator{text: "text"}
	fx := newContentFixture(t, gen)

	item, err := fx.service.Create(context.Background(), CreateInput{
		ManualID: fx.manualID,
		Type:     TypeImagePrompt,
		Title:    "Hero banner",
	}, fx.creator)
	require.NoError(t, err)

	_, err = fx.service.Reject(context.Background(), item.ID, "wrong palette", uuid.New())
	require.NoError(t, err)

	approved, err := fx.service.Approve(context.Background(), item.ID, uuid.New())
	require.NoError(t, err)
	require.Equal(t, StateApproved, approved.State)
	require.Empty(t, approved.RejectionReason)
}

func TestListStateFilter(t *testing.T) {
	gen := &stubGenerator{text: "text"}
	fx := newContentFixture(t, gen)

	first, err := fx.service.Create(context.Background(), CreateInput{
		ManualID: fx.manualID,
		Type:     TypeDescription,
		Title:    "First",
	}, fx.creator)
	require.NoError(t, err)
	_, err = fx.service.Create(context.Background(), CreateInput{
		ManualID: fx.manualID,
		Type:     TypeDescription,
		Title:    "Second",
	}, fx.creator)
	require.NoError(t, err)

	_, err = fx.service.Approve(context.Background(), first.ID, uuid.New())
	require.NoError(t, err)

	approved, err := fx.service.List(context.Background(), StateApproved, 0)
	require.NoError(t, err)
	require.Len(t, approved, 1)

	_, err = fx.service.List(context.Background(), State("archived"), 0)
	require.ErrorIs(t, err, shared.ErrValidation)
}
