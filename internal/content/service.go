package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/content-suite/content-suite/internal/brand"
	"github.com/content-suite/content-suite/internal/shared"
)

// ManualDirectory resolves the brand manual a content item is grounded on.
type ManualDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (brand.Manual, error)
}

// Generator produces the artifact text for a content item.
type Generator interface {
	GenerateContent(ctx context.Context, contentType, brandContext, product, title string) (string, error)
}

// Service owns the content item lifecycle.
type Service struct {
	repo      Repository
	manuals   ManualDirectory
	generator Generator
	logger    *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, manuals ManualDirectory, generator Generator, logger *slog.Logger) *Service {
	return &Service{repo: repo, manuals: manuals, generator: generator, logger: logger}
}

// CreateInput carries the fields of a content creation request.
type CreateInput struct {
	ManualID uuid.UUID
	Type     Type
	Title    string
}

// Create generates the artifact text and persists a pending item. The manual
// must exist before generation is attempted; a generation failure leaves no
// record behind.
func (s *Service) Create(ctx context.Context, input CreateInput, actor uuid.UUID) (Item, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Item{}, fmt.Errorf("title is required: %w", shared.ErrValidation)
	}
	if !input.Type.Valid() {
		return Item{}, fmt.Errorf("unknown content type %q: %w", input.Type, shared.ErrValidation)
	}

	manual, err := s.manuals.Get(ctx, input.ManualID)
	if err != nil {
		return Item{}, fmt.Errorf("brand manual: %w", err)
	}

	text, err := s.generator.GenerateContent(ctx, string(input.Type), brand.FormatContext(manual), manual.Product, input.Title)
	if err != nil {
		return Item{}, err
	}

	item := Item{
		ID:        uuid.New(),
		ManualID:  manual.ID,
		Type:      input.Type,
		Title:     input.Title,
		Text:      text,
		State:     StatePending,
		CreatedBy: actor,
	}
	return s.repo.Insert(ctx, item)
}

// Get fetches an item by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Item, error) {
	return s.repo.Get(ctx, id)
}

// List returns items newest first, optionally filtered by state.
func (s *Service) List(ctx context.Context, state State, limit int) ([]Item, error) {
	if state != "" && !state.Valid() {
		return nil, fmt.Errorf("unknown state %q: %w", state, shared.ErrValidation)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, state, limit)
}

// Approve marks the item approved by the actor. Approval is an unconditional
// overwrite: approvers may revise a decision from any current state, and a
// prior rejection reason is cleared.
func (s *Service) Approve(ctx context.Context, id, actor uuid.UUID) (Item, error) {
	item, err := s.repo.SetApproved(ctx, id, actor)
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("content approved",
		slog.String("content_id", item.ID.String()),
		slog.String("approved_by", actor.String()))
	return item, nil
}

// Reject marks the item rejected with the given reason. Like Approve, this
// overwrites from any current state. An empty reason is a validation error.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string, actor uuid.UUID) (Item, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Item{}, fmt.Errorf("rejection reason is required: %w", shared.ErrValidation)
	}
	item, err := s.repo.SetRejected(ctx, id, reason)
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("content rejected",
		slog.String("content_id", item.ID.String()),
		slog.String("rejected_by", actor.String()))
	return item, nil
}
