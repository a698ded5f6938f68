package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/content-suite/content-suite/internal/ai"
	"github.com/content-suite/content-suite/internal/brand"
	"github.com/content-suite/content-suite/internal/content"
	"github.com/content-suite/content-suite/internal/platform/objstore"
	"github.com/content-suite/content-suite/internal/shared"
	"github.com/content-suite/content-suite/internal/telemetry"
)

const imageKeyPrefix = "audits/"

// ContentDirectory resolves the content item an audit targets.
type ContentDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (content.Item, error)
}

// ManualDirectory resolves the brand manual the content is grounded on.
type ManualDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (brand.Manual, error)
}

// VisionAnalyzer is the external vision-analysis capability.
type VisionAnalyzer interface {
	Analyze(ctx context.Context, prompt string, img ai.Image) (string, error)
	Model() string
}

// Service runs compliance audits and serves their history.
type Service struct {
	repo      Repository
	contents  ContentDirectory
	manuals   ManualDirectory
	vision    VisionAnalyzer
	images    objstore.Store
	telemetry telemetry.Sink
	logger    *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, contents ContentDirectory, manuals ManualDirectory,
	vision VisionAnalyzer, images objstore.Store, sink telemetry.Sink, logger *slog.Logger) *Service {
	if sink == nil {
		sink = telemetry.NopSink{}
	}
	return &Service{
		repo:      repo,
		contents:  contents,
		manuals:   manuals,
		vision:    vision,
		images:    images,
		telemetry: sink,
		logger:    logger,
	}
}

// AuditInput carries the fields of an audit request. Exactly one of ImageData
// and ImageURL must be set.
type AuditInput struct {
	ContentID uuid.UUID
	ImageData []byte
	MIMEType  string
	ImageURL  string
}

// AuditImage scores an image against the brand manual behind a content item.
// The content item and its manual must exist; a vision capability failure
// leaves no record behind. A malformed model verdict does not fail the audit,
// the score falls back to its default.
func (s *Service) AuditImage(ctx context.Context, input AuditInput, actor uuid.UUID) (Record, error) {
	if len(input.ImageData) == 0 && strings.TrimSpace(input.ImageURL) == "" {
		return Record{}, fmt.Errorf("image file or url is required: %w", shared.ErrValidation)
	}

	item, err := s.contents.Get(ctx, input.ContentID)
	if err != nil {
		return Record{}, fmt.Errorf("content item: %w", err)
	}
	manual, err := s.manuals.Get(ctx, item.ManualID)
	if err != nil {
		return Record{}, fmt.Errorf("brand manual: %w", err)
	}

	prompt := evaluationPrompt(item.Text, brand.FormatContext(manual))
	analysis, err := s.vision.Analyze(ctx, prompt, ai.Image{
		Data:     input.ImageData,
		MIMEType: input.MIMEType,
		URL:      input.ImageURL,
	})
	if err != nil {
		s.logger.Error("image audit",
			slog.String("content_id", item.ID.String()),
			slog.Any("error", err))
		return Record{}, fmt.Errorf("%w: %v", shared.ErrAudit, err)
	}

	s.telemetry.LogGeneration(ctx, telemetry.Generation{
		Name:   "image-compliance-audit",
		Input:  telemetry.Truncate(prompt, 500),
		Output: telemetry.Truncate(analysis, 1000),
		Model:  s.vision.Model(),
		Metadata: map[string]string{
			"content_id": item.ID.String(),
		},
	})

	score := ExtractScore(analysis)

	id := uuid.New()
	imageRef := input.ImageURL
	if len(input.ImageData) > 0 {
		imageRef = imageKeyPrefix + id.String()
		if err := s.images.Put(ctx, imageRef, input.MIMEType, input.ImageData); err != nil {
			return Record{}, fmt.Errorf("store audit image: %w", err)
		}
	}

	rec, err := s.repo.Insert(ctx, Record{
		ID:        id,
		ContentID: item.ID,
		ImageRef:  imageRef,
		Compliant: score >= ComplianceThreshold,
		Score:     score,
		Analysis:  analysis,
		AuditedBy: actor,
	})
	if err != nil {
		return Record{}, err
	}

	s.logger.Info("image audited",
		slog.String("audit_id", rec.ID.String()),
		slog.String("content_id", rec.ContentID.String()),
		slog.Float64("score", rec.Score),
		slog.Bool("compliant", rec.Compliant))
	return rec, nil
}

// Get fetches a record by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	return s.repo.Get(ctx, id)
}

// ListByContent returns the audit history of a content item, oldest first.
func (s *Service) ListByContent(ctx context.Context, contentID uuid.UUID) ([]Record, error) {
	return s.repo.ListByContent(ctx, contentID)
}

// List returns the most recent audits across all content.
func (s *Service) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, limit)
}

// Image resolves the stored image behind a record. When the audit referenced
// an external URL instead of an upload, redirectURL is returned and the object
// is empty.
func (s *Service) Image(ctx context.Context, id uuid.UUID) (obj objstore.Object, redirectURL string, err error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return objstore.Object{}, "", err
	}
	if !strings.HasPrefix(rec.ImageRef, imageKeyPrefix) {
		return objstore.Object{}, rec.ImageRef, nil
	}
	obj, err = s.images.Get(ctx, rec.ImageRef)
	if err != nil {
		return objstore.Object{}, "", fmt.Errorf("audit image: %w", shared.ErrNotFound)
	}
	return obj, "", nil
}
