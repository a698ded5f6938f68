// Package generation orchestrates text generation: it assembles type-specific
// prompts from brand context, delegates to the text-generation capability and
// reports successful calls to the telemetry sink.
package generation

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/content-suite/content-suite/internal/ai"
	"github.com/content-suite/content-suite/internal/shared"
	"github.com/content-suite/content-suite/internal/telemetry"
)

// TextGenerator is the external text-generation capability.
type TextGenerator interface {
	Generate(ctx context.Context, req ai.TextRequest) (ai.TextResult, error)
}

// Config tunes the model parameters sent with every request.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Service coordinates prompt assembly, capability calls and telemetry.
type Service struct {
	textgen   TextGenerator
	telemetry telemetry.Sink
	cfg       Config
	logger    *slog.Logger
	group     singleflight.Group
}

// NewService constructs a new Service.
func NewService(textgen TextGenerator, sink telemetry.Sink, cfg Config, logger *slog.Logger) *Service {
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}
	if sink == nil {
		sink = telemetry.NopSink{}
	}
	return &Service{textgen: textgen, telemetry: sink, cfg: cfg, logger: logger}
}

// GenerateContent produces the artifact text for a content item. Concurrent
// requests for the same prompt are collapsed into one capability call.
func (s *Service) GenerateContent(ctx context.Context, contentType, brandContext, product, title string) (string, error) {
	prompt := contentPrompt(contentType, brandContext, product, title)
	traceName := "content-generation-" + contentType

	key := contentType + "\x00" + prompt
	text, err, _ := s.group.Do(key, func() (any, error) {
		return s.generate(ctx, systemContent, prompt, traceName)
	})
	if err != nil {
		return "", err
	}
	return text.(string), nil
}

// GenerateBrandManual produces the markdown body of a brand manual.
func (s *Service) GenerateBrandManual(ctx context.Context, product, tone, audience, restrictions string) (string, error) {
	prompt := manualPrompt(product, tone, audience, restrictions)
	return s.generate(ctx, systemManual, prompt, "brand-manual-generation")
}

func (s *Service) generate(ctx context.Context, system, prompt, traceName string) (string, error) {
	result, err := s.textgen.Generate(ctx, ai.TextRequest{
		System:      system,
		Prompt:      prompt,
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		s.logger.Error("text generation", slog.String("trace", traceName), slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", shared.ErrGeneration, err)
	}

	s.telemetry.LogGeneration(ctx, telemetry.Generation{
		Name:   traceName,
		Input:  telemetry.Truncate(prompt, 500),
		Output: telemetry.Truncate(result.Text, 1000),
		Model:  result.Model,
		Usage:  result.Usage,
		Metadata: map[string]string{
			"system_prompt": telemetry.Truncate(system, 100),
		},
	})

	return result.Text, nil
}
