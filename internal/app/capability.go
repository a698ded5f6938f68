package app

import (
	"context"

	"github.com/content-suite/content-suite/internal/ai"
	"github.com/content-suite/content-suite/internal/audit"
	"github.com/content-suite/content-suite/internal/generation"
	"github.com/content-suite/content-suite/internal/observability"
)

type instrumentedTextGenerator struct {
	inner   generation.TextGenerator
	metrics *observability.Metrics
}

func (g instrumentedTextGenerator) Generate(ctx context.Context, req ai.TextRequest) (ai.TextResult, error) {
	result, err := g.inner.Generate(ctx, req)
	g.metrics.ObserveCapability("text-generation", err)
	return result, err
}

// InstrumentTextGenerator counts capability calls around the text generator.
func InstrumentTextGenerator(inner generation.TextGenerator, metrics *observability.Metrics) generation.TextGenerator {
	if metrics == nil {
		return inner
	}
	return instrumentedTextGenerator{inner: inner, metrics: metrics}
}

type instrumentedVision struct {
	inner   audit.VisionAnalyzer
	metrics *observability.Metrics
}

func (v instrumentedVision) Analyze(ctx context.Context, prompt string, img ai.Image) (string, error) {
	text, err := v.inner.Analyze(ctx, prompt, img)
	v.metrics.ObserveCapability("vision-analysis", err)
	return text, err
}

func (v instrumentedVision) Model() string {
	return v.inner.Model()
}

// InstrumentVision counts capability calls around the vision analyzer.
func InstrumentVision(inner audit.VisionAnalyzer, metrics *observability.Metrics) audit.VisionAnalyzer {
	if metrics == nil {
		return inner
	}
	return instrumentedVision{inner: inner, metrics: metrics}
}
