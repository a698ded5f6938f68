// Package telemetry reports model generations to an external observability
// dashboard. Emission is fire-and-forget: no sink implementation may surface
// a failure into the operation that produced the record.
package telemetry

import (
	"context"

	"github.com/content-suite/content-suite/internal/ai"
)

// Generation is one model call worth of trace data. Input and output are
// truncated by the producer before emission.
type Generation struct {
	Name     string            `json:"name"`
	Input    string            `json:"input"`
	Output   string            `json:"output"`
	Model    string            `json:"model"`
	Usage    ai.Usage          `json:"usage"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Sink accepts generation records. Implementations swallow their own errors.
type Sink interface {
	LogGeneration(ctx context.Context, gen Generation)
}

// NopSink discards all records.
type NopSink struct{}

// LogGeneration discards the record.
func (NopSink) LogGeneration(context.Context, Generation) {}

// Truncate caps a string at max bytes for trace payloads.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
