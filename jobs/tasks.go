// Package jobs holds background task definitions and the Asynq worker that
// processes them.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/content-suite/content-suite/internal/telemetry"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTelemetryGeneration ships one generation trace to the dashboard.
	TaskTelemetryGeneration = "telemetry:generation"
	// TaskBrandCacheWarmup re-seeds the brand manual cache.
	TaskBrandCacheWarmup = "brand:cache_warmup"
)

// NewTelemetryGenerationTask constructs a task carrying one generation record.
func NewTelemetryGenerationTask(gen telemetry.Generation) (*asynq.Task, error) {
	data, err := json.Marshal(gen)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTelemetryGeneration, data), nil
}

// BrandWarmupPayload bounds how many manuals the warmup touches.
type BrandWarmupPayload struct {
	Limit int `json:"limit"`
}

// NewBrandWarmupTask constructs a cache warmup task.
func NewBrandWarmupTask(payload BrandWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBrandCacheWarmup, data), nil
}
