package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// CacheWarmer seeds the brand manual cache with recent entries.
type CacheWarmer interface {
	WarmCache(ctx context.Context, limit int) (int, error)
}

// BrandWarmupJob pre-populates the manual cache so the first generation
// request after a deploy does not pay the database round trip.
type BrandWarmupJob struct {
	Warmer CacheWarmer
	Logger *slog.Logger
}

// NewBrandWarmupJob wires dependencies for the warmup handler.
func NewBrandWarmupJob(warmer CacheWarmer, logger *slog.Logger) *BrandWarmupJob {
	return &BrandWarmupJob{Warmer: warmer, Logger: logger}
}

// Handle processes TaskBrandCacheWarmup tasks.
func (j *BrandWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Warmer == nil {
		return errors.New("brand warmup: handler not configured")
	}
	var payload BrandWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := time.Now()
	jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	warmed, err := j.Warmer.WarmCache(jobCtx, payload.Limit)
	if err != nil {
		j.logger().Error("warm brand cache", slog.Any("error", err))
		return err
	}
	j.logger().Info("completed brand cache warmup",
		slog.Int("manuals", warmed),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *BrandWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskBrandCacheWarmup))
	}
	return slog.Default().With(slog.String("job", TaskBrandCacheWarmup))
}
