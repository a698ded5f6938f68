package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/content-suite/content-suite/internal/telemetry"
)

// TelemetrySink queues generation records for asynchronous shipping so that
// a slow dashboard never sits on the request path. Enqueue failures are
// logged and dropped.
type TelemetrySink struct {
	client *Client
	logger *slog.Logger
}

// NewTelemetrySink constructs a queue-backed sink.
func NewTelemetrySink(client *Client, logger *slog.Logger) *TelemetrySink {
	return &TelemetrySink{client: client, logger: logger}
}

// LogGeneration enqueues the record.
func (s *TelemetrySink) LogGeneration(ctx context.Context, gen telemetry.Generation) {
	if s == nil || s.client == nil {
		return
	}
	task, err := NewTelemetryGenerationTask(gen)
	if err != nil {
		s.logger.Warn("build telemetry task", slog.Any("error", err))
		return
	}
	if _, err := s.client.Enqueue(ctx, task); err != nil {
		s.logger.Warn("enqueue telemetry task", slog.String("trace", gen.Name), slog.Any("error", err))
	}
}

var _ telemetry.Sink = (*TelemetrySink)(nil)

// Shipper posts a generation record to the external dashboard.
type Shipper interface {
	Ship(ctx context.Context, gen telemetry.Generation) error
	Enabled() bool
}

// TelemetryShipJob forwards queued generation records to the dashboard.
type TelemetryShipJob struct {
	Shipper Shipper
	Logger  *slog.Logger
}

// NewTelemetryShipJob wires dependencies for the ship handler.
func NewTelemetryShipJob(shipper Shipper, logger *slog.Logger) *TelemetryShipJob {
	return &TelemetryShipJob{Shipper: shipper, Logger: logger}
}

// Handle processes TaskTelemetryGeneration tasks.
func (j *TelemetryShipJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("telemetry ship: handler not configured")
	}
	var gen telemetry.Generation
	if err := json.Unmarshal(t.Payload(), &gen); err != nil {
		return asynq.SkipRetry
	}
	if j.Shipper == nil || !j.Shipper.Enabled() {
		return nil
	}
	if err := j.Shipper.Ship(ctx, gen); err != nil {
		j.logger().Warn("ship generation trace", slog.String("trace", gen.Name), slog.Any("error", err))
		return err
	}
	return nil
}

func (j *TelemetryShipJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTelemetryGeneration))
	}
	return slog.Default().With(slog.String("job", TaskTelemetryGeneration))
}
