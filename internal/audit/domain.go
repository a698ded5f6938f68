// Package audit scores published visual artifacts against brand guidelines
// using the vision-analysis capability and keeps an append-only record of
// every audit.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// ComplianceThreshold is the policy cutoff: a score at or above it passes.
const ComplianceThreshold = 0.7

// Record is the outcome of one compliance check. Records are append-only;
// re-audits produce new records and never mutate prior ones.
type Record struct {
	ID        uuid.UUID
	ContentID uuid.UUID
	ImageRef  string
	Compliant bool
	Score     float64
	Analysis  string
	AuditedBy uuid.UUID
	CreatedAt time.Time
}
