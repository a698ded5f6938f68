// Package brand manages brand manuals: the structured identity, tone and
// restriction records that ground every generation and audit prompt.
package brand

import (
	"time"

	"github.com/google/uuid"
)

// Manual describes a brand's identity and constraints. Markdown holds the
// generated narrative guidance and is populated only on successful generation.
type Manual struct {
	ID             uuid.UUID
	Name           string
	Product        string
	Tone           string
	TargetAudience string
	Restrictions   string
	Markdown       string
	Version        int
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ManualPatch carries optional field updates; nil fields are left untouched.
type ManualPatch struct {
	Name           *string
	Product        *string
	Tone           *string
	TargetAudience *string
	Restrictions   *string
	Markdown       *string
}
