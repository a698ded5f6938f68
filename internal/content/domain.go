// Package content owns the content item lifecycle: items enter as pending
// after successful generation and move to approved or rejected through
// role-gated transitions. No other code path mutates item state.
package content

import (
	"time"

	"github.com/google/uuid"
)

// Type is the kind of creative artifact to generate.
type Type string

const (
	TypeDescription Type = "description"
	TypeVideoScript Type = "video_script"
	TypeImagePrompt Type = "image_prompt"
)

// Valid reports whether the type belongs to the closed set.
func (t Type) Valid() bool {
	switch t {
	case TypeDescription, TypeVideoScript, TypeImagePrompt:
		return true
	}
	return false
}

// State is the lifecycle state of a content item.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
)

// Valid reports whether the state belongs to the closed set.
func (s State) Valid() bool {
	switch s {
	case StatePending, StateApproved, StateRejected:
		return true
	}
	return false
}

// Item is a single generated creative artifact subject to approval.
// ApprovedBy and RejectionReason are mutually exclusive: each is set only by
// the transition that produces its state and cleared by the other.
type Item struct {
	ID              uuid.UUID
	ManualID        uuid.UUID
	Type            Type
	Title           string
	Text            string
	State           State
	ApprovedBy      uuid.UUID
	RejectionReason string
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
