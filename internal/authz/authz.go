// Package authz is the access control gate: a static table mapping roles to
// the operations they may perform. Authorization is a pure function of
// (role, operation); authentication happens upstream in internal/identity.
package authz

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/content-suite/content-suite/internal/shared"
)

// Role is the closed set of roles an identity can hold.
type Role string

const (
	RoleCreator   Role = "creator"
	RoleApproverA Role = "approver_a"
	RoleApproverB Role = "approver_b"
	RoleAdmin     Role = "admin"
)

// Roles lists every known role.
var Roles = []Role{RoleCreator, RoleApproverA, RoleApproverB, RoleAdmin}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleCreator, RoleApproverA, RoleApproverB, RoleAdmin:
		return true
	}
	return false
}

// Operation names a gated action against the content pipeline.
type Operation string

const (
	OpManualCreate   Operation = "brand.manual.create"
	OpManualRead     Operation = "brand.manual.read"
	OpManualUpdate   Operation = "brand.manual.update"
	OpManualDelete   Operation = "brand.manual.delete"
	OpContentCreate  Operation = "content.create"
	OpContentRead    Operation = "content.read"
	OpContentApprove Operation = "content.approve"
	OpContentReject  Operation = "content.reject"
	OpAuditRun       Operation = "audit.run"
	OpAuditRead      Operation = "audit.read"
)

// Operations lists every gated operation.
var Operations = []Operation{
	OpManualCreate, OpManualRead, OpManualUpdate, OpManualDelete,
	OpContentCreate, OpContentRead, OpContentApprove, OpContentReject,
	OpAuditRun, OpAuditRead,
}

// permissions mirrors the transition table: reads are open to every
// authenticated role, mutations are gated per operation.
var permissions = map[Operation][]Role{
	OpManualCreate:   {RoleCreator, RoleAdmin},
	OpManualRead:     {RoleCreator, RoleApproverA, RoleApproverB, RoleAdmin},
	OpManualUpdate:   {RoleCreator, RoleAdmin},
	OpManualDelete:   {RoleAdmin},
	OpContentCreate:  {RoleCreator, RoleAdmin},
	OpContentRead:    {RoleCreator, RoleApproverA, RoleApproverB, RoleAdmin},
	OpContentApprove: {RoleApproverA, RoleAdmin},
	OpContentReject:  {RoleApproverA, RoleAdmin},
	OpAuditRun:       {RoleApproverB, RoleAdmin},
	OpAuditRead:      {RoleCreator, RoleApproverA, RoleApproverB, RoleAdmin},
}

// Identity describes the authenticated actor as seen by the gate.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  Role
}

// Authorize checks the static permission table.
func Authorize(role Role, op Operation) error {
	for _, allowed := range permissions[op] {
		if allowed == role {
			return nil
		}
	}
	return fmt.Errorf("role %s may not perform %s: %w", role, op, shared.ErrForbidden)
}
