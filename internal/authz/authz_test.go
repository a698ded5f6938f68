package authz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/content-suite/content-suite/internal/shared"
)

func TestAuthorizeTable(t *testing.T) {
	allowed := map[Operation]map[Role]bool{
		OpManualCreate:   {RoleCreator: true, RoleAdmin: true},
		OpManualRead:     {RoleCreator: true, RoleApproverA: true, RoleApproverB: true, RoleAdmin: true},
		OpManualUpdate:   {RoleCreator: true, RoleAdmin: true},
		OpManualDelete:   {RoleAdmin: true},
		OpContentCreate:  {RoleCreator: true, RoleAdmin: true},
		OpContentRead:    {RoleCreator: true, RoleApproverA: true, RoleApproverB: true, RoleAdmin: true},
		OpContentApprove: {RoleApproverA: true, RoleAdmin: true},
		OpContentReject:  {RoleApproverA: true, RoleAdmin: true},
		OpAuditRun:       {RoleApproverB: true, RoleAdmin: true},
		OpAuditRead:      {RoleCreator: true, RoleApproverA: true, RoleApproverB: true, RoleAdmin: true},
	}
	require.Len(t, allowed, len(Operations))

	for _, op := range Operations {
		for _, role := range Roles {
			err := Authorize(role, op)
			if allowed[op][role] {
				require.NoErrorf(t, err, "expected %s to perform %s", role, op)
			} else {
				require.Errorf(t, err, "expected %s to be denied %s", role, op)
				require.ErrorIs(t, err, shared.ErrForbidden)
			}
		}
	}
}

func TestAuthorizeUnknownRole(t *testing.T) {
	err := Authorize(Role("intern"), OpContentApprove)
	require.True(t, errors.Is(err, shared.ErrForbidden))
}

func TestAuthorizeUnknownOperation(t *testing.T) {
	err := Authorize(RoleAdmin, Operation("content.delete"))
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestRoleValid(t *testing.T) {
	for _, role := range Roles {
		require.True(t, role.Valid())
	}
	require.False(t, Role("superuser").Valid())
	require.False(t, Role("").Valid())
}
