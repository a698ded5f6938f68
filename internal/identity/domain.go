package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/content-suite/content-suite/internal/authz"
)

// User represents an account that can authenticate against the API.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         authz.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity converts the user record into the gate's view of the actor.
func (u User) Identity() authz.Identity {
	return authz.Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
