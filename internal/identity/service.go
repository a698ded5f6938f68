package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/content-suite/content-suite/internal/authz"
	"github.com/content-suite/content-suite/internal/shared"
)

// Service wraps account business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     authz.Role
}

// Register creates a new account. Missing roles default to creator; unknown
// roles are rejected.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return User{}, fmt.Errorf("email and password are required: %w", shared.ErrValidation)
	}
	role := input.Role
	if role == "" {
		role = authz.RoleCreator
	}
	if !role.Valid() {
		return User{}, fmt.Errorf("unknown role %q: %w", input.Role, shared.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicate) {
			return User{}, fmt.Errorf("email already registered: %w", shared.ErrDuplicate)
		}
		return User{}, err
	}
	return created, nil
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return User{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Resolve loads the account behind a verified token subject, rejecting
// deactivated accounts.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return User{}, shared.ErrUnauthorized
		}
		return User{}, err
	}
	if !user.IsActive {
		return User{}, shared.ErrUnauthorized
	}
	return user, nil
}

func roleFromString(raw string) authz.Role {
	return authz.Role(strings.ToLower(strings.TrimSpace(raw)))
}
