package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/content-suite/content-suite/internal/authz"
	"github.com/content-suite/content-suite/internal/shared"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[uuid.UUID]User)}
}

func (r *memoryRepo) Create(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return User{}, shared.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryRepo) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, shared.ErrNotFound
}

func (r *memoryRepo) FindByID(_ context.Context, id uuid.UUID) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return user, nil
}

func TestRegisterDefaultsToCreator(t *testing.T) {
	svc := NewService(newMemoryRepo())

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ana@Example.COM ",
		Name:     "Ana",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", user.Email)
	require.Equal(t, authz.RoleCreator, user.Role)
	require.True(t, user.IsActive)
	require.NotEqual(t, "s3cret", user.PasswordHash)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "s3cret",
		Role:     authz.Role("superuser"),
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "ANA@example.com", Password: "other"})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newMemoryRepo())

	registered, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "s3cret",
		Role:     authz.RoleApproverA,
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "Ana@Example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(context.Background(), "ana@example.com", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "s3cret")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestResolveRejectsInactive(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "s3cret"})
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	repo.mu.Lock()
	deactivated := repo.users[user.ID]
	deactivated.IsActive = false
	repo.users[user.ID] = deactivated
	repo.mu.Unlock()

	_, err = svc.Resolve(context.Background(), user.ID)
	require.ErrorIs(t, err, shared.ErrUnauthorized)

	_, err = svc.Resolve(context.Background(), uuid.New())
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	user := User{ID: uuid.New(), Email: "ana@example.com", Role: authz.RoleAdmin}

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	id, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, id)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)
	user := User{ID: uuid.New(), Email: "ana@example.com", Role: authz.RoleCreator}

	forged, err := other.Issue(user)
	require.NoError(t, err)

	_, err = tokens.Verify(forged)
	require.ErrorIs(t, err, shared.ErrUnauthorized)

	_, err = tokens.Verify("not-a-token")
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens := NewTokenManager("test-secret", -time.Minute)
	user := User{ID: uuid.New(), Email: "ana@example.com", Role: authz.RoleCreator}

	expired, err := tokens.Issue(user)
	require.NoError(t, err)

	_, err = tokens.Verify(expired)
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}
