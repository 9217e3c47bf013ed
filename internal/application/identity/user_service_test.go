package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/a7delivery/backend/internal/domain/identity"
	"github.com/a7delivery/backend/internal/domain/shared"
)

func newUserService(repo *fakeUserRepo) *UserService {
	return NewUserService(repo, zap.NewNop())
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestUserServiceCreateUser(t *testing.T) {
	svc := newUserService(newFakeUserRepo())

	info, err := svc.CreateUser(context.Background(), CreateUserInput{
		Username: "Newuser",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "newuser", info.Username)
	assert.Equal(t, identity.RoleUser, info.Role)
	assert.True(t, info.IsActive)
	require.NotNil(t, info.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(DefaultAccountLifetime), *info.ExpiresAt, time.Minute)
}

func TestUserServiceCreateUserCustomExpiry(t *testing.T) {
	svc := newUserService(newFakeUserRepo())
	expiry := time.Now().Add(30 * 24 * time.Hour)

	info, err := svc.CreateUser(context.Background(), CreateUserInput{
		Username:  "shortlived",
		Password:  "password123",
		ExpiresAt: &expiry,
	})
	require.NoError(t, err)
	require.NotNil(t, info.ExpiresAt)
	assert.WithinDuration(t, expiry, *info.ExpiresAt, time.Second)
}

func TestUserServiceCreateUserDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserInput{Username: "ALICE", Password: "password123"})
	assert.Equal(t, "USERNAME_TAKEN", domainCode(t, err))
}

func TestUserServiceListUsersExcludesAdmins(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "root", "password123", identity.RoleAdmin)
	seedUser(t, repo, "alice", "password123", identity.RoleUser)

	users, err := newUserService(repo).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestUserServiceUpdateUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "alice", "old-password", identity.RoleUser)
	svc := newUserService(repo)
	ctx := context.Background()

	expiry := time.Now().Add(7 * 24 * time.Hour)
	info, err := svc.UpdateUser(ctx, UpdateUserInput{
		UserID:    user.ID.String(),
		Password:  "new-password",
		ExpiresAt: &expiry,
	})
	require.NoError(t, err)
	require.NotNil(t, info.ExpiresAt)
	assert.WithinDuration(t, expiry, *info.ExpiresAt, time.Second)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.VerifyPassword("new-password"))
	assert.False(t, stored.VerifyPassword("old-password"))
}

func TestUserServiceUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "alice", "old-password", identity.RoleUser)
	svc := newUserService(repo)
	ctx := context.Background()

	_, err := svc.UpdateUser(ctx, UpdateUserInput{UserID: user.ID.String(), ClearExpiry: true})
	require.NoError(t, err)

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.VerifyPassword("old-password"))
	assert.Nil(t, stored.ExpiresAt)
}

func TestUserServiceUpdateUserInvalidID(t *testing.T) {
	svc := newUserService(newFakeUserRepo())

	_, err := svc.UpdateUser(context.Background(), UpdateUserInput{UserID: "not-a-uuid"})
	assert.Equal(t, "VALIDATION_ERROR", domainCode(t, err))
}

func TestUserServiceToggleUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "alice", "password123", identity.RoleUser)
	svc := newUserService(repo)
	ctx := context.Background()

	result, err := svc.ToggleUser(ctx, user.ID.String())
	require.NoError(t, err)
	assert.False(t, result.IsActive)

	result, err = svc.ToggleUser(ctx, user.ID.String())
	require.NoError(t, err)
	assert.True(t, result.IsActive)
}

func TestUserServiceRefusesAdminTargets(t *testing.T) {
	repo := newFakeUserRepo()
	admin := seedUser(t, repo, "root", "password123", identity.RoleAdmin)
	svc := newUserService(repo)
	ctx := context.Background()

	_, err := svc.ToggleUser(ctx, admin.ID.String())
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	err = svc.DeleteUser(ctx, admin.ID.String())
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}

func TestUserServiceDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "alice", "password123", identity.RoleUser)
	svc := newUserService(repo)
	ctx := context.Background()

	require.NoError(t, svc.DeleteUser(ctx, user.ID.String()))

	err := svc.DeleteUser(ctx, user.ID.String())
	assert.Equal(t, "USER_NOT_FOUND", domainCode(t, err))
}

func TestUserServiceEnsureAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "root", "bootstrap-password"))

	admin, err := repo.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.Nil(t, admin.ExpiresAt)

	// Idempotent on restart
	require.NoError(t, svc.EnsureAdmin(ctx, "root", "different-password"))
	again, err := repo.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.True(t, again.VerifyPassword("bootstrap-password"))
}
