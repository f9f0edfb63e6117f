package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topic-board/helper"
	"topic-board/models"
)

func newUserRepo(t *testing.T) UserRepository {
	pwm := helper.NewPasswordManager()
	pwm.Iterations = 1_000
	return NewUserRepository(newTestDB(t), pwm)
}

func TestCreateUserAndGet(t *testing.T) {
	repo := newUserRepo(t)

	id, err := repo.CreateUser("alice", "s3cret-pass", nil)
	require.NoError(t, err)
	require.NotZero(t, id)

	user, err := repo.GetUser("alice")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.DefaultRoles(), user.Roles)
	assert.NotEmpty(t, user.Salt)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "s3cret-pass")
}

func TestCreateUserRejectsEmptyInput(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.CreateUser("", "password", nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = repo.CreateUser("bob", "", nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCreateUserDuplicate(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.CreateUser("carol", "first-pass", nil)
	require.NoError(t, err)

	_, err = repo.CreateUser("carol", "other-pass", nil)
	assert.ErrorIs(t, err, models.ErrDuplicateUser)
}

func TestRoleSetRoundTrip(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.CreateUser("dave", "password", models.RoleSet{"admin", "user", "admin", " user "})
	require.NoError(t, err)

	user, err := repo.GetUser("dave")
	require.NoError(t, err)
	// Stored as a set: deduplicated, trimmed, order-independent.
	assert.ElementsMatch(t, []string{"admin", "user"}, user.Roles)
	assert.True(t, user.Roles.Has(models.RoleAdmin))
	assert.True(t, user.Roles.Has(models.RoleUser))
	assert.False(t, user.Roles.Has("moderator"))
}

func TestGetUserNotFound(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.GetUser("nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestVerifyUser(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.CreateUser("erin", "correct-horse", nil)
	require.NoError(t, err)

	ok, err := repo.VerifyUser("erin", "correct-horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.VerifyUser("erin", "battery-staple")
	require.NoError(t, err)
	assert.False(t, ok)

	// Absent user is a clean false, not an error.
	ok, err = repo.VerifyUser("ghost", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChangePassword(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.CreateUser("frank", "old-password", nil)
	require.NoError(t, err)
	before, err := repo.GetUser("frank")
	require.NoError(t, err)

	require.NoError(t, repo.ChangePassword("frank", "old-password", "new-password"))

	after, err := repo.GetUser("frank")
	require.NoError(t, err)
	assert.NotEqual(t, before.Salt, after.Salt)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	ok, err := repo.VerifyUser("frank", "new-password")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.VerifyUser("frank", "old-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChangePasswordWrongOldLeavesCredentialIntact(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.CreateUser("grace", "real-password", nil)
	require.NoError(t, err)
	before, err := repo.GetUser("grace")
	require.NoError(t, err)

	err = repo.ChangePassword("grace", "wrong-password", "new-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredential)

	after, err := repo.GetUser("grace")
	require.NoError(t, err)
	assert.Equal(t, before.Salt, after.Salt)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestChangePasswordUnknownUser(t *testing.T) {
	repo := newUserRepo(t)

	err := repo.ChangePassword("nobody", "old", "new")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.CreateUser("heidi", "password", nil)
	require.NoError(t, err)

	existed, err := repo.DeleteUser("heidi")
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = repo.GetUser("heidi")
	assert.ErrorIs(t, err, models.ErrNotFound)

	existed, err = repo.DeleteUser("heidi")
	require.NoError(t, err)
	assert.False(t, existed)
}
