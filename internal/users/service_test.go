package users

import (
	"context"
	"testing"

	"espoir-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return &Service{DB: db}
}

func TestCreateUser(t *testing.T) {
	svc := setupUserTest(t)

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		FullName: "Awa Diop",
		Email:    "awa@espoir.org",
		Password: "motdepasse1",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("motdepasse1")))

	_, err = svc.CreateUser(context.Background(), CreateUserInput{
		FullName: "Autre",
		Email:    "awa@espoir.org",
		Password: "motdepasse2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUser_DefaultsToEditor(t *testing.T) {
	svc := setupUserTest(t)

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		FullName: "Moussa Traoré",
		Email:    "moussa@espoir.org",
		Password: "motdepasse1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, user.Role)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := setupUserTest(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Email: "x@y.z", Password: "motdepasse1"})
	assert.ErrorIs(t, err, ErrFullNameRequired)

	_, err = svc.CreateUser(ctx, CreateUserInput{FullName: "X", Password: "motdepasse1"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.CreateUser(ctx, CreateUserInput{FullName: "X", Email: "x@y.z", Password: "court"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.CreateUser(ctx, CreateUserInput{FullName: "X", Email: "x@y.z", Password: "motdepasse1", Role: "VIEWER"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateUser_RoleAndDeactivation(t *testing.T) {
	svc := setupUserTest(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{
		FullName: "Awa Diop",
		Email:    "awa@espoir.org",
		Password: "motdepasse1",
	})
	require.NoError(t, err)

	admin := models.RoleAdmin
	inactive := false
	updated, err := svc.UpdateUser(ctx, user.ID, UpdateUserInput{Role: &admin, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.False(t, updated.IsActive)
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc := setupUserTest(t)
	name := "X"
	_, err := svc.UpdateUser(context.Background(), uuid.New(), UpdateUserInput{FullName: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc := setupUserTest(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{
		FullName: "Awa Diop",
		Email:    "awa@espoir.org",
		Password: "motdepasse1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, user.ID), ErrUserNotFound)
}

func TestListUsers_RoleFilter(t *testing.T) {
	svc := setupUserTest(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{FullName: "A", Email: "a@espoir.org", Password: "motdepasse1", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserInput{FullName: "B", Email: "b@espoir.org", Password: "motdepasse1", Role: models.RoleEditor})
	require.NoError(t, err)

	admin := models.RoleAdmin
	out, total, err := svc.ListUsers(ctx, Filter{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.Equal(t, "a@espoir.org", out[0].Email)
}
