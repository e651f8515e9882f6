package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"espoir-backend/internal/middleware"
	"espoir-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthHandlers(t *testing.T) (*Handlers, *gorm.DB, *redis.Client) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	h := &Handlers{
		Service: &Service{DB: db},
		Rdb:     rdb,
		Config:  middleware.SessionConfig{},
	}
	return h, db, rdb
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		FullName:     "Awa Diop",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestLogin_Success(t *testing.T) {
	h, db, rdb := setupAuthHandlers(t)
	seedUser(t, db, "awa@espoir.org", "motdepasse1")

	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "awa@espoir.org", "password": "motdepasse1"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "success", out["status"])
	data, _ := out["data"].(map[string]interface{})
	user, _ := data["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "awa@espoir.org", user["email"])
	assert.Equal(t, "ADMIN", user["role"])

	cookies := resp.Header.Values("Set-Cookie")
	require.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], "espoir.sid=")

	keys, err := rdb.Keys(context.Background(), "user_sessions:*").Result()
	require.NoError(t, err)
	assert.NotEmpty(t, keys)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, db, _ := setupAuthHandlers(t)
	seedUser(t, db, "awa@espoir.org", "motdepasse1")

	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "awa@espoir.org", "password": "mauvais"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "inconnu@espoir.org", "password": "x"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_DisabledAccount(t *testing.T) {
	h, db, _ := setupAuthHandlers(t)
	u := seedUser(t, db, "awa@espoir.org", "motdepasse1")
	require.NoError(t, db.Model(u).Update("is_active", false).Error)

	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "awa@espoir.org", "password": "motdepasse1"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMe_NoSession(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Get("/me", h.Me)

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMe_WithSessionUserInLocals(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Get("/me", func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":   "550e8400-e29b-41d4-a716-446655440000",
			"full_name": "Awa Diop",
			"email":     "awa@espoir.org",
			"role":      "EDITOR",
		})
		return h.Me(c)
	})

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	data, _ := out["data"].(map[string]interface{})
	user, _ := data["user"].(map[string]interface{})
	assert.Equal(t, "awa@espoir.org", user["email"])
}

func TestLogout_NoSession(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Delete("/logout", h.Logout)

	req := httptest.NewRequest("DELETE", "/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Values("Set-Cookie"))
}

func TestForgotPassword_SameResponseEitherWay(t *testing.T) {
	h, db, _ := setupAuthHandlers(t)
	seedUser(t, db, "awa@espoir.org", "motdepasse1")

	app := fiber.New()
	app.Post("/forgot-password", h.ForgotPassword)

	readBody := func(email string) (int, string) {
		body, _ := json.Marshal(map[string]string{"email": email})
		req := httptest.NewRequest("POST", "/forgot-password", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(b)
	}

	knownStatus, knownBody := readBody("awa@espoir.org")
	unknownStatus, unknownBody := readBody("inconnu@espoir.org")
	assert.Equal(t, fiber.StatusOK, knownStatus)
	assert.Equal(t, knownStatus, unknownStatus)
	assert.Equal(t, knownBody, unknownBody)

	// Only the known account got a token stored.
	var u models.User
	require.NoError(t, db.Where("email = ?", "awa@espoir.org").First(&u).Error)
	assert.NotNil(t, u.ResetToken)
	assert.NotNil(t, u.ResetTokenExpiresAt)
}

func TestResetPassword_Flow(t *testing.T) {
	h, db, _ := setupAuthHandlers(t)
	seedUser(t, db, "awa@espoir.org", "ancien-mdp")
	ctx := context.Background()

	token, err := h.Service.ForgotPassword(ctx, "awa@espoir.org")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, h.Service.ResetPassword(ctx, token, "nouveau-mdp"))

	_, err = h.Service.Login(ctx, "awa@espoir.org", "ancien-mdp")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
	_, err = h.Service.Login(ctx, "awa@espoir.org", "nouveau-mdp")
	assert.NoError(t, err)

	// Token is single use.
	err = h.Service.ResetPassword(ctx, token, "encore-un-autre")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPassword_Validation(t *testing.T) {
	h, _, _ := setupAuthHandlers(t)
	ctx := context.Background()

	assert.ErrorIs(t, h.Service.ResetPassword(ctx, "", "assez-long"), ErrInvalidResetToken)
	assert.ErrorIs(t, h.Service.ResetPassword(ctx, "jeton", "court"), ErrPasswordTooShort)
	assert.ErrorIs(t, h.Service.ResetPassword(ctx, "jeton-inconnu", "assez-long"), ErrInvalidResetToken)
}
