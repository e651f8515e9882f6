package auth

import (
	"context"

	"espoir-backend/internal/middleware"
	"espoir-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const userSessionsPrefix = "user_sessions:"

type Handlers struct {
	Service *Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, ErrEmailPasswordRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrInvalidEmail, ErrIncorrectPassword, ErrAccountDisabled:
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			log.Error().Err(err).Msg("login failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.ID.String(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     string(user.Role),
	})

	if err := h.Rdb.SAdd(context.Background(), userSessionsPrefix+user.ID.String(), sessionID).Err(); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"user_id":   user.ID.String(),
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
	}, nil)
}

// Me GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	sessionUser := middleware.GetUser(c)
	ctx := context.Background()

	if sessionUser != nil && sessionID != "" {
		if m, ok := sessionUser.(map[string]interface{}); ok {
			if userID, _ := m["user_id"].(string); userID != "" {
				_ = h.Rdb.SRem(ctx, userSessionsPrefix+userID, sessionID).Err()
			}
		}
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword POST /api/v1/auth/forgot-password — always answers with the
// same message so the endpoint cannot confirm whether an email is registered.
func (h *Handlers) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	token, err := h.Service.ForgotPassword(c.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("forgot password failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	if token != "" {
		// TODO: hand the token to a mailer once the transactional email
		// provider is picked; for now operators read it from the logs.
		log.Info().Str("email", req.Email).Str("reset_token", token).Msg("password reset token issued")
	}
	return response.Success(c, "If an account exists for this email, a reset link has been sent", nil, nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword POST /api/v1/auth/reset-password
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		switch err {
		case ErrPasswordTooShort:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrInvalidResetToken:
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			log.Error().Err(err).Msg("reset password failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Password has been reset", nil, nil)
}
