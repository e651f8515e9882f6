package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"espoir-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 8
	resetTokenTTL     = time.Hour
)

type Service struct {
	DB *gorm.DB
}

// Login verifies email and password and returns the account for the session.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}
	return &u, nil
}

// ForgotPassword issues a reset token for the account behind email. The token
// (or empty string when the email is unknown) is returned to the caller for
// delivery; the HTTP layer answers identically either way so the endpoint
// cannot be used to probe which emails have accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", nil
	}
	var u models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	expires := time.Now().Add(resetTokenTTL)

	if err := s.DB.WithContext(ctx).Model(&u).Updates(map[string]interface{}{
		"reset_token":            token,
		"reset_token_expires_at": expires,
	}).Error; err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var u models.User
	if err := s.DB.WithContext(ctx).Where("reset_token = ?", token).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrInvalidResetToken
		}
		return err
	}
	if u.ResetTokenExpiresAt == nil || time.Now().After(*u.ResetTokenExpiresAt) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(&u).Updates(map[string]interface{}{
		"password_hash":          string(hash),
		"reset_token":            nil,
		"reset_token_expires_at": nil,
	}).Error
}

// SessionShape is the user object stored in the session and returned by /me.
type SessionShape struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// VerifyUser validates the session payload and returns the shape for /me.
func VerifyUser(sessionUser interface{}) (*SessionShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return &SessionShape{
		UserID:   userID,
		FullName: str(m["full_name"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
	}, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
