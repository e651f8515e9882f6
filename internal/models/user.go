package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role restricts what back-office operations a user may perform.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
)

// User is a back-office account (donors are not users; donor identity lives
// on the Donation itself).
type User struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName            string         `gorm:"column:full_name;not null" json:"full_name"`
	Email               string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Phone               *string        `gorm:"column:phone;uniqueIndex" json:"phone"`
	PasswordHash        string         `gorm:"column:password_hash;not null" json:"-"`
	Role                Role           `gorm:"column:role;type:varchar(10);not null;default:'EDITOR'" json:"role"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	ResetToken          *string        `gorm:"column:reset_token" json:"-"`
	ResetTokenExpiresAt *time.Time     `gorm:"column:reset_token_expires_at" json:"-"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "Users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
