package users

import (
	"context"

	"espoir-backend/internal/models"
	"espoir-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type Service struct {
	DB *gorm.DB
}

func validRole(r models.Role) bool {
	return r == models.RoleAdmin || r == models.RoleEditor
}

type CreateUserInput struct {
	FullName string
	Email    string
	Phone    *string
	Password string
	Role     models.Role
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.FullName == "" {
		return nil, ErrFullNameRequired
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrEmailRequired
	}
	if len(in.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if in.Role == "" {
		in.Role = models.RoleEditor
	}
	if !validRole(in.Role) {
		return nil, ErrInvalidRole
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", in.Email).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

type UpdateUserInput struct {
	FullName *string
	Phone    *string
	Role     *models.Role
	IsActive *bool
	Password *string
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*models.User, error) {
	if in.Role != nil && !validRole(*in.Role) {
		return nil, ErrInvalidRole
	}
	if in.Password != nil && len(*in.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.FullName != nil {
		if *in.FullName == "" {
			return nil, ErrFullNameRequired
		}
		updates["full_name"] = *in.FullName
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Role != nil {
		updates["role"] = *in.Role
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

type Filter struct {
	Role     *models.Role
	IsActive *bool
	Page     int
	Limit    int
}

func (f Filter) apply(db *gorm.DB) *gorm.DB {
	if f.Role != nil {
		db = db.Where("role = ?", *f.Role)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	return db
}

func (f Filter) page(db *gorm.DB) *gorm.DB {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return db.Offset((page - 1) * limit).Limit(limit)
}

func (s *Service) ListUsers(ctx context.Context, f Filter) ([]models.User, int64, error) {
	base := f.apply(s.DB.WithContext(ctx).Model(&models.User{}))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.User
	if err := f.page(f.apply(s.DB.WithContext(ctx))).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
