package users

import (
	"espoir-backend/internal/models"
	"espoir-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

type createUserRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

// CreateUser POST /api/v1/users
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.CreateUser(c.Context(), CreateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		switch err {
		case ErrFullNameRequired, ErrEmailRequired, ErrInvalidRole, ErrPasswordTooShort:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrEmailTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			log.Error().Err(err).Msg("create user failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "User created", fiber.Map{"user": user}, nil)
}

// GetUser GET /api/v1/users/:id
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for user id", fiber.StatusBadRequest, nil)
	}
	user, err := h.Service.GetUser(c.Context(), id)
	if err != nil {
		if err == ErrUserNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "User fetched", fiber.Map{"user": user}, nil)
}

type updateUserRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password"`
}

// UpdateUser PUT /api/v1/users/:id
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for user id", fiber.StatusBadRequest, nil)
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := UpdateUserInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		IsActive: req.IsActive,
		Password: req.Password,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.Service.UpdateUser(c.Context(), id, in)
	if err != nil {
		switch err {
		case ErrFullNameRequired, ErrInvalidRole, ErrPasswordTooShort:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrUserNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			log.Error().Err(err).Str("user_id", id.String()).Msg("update user failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "User updated", fiber.Map{"user": user}, nil)
}

// DeleteUser DELETE /api/v1/users/:id
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for user id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.DeleteUser(c.Context(), id); err != nil {
		if err == ErrUserNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "User deleted", nil, nil)
}

// ListUsers GET /api/v1/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	var f Filter
	if v := c.Query("role"); v != "" {
		role := models.Role(v)
		f.Role = &role
	}
	if v := c.Query("active"); v != "" {
		active := v == "true"
		f.IsActive = &active
	}
	f.Page = c.QueryInt("page", 1)
	f.Limit = c.QueryInt("limit", 20)

	out, total, err := h.Service.ListUsers(c.Context(), f)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Users fetched", fiber.Map{"users": out}, response.Pagination{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
	})
}
