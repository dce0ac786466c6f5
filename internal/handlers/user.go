package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/task-tracker-api/internal/dto"
	apierrors "github.com/taskhub/task-tracker-api/internal/errors"
	"github.com/taskhub/task-tracker-api/internal/repository"
	"github.com/taskhub/task-tracker-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// parseIDParam reads a numeric path parameter; responds 400 and returns
// false on garbage.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required,min=3,max=100"`
		FullName string `json:"full_name"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.Conflict(c, "Username already taken")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// GetUser returns a user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update to a user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Email    *string `json:"email" binding:"omitempty,email"`
		Username *string `json:"username" binding:"omitempty,min=3,max=100"`
		FullName *string `json:"full_name"`
		IsActive *bool   `json:"is_active"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, repository.UserPatch{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		IsActive: req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, "User not found")
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.Conflict(c, "Email already registered")
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.Conflict(c, "Username already taken")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes a user and all their tasks
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.userService.DeleteUser(id)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	if !deleted {
		apierrors.NotFound(c, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
