package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/a7delivery/backend/internal/application/identity"
	"github.com/a7delivery/backend/internal/interfaces/http/middleware"
)

// UserHandler handles account administration endpoints. All routes are
// admin-only; admin accounts themselves cannot be managed through them.
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new user administration handler
func NewUserHandler(userService *identityapp.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List returns all non-admin accounts, newest first
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	infos, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	users := make([]UserResponse, 0, len(infos))
	for _, info := range infos {
		users = append(users, UserResponseFromInfo(info))
	}
	h.Success(c, users)
}

// Create creates a new dashboard account
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	info, err := h.userService.CreateUser(c.Request.Context(), identityapp.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, UserResponseFromInfo(*info))
}

// Update applies a partial update to an account
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	info, err := h.userService.UpdateUser(c.Request.Context(), identityapp.UpdateUserInput{
		UserID:      c.Param("id"),
		Password:    req.Password,
		IsActive:    req.IsActive,
		ExpiresAt:   req.ExpiresAt,
		ClearExpiry: req.ClearExpiry,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, UserResponseFromInfo(*info))
}

// Toggle flips the active flag of an account
// PATCH /api/v1/users/:id/toggle
func (h *UserHandler) Toggle(c *gin.Context) {
	result, err := h.userService.ToggleUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToggleUserResponse{
		ID:       result.UserID.String(),
		IsActive: result.IsActive,
	})
}

// Delete removes an account
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
