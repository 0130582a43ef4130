package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gameshelf-backend/internal/domains/user/model"
	"gameshelf-backend/internal/domains/user/service"
	"gameshelf-backend/internal/shared/response"
	"gameshelf-backend/pkg/logger"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateUser) {
			response.Conflict(c, "Username or email already taken")
			return
		}
		logger.Error("failed to register user", err)
		response.InternalServerError(c, "Failed to register")
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// Login POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid username or password")
			return
		}
		logger.Error("failed to login", err)
		response.InternalServerError(c, "Failed to login")
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Me GET /api/v1/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		response.Unauthorized(c, "Invalid session")
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		logger.Error("failed to get user", err)
		response.InternalServerError(c, "Failed to get user")
		return
	}
	response.Success(c, http.StatusOK, u)
}

// List GET /api/v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		logger.Error("failed to list users", err)
		response.InternalServerError(c, "Failed to list users")
		return
	}
	response.Success(c, http.StatusOK, users)
}

// SetAdmin PATCH /api/v1/admin/users/:id/admin
func (h *UserHandler) SetAdmin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	var req struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.SetAdmin(c.Request.Context(), id, req.IsAdmin); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		logger.Error("failed to update admin flag", err)
		response.InternalServerError(c, "Failed to update user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"is_admin": req.IsAdmin})
}
