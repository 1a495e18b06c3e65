package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trailhaven/trails-backend-go/internal/middleware"
	"github.com/trailhaven/trails-backend-go/internal/models"
	"github.com/trailhaven/trails-backend-go/internal/service"
	"github.com/trailhaven/trails-backend-go/pkg/response"
)

// UserHandler handles HTTP requests for user accounts
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid registration payload", err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "Email already registered", nil)
			return
		}
		response.InternalError(c, "Failed to register user", err)
		return
	}

	c.JSON(http.StatusCreated, response.Response{
		Code:    0,
		Message: "success",
		Data:    user,
	})
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid login payload", err)
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		response.InternalError(c, "Failed to log in", err)
		return
	}

	response.Success(c, gin.H{"token": token, "user": user})
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == nil {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), *userID)
	if err != nil {
		response.InternalError(c, "Failed to get user", err)
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}

	response.Success(c, user)
}
