package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trailhaven/trails-backend-go/internal/middleware"
	"github.com/trailhaven/trails-backend-go/internal/models"
	"github.com/trailhaven/trails-backend-go/internal/repository"
	"github.com/trailhaven/trails-backend-go/internal/search"
	"github.com/trailhaven/trails-backend-go/internal/service"
	"github.com/trailhaven/trails-backend-go/pkg/response"
)

// TrailHandler handles HTTP requests for trails
type TrailHandler struct {
	service *service.TrailService
}

// NewTrailHandler creates a new trail handler
func NewTrailHandler(service *service.TrailService) *TrailHandler {
	return &TrailHandler{service: service}
}

// Search handles POST /api/v1/trails/search
func (h *TrailHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid search request", err)
		return
	}
	req.UserID = middleware.UserID(c)

	result, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, search.ErrInvalidFilterValue):
			response.BadRequest(c, err.Error(), nil)
		case errors.Is(err, search.ErrInvalidFilterKey):
			response.BadRequest(c, err.Error(), nil)
		default:
			// execution detail already logged at the repository
			response.InternalError(c, "Search failed", nil)
		}
		return
	}

	response.Success(c, result)
}

// GetTrailByID handles GET /api/v1/trails/:id
func (h *TrailHandler) GetTrailByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid trail ID", err)
		return
	}

	trail, err := h.service.GetTrailByID(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Trail not found")
			return
		}
		response.InternalError(c, "Failed to get trail", err)
		return
	}

	response.Success(c, trail)
}

// CreateTrail handles POST /api/v1/trails
func (h *TrailHandler) CreateTrail(c *gin.Context) {
	var trail models.Trail
	if err := c.ShouldBindJSON(&trail); err != nil {
		response.BadRequest(c, "Invalid trail payload", err)
		return
	}
	if trail.Name == "" {
		response.BadRequest(c, "Trail name is required", nil)
		return
	}

	id, err := h.service.CreateTrail(c.Request.Context(), &trail)
	if err != nil {
		response.InternalError(c, "Failed to create trail", err)
		return
	}

	c.JSON(http.StatusCreated, response.Response{
		Code:    0,
		Message: "success",
		Data:    gin.H{"id": id},
	})
}
