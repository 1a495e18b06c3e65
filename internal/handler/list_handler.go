package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trailhaven/trails-backend-go/internal/middleware"
	"github.com/trailhaven/trails-backend-go/internal/service"
	"github.com/trailhaven/trails-backend-go/pkg/response"
)

// ListHandler handles wishlist and completed-trail HTTP requests
type ListHandler struct {
	service *service.ListService
}

// NewListHandler creates a new list handler
func NewListHandler(service *service.ListService) *ListHandler {
	return &ListHandler{service: service}
}

func (h *ListHandler) trailID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("trailId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid trail ID", err)
		return 0, false
	}
	return id, true
}

func (h *ListHandler) set(c *gin.Context, table string, value bool) {
	userID := middleware.UserID(c)
	if userID == nil {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}
	trailID, ok := h.trailID(c)
	if !ok {
		return
	}

	var err error
	if table == "wishlist" {
		err = h.service.SetWishlisted(c.Request.Context(), *userID, trailID, value)
	} else {
		err = h.service.SetCompleted(c.Request.Context(), *userID, trailID, value)
	}
	if err != nil {
		response.InternalError(c, "Failed to update "+table, err)
		return
	}

	response.Success(c, gin.H{"trail_id": trailID, table: value})
}

// AddWishlist handles PUT /api/v1/users/me/wishlist/:trailId
func (h *ListHandler) AddWishlist(c *gin.Context) { h.set(c, "wishlist", true) }

// RemoveWishlist handles DELETE /api/v1/users/me/wishlist/:trailId
func (h *ListHandler) RemoveWishlist(c *gin.Context) { h.set(c, "wishlist", false) }

// AddCompleted handles PUT /api/v1/users/me/completed/:trailId
func (h *ListHandler) AddCompleted(c *gin.Context) { h.set(c, "completed", true) }

// RemoveCompleted handles DELETE /api/v1/users/me/completed/:trailId
func (h *ListHandler) RemoveCompleted(c *gin.Context) { h.set(c, "completed", false) }

func (h *ListHandler) list(c *gin.Context, table string) {
	userID := middleware.UserID(c)
	if userID == nil {
		response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	trails, err := h.service.GetList(c.Request.Context(), table, *userID)
	if err != nil {
		response.InternalError(c, "Failed to get "+table, err)
		return
	}

	response.Success(c, trails)
}

// GetWishlist handles GET /api/v1/users/me/wishlist
func (h *ListHandler) GetWishlist(c *gin.Context) { h.list(c, "wishlist") }

// GetCompleted handles GET /api/v1/users/me/completed
func (h *ListHandler) GetCompleted(c *gin.Context) { h.list(c, "completed") }
