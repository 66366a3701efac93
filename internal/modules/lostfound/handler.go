package lostfound

import (
	"errors"
	"net/http"
	"strconv"

	"campusgate/internal/modules/auth"
	"campusgate/internal/pkg/response"
	"campusgate/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages the lost-and-found HTTP surface. Writes require a login;
// the list is public.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	group := v1.Group("/lostfound")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

// RegisterAdminRoutes registers the moderation surface; the caller wraps
// the group with the admin allow-list gate.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.DELETE("/lostfound/:id", h.AdminDelete)
}

func (h *Handler) List(c *gin.Context) {
	itemType := c.Query("type")
	if itemType != "" && itemType != "lost" && itemType != "found" {
		response.Error(c, http.StatusBadRequest, "INVALID_TYPE", "type must be lost or found")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, err := h.service.List(c.Request.Context(), itemType, page, pageSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "failed to list items")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Create(c *gin.Context) {
	session, err := auth.IdentityFrom(c).Require()
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", fields)
		return
	}

	item, err := h.service.Create(c.Request.Context(), session, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "failed to create item")
		return
	}
	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) Update(c *gin.Context) {
	session, err := auth.IdentityFrom(c).Require()
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid item id")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", fields)
		return
	}

	item, err := h.service.Update(c.Request.Context(), session, id, req)
	if err != nil {
		h.writeItemError(c, err, "UPDATE_FAILED", "failed to update item")
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) Delete(c *gin.Context) {
	h.delete(c, false)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	h.delete(c, true)
}

func (h *Handler) delete(c *gin.Context, asAdmin bool) {
	session, err := auth.IdentityFrom(c).Require()
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid item id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), session, id, asAdmin); err != nil {
		h.writeItemError(c, err, "DELETE_FAILED", "failed to delete item")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) writeItemError(c *gin.Context, err error, code, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "item not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "you don't own this item")
	default:
		response.Error(c, http.StatusInternalServerError, code, message)
	}
}
