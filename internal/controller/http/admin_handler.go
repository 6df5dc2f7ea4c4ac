package http

import (
	"net/http"
	"strconv"

	"gatherly/internal/usecase"
	"gatherly/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
	logger       *logger.Logger
}

func NewAdminHandler(adminUseCase usecase.AdminUseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase, logger: log}
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)

	users, total, err := h.adminUseCase.ListUsers(limit, offset)
	if err != nil {
		h.logger.Error("Failed to list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total, "offset": offset})
}

// BlockUser godoc
// @Summary      Block a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id}/block [post]
func (h *AdminHandler) BlockUser(c *gin.Context) {
	if err := h.adminUseCase.BlockUser(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

// ListEvents godoc
// @Summary      List events for moderation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/events [get]
func (h *AdminHandler) ListEvents(c *gin.Context) {
	limit, offset := pagination(c)

	events, total, err := h.adminUseCase.ListEvents(c.Query("status"), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": total, "offset": offset})
}

// CancelEvent godoc
// @Summary      Cancel an event
// @Description  Marks the event cancelled and notifies registered participants
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/events/{id}/cancel [post]
func (h *AdminHandler) CancelEvent(c *gin.Context) {
	if err := h.adminUseCase.CancelEvent(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event cancelled"})
}

// ListComments godoc
// @Summary      List comments for moderation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        eventId query string false "Filter by event"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/comments [get]
func (h *AdminHandler) ListComments(c *gin.Context) {
	limit, offset := pagination(c)

	comments, total, err := h.adminUseCase.ListComments(c.Query("eventId"), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list comments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "total": total, "offset": offset})
}

// DeleteComment godoc
// @Summary      Delete any comment
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/comments/{id} [delete]
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	if err := h.adminUseCase.DeleteComment(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// ListRequestLogs godoc
// @Summary      List HTTP request logs
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        method query string false "Filter by HTTP method"
// @Param        status query int false "Filter by response status"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/logs [get]
func (h *AdminHandler) ListRequestLogs(c *gin.Context) {
	limit, offset := pagination(c)

	status := 0
	if statusStr := c.Query("status"); statusStr != "" {
		if parsed, err := strconv.Atoi(statusStr); err == nil && parsed > 0 {
			status = parsed
		}
	}

	logs, total, err := h.adminUseCase.ListRequestLogs(c.Query("method"), status, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list request logs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list request logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": total, "offset": offset})
}
