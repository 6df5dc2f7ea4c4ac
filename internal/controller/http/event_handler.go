package http

import (
	"net/http"
	"strconv"
	"time"

	"gatherly/internal/entity"
	"gatherly/internal/usecase"
	"gatherly/pkg/logger"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventUseCase usecase.EventUseCase
	logger       *logger.Logger
}

func NewEventHandler(eventUseCase usecase.EventUseCase, log *logger.Logger) *EventHandler {
	return &EventHandler{eventUseCase: eventUseCase, logger: log}
}

type CreateEventRequest struct {
	Title                string           `json:"title" binding:"required"`
	Description          string           `json:"description" binding:"required"`
	DateTime             time.Time        `json:"date_time" binding:"required"`
	Categories           []string         `json:"categories"`
	Location             *entity.Location `json:"location"`
	IsLocal              bool             `json:"is_local"`
	IsFree               bool             `json:"is_free"`
	GroupID              string           `json:"group_id"`
	MaxParticipantsCount int              `json:"max_participants_count"`
	Price                int              `json:"price"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DateTime    *time.Time `json:"date_time"`
}

// CreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateEventRequest true "Event data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventUseCase.Create(&entity.Event{
		Title:                req.Title,
		Description:          req.Description,
		DateTime:             req.DateTime,
		OrganizerID:          c.GetString("user_id"),
		Categories:           req.Categories,
		Location:             req.Location,
		IsLocal:              req.IsLocal,
		IsFree:               req.IsFree,
		GroupID:              req.GroupID,
		MaxParticipantsCount: req.MaxParticipantsCount,
		Price:                req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventUseCase.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

// ListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        status query string false "Filter by status"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	limit, offset := pagination(c)

	events, total, err := h.eventUseCase.List(c.Query("status"), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "total": total, "offset": offset})
}

// UpdateEvent godoc
// @Summary      Update an event
// @Description  Organizer or event admin only. Registered participants are notified.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Param        request body UpdateEventRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /events/{id} [patch]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.DateTime != nil {
		fields["date_time"] = *req.DateTime
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	event, err := h.eventUseCase.Update(c.Param("id"), c.GetString("user_id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// UploadEventImage godoc
// @Summary      Upload an event image
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Param        image formData file true "Image file"
// @Success      200  {object}  map[string]interface{}
// @Router       /events/{id}/image [post]
func (h *EventHandler) UploadEventImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	event, err := h.eventUseCase.UploadImage(
		c.Param("id"),
		c.GetString("user_id"),
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Description  Organizer only. Registered participants are notified.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventUseCase.Delete(c.Param("id"), c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// Register godoc
// @Summary      Register for an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /events/{id}/register [post]
func (h *EventHandler) Register(c *gin.Context) {
	registration, err := h.eventUseCase.Register(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"registration": registration})
}

// CancelRegistration godoc
// @Summary      Cancel an event registration
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      200  {object}  map[string]string
// @Router       /events/{id}/register [delete]
func (h *EventHandler) CancelRegistration(c *gin.Context) {
	if err := h.eventUseCase.CancelRegistration(c.Param("id"), c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration cancelled"})
}

// ListParticipants godoc
// @Summary      List event participants
// @Description  Organizer or event admin only
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /events/{id}/participants [get]
func (h *EventHandler) ListParticipants(c *gin.Context) {
	participants, err := h.eventUseCase.ListParticipants(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": participants, "count": len(participants)})
}

type AssignAdminRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// AssignAdmin godoc
// @Summary      Make a user an event admin
// @Description  Organizer only. The user is notified.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Param        request body AssignAdminRequest true "User to promote"
// @Success      200  {object}  map[string]string
// @Router       /events/{id}/admins [post]
func (h *EventHandler) AssignAdmin(c *gin.Context) {
	var req AssignAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.eventUseCase.AssignAdmin(c.Param("id"), c.GetString("user_id"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event admin assigned"})
}

// RemoveAdmin godoc
// @Summary      Revoke event admin rights
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Param        userId path string true "User ID"
// @Success      200  {object}  map[string]string
// @Router       /events/{id}/admins/{userId} [delete]
func (h *EventHandler) RemoveAdmin(c *gin.Context) {
	if err := h.eventUseCase.RemoveAdmin(c.Param("id"), c.GetString("user_id"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event admin removed"})
}

// ListMyEvents godoc
// @Summary      List the caller's events
// @Description  Events the caller organizes, administers and is registered for
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /events/my [get]
func (h *EventHandler) ListMyEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	organized, err := h.eventUseCase.ListOrganizedBy(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	administered, err := h.eventUseCase.ListAdministeredBy(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	registered, err := h.eventUseCase.ListRegisteredBy(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"organized":    organized,
		"administered": administered,
		"registered":   registered,
	})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	offset = 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
