package http

import (
	"net/http"
	"strconv"

	"gatherly/internal/realtime"
	"gatherly/internal/usecase"
	"gatherly/pkg/jwt"
	"gatherly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	registry            *realtime.Registry
	jwtService          *jwt.Service
	logger              *logger.Logger
}

func NewNotificationHandler(
	notificationUseCase usecase.NotificationUseCase,
	registry *realtime.Registry,
	jwtService *jwt.Service,
	log *logger.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		registry:            registry,
		jwtService:          jwtService,
		logger:              log,
	}
}

// GetNotifications godoc
// @Summary      Get user notifications
// @Description  Get all notifications for the authenticated user, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	notifications, err := h.notificationUseCase.ListForRecipient(userID)
	if err != nil {
		h.logger.Error("Failed to list notifications for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// GetUnreadCount godoc
// @Summary      Get unread notification count
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetString("user_id")

	count, err := h.notificationUseCase.CountUnread(userID)
	if err != nil {
		h.logger.Error("Failed to count unread notifications for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkRead godoc
// @Summary      Mark one notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetString("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	notification, err := h.notificationUseCase.MarkRead(id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

// MarkAllRead godoc
// @Summary      Mark all notifications as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString("user_id")

	updated, err := h.notificationUseCase.MarkAllRead(userID)
	if err != nil {
		h.logger.Error("Failed to mark all notifications read for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// HandleWebSocket upgrades the connection and registers it for live pushes.
// Browsers cannot set headers on websocket requests, so the token rides in
// the query string. Unauthenticated connections are rejected before the
// upgrade.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	if userID == "" {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		claims, err := h.jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		userID = claims.UserID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}

	channel := realtime.NewWebsocketChannel(conn)
	h.registry.Register(userID, channel)
	h.logger.Info("WebSocket connected for user %s", userID)

	defer func() {
		h.registry.Unregister(userID, channel)
		channel.Close()
		h.logger.Info("WebSocket disconnected for user %s", userID)
	}()

	// Clients never send application messages; the read loop exists to
	// notice closes and let gorilla answer pings.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
