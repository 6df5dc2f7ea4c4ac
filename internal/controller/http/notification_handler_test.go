package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gatherly/internal/entity"
	"gatherly/internal/repo/persistent"
	"gatherly/internal/usecase"
	"gatherly/pkg/jwt"
	"gatherly/pkg/logger"
	"gatherly/pkg/queue"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubNotificationUseCase struct {
	notifications []entity.Notification
	unread        int64
	markReadErr   error
	markedAll     int64
}

func (s *stubNotificationUseCase) Notify(n *entity.Notification) (*entity.Notification, error) {
	return n, nil
}

func (s *stubNotificationUseCase) ListForRecipient(recipientID string) ([]entity.Notification, error) {
	return s.notifications, nil
}

func (s *stubNotificationUseCase) MarkRead(id int64, recipientID string) (*entity.Notification, error) {
	if s.markReadErr != nil {
		return nil, s.markReadErr
	}
	return &entity.Notification{ID: id, RecipientID: recipientID, Read: true}, nil
}

func (s *stubNotificationUseCase) MarkAllRead(recipientID string) (int64, error) {
	return s.markedAll, nil
}

func (s *stubNotificationUseCase) CountUnread(recipientID string) (int64, error) {
	return s.unread, nil
}

func (s *stubNotificationUseCase) HandleFanoutTask(task queue.FanoutTask) error { return nil }

func setupNotificationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestGetNotifications_Success(t *testing.T) {
	stub := &stubNotificationUseCase{
		notifications: []entity.Notification{
			{ID: 2, RecipientID: "user-1", Kind: entity.KindEventUpdate, Title: "Event updated"},
			{ID: 1, RecipientID: "user-1", Kind: entity.KindGroupAdded, Title: "Added to a group"},
		},
	}
	handler := NewNotificationHandler(stub, nil, nil, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications", withUser("user-1"), handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["count"])
}

func TestGetUnreadCount_Success(t *testing.T) {
	stub := &stubNotificationUseCase{unread: 5}
	handler := NewNotificationHandler(stub, nil, nil, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications/unread-count", withUser("user-1"), handler.GetUnreadCount)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications/unread-count", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(5), response["unread"])
}

func TestMarkRead_InvalidID(t *testing.T) {
	handler := NewNotificationHandler(&stubNotificationUseCase{}, nil, nil, logger.New())

	router := setupNotificationTestRouter()
	router.PATCH("/notifications/:id/read", withUser("user-1"), handler.MarkRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/notifications/not-a-number/read", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkRead_NotFound(t *testing.T) {
	stub := &stubNotificationUseCase{markReadErr: persistent.ErrNotFound}
	handler := NewNotificationHandler(stub, nil, nil, logger.New())

	router := setupNotificationTestRouter()
	router.PATCH("/notifications/:id/read", withUser("user-1"), handler.MarkRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/notifications/42/read", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkRead_Success(t *testing.T) {
	handler := NewNotificationHandler(&stubNotificationUseCase{}, nil, nil, logger.New())

	router := setupNotificationTestRouter()
	router.PATCH("/notifications/:id/read", withUser("user-1"), handler.MarkRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/notifications/42/read", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"read":true`)
}

func TestMarkAllRead_Success(t *testing.T) {
	stub := &stubNotificationUseCase{markedAll: 3}
	handler := NewNotificationHandler(stub, nil, nil, logger.New())

	router := setupNotificationTestRouter()
	router.POST("/notifications/read-all", withUser("user-1"), handler.MarkAllRead)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notifications/read-all", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(3), response["updated"])
}

func TestHandleWebSocket_Unauthenticated(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	handler := NewNotificationHandler(&stubNotificationUseCase{}, nil, jwtService, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications/ws", handler.HandleWebSocket)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications/ws", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleWebSocket_InvalidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	handler := NewNotificationHandler(&stubNotificationUseCase{}, nil, jwtService, logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications/ws", handler.HandleWebSocket)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications/ws?token=garbage", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

var _ usecase.NotificationUseCase = (*stubNotificationUseCase)(nil)
