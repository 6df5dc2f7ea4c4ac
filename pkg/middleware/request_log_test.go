package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gatherly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRecorder struct {
	entries chan RequestLogEntry
}

func (r *captureRecorder) RecordRequest(entry RequestLogEntry) error {
	r.entries <- entry
	return nil
}

type stalledRecorder struct {
	release chan struct{}
}

func (r *stalledRecorder) RecordRequest(RequestLogEntry) error {
	<-r.release
	return nil
}

func TestRequestLogMiddleware_RecordsRequest(t *testing.T) {
	recorder := &captureRecorder{entries: make(chan RequestLogEntry, 1)}

	router := setupTestRouter()
	router.Use(RequestLogMiddleware(recorder, logger.New()))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	select {
	case entry := <-recorder.entries:
		assert.Equal(t, "GET", entry.Method)
		assert.Equal(t, "/ping", entry.Path)
		assert.Equal(t, http.StatusNoContent, entry.Status)
		assert.False(t, entry.OccurredAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("entry was never recorded")
	}
}

func TestRequestLogMiddleware_SlowWriterDoesNotBlockRequests(t *testing.T) {
	recorder := &stalledRecorder{release: make(chan struct{})}
	t.Cleanup(func() { close(recorder.release) })

	router := setupTestRouter()
	router.Use(RequestLogMiddleware(recorder, logger.New()))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Far more requests than the queue holds; each must still return.
	for i := 0; i < requestLogBuffer+50; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
}
