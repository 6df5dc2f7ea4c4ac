package middleware

import (
	"time"

	"gatherly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogEntry is one recorded HTTP request.
type RequestLogEntry struct {
	Method     string
	Path       string
	Status     int
	LatencyMs  int64
	UserAgent  string
	IP         string
	UserID     string
	OccurredAt time.Time
}

// RequestLogRecorder persists request log entries.
type RequestLogRecorder interface {
	RecordRequest(entry RequestLogEntry) error
}

// requestLogBuffer bounds the number of entries waiting on the writer.
const requestLogBuffer = 256

// RequestLogMiddleware records every request to the recorder. Persistence is
// best-effort and off the request path: a single writer goroutine drains a
// bounded queue, and entries are dropped when the writer falls behind.
func RequestLogMiddleware(recorder RequestLogRecorder, log *logger.Logger) gin.HandlerFunc {
	entries := make(chan RequestLogEntry, requestLogBuffer)
	go func() {
		for entry := range entries {
			if err := recorder.RecordRequest(entry); err != nil {
				log.Error("Failed to save HTTP log: %v", err)
			}
		}
	}()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := RequestLogEntry{
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Status:     c.Writer.Status(),
			LatencyMs:  time.Since(start).Milliseconds(),
			UserAgent:  c.Request.UserAgent(),
			IP:         c.ClientIP(),
			UserID:     c.GetString("user_id"),
			OccurredAt: start,
		}

		select {
		case entries <- entry:
		default:
			// Queue full, entry dropped.
		}
	}
}
