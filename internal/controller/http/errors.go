package http

import (
	"errors"
	"net/http"

	"gatherly/internal/repo/persistent"
	"gatherly/internal/usecase"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP statuses. Anything unrecognized,
// including storage failures, is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, persistent.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, usecase.ErrBlacklisted):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to register for this event"})
	case errors.Is(err, persistent.ErrEventFull):
		c.JSON(http.StatusConflict, gin.H{"error": "Event is full"})
	case errors.Is(err, persistent.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, gin.H{"error": "Already registered"})
	case errors.Is(err, persistent.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"error": "User is already a group member"})
	case errors.Is(err, persistent.ErrAlreadyBlacklisted):
		c.JSON(http.StatusConflict, gin.H{"error": "User is already blacklisted"})
	case errors.Is(err, usecase.ErrEventCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": "Event is cancelled"})
	case persistent.IsStorageError(err):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
