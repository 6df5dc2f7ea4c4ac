package http

import (
	"net/http"

	"gatherly/internal/usecase"
	"gatherly/pkg/logger"

	"github.com/gin-gonic/gin"
)

type BlacklistHandler struct {
	blacklistUseCase usecase.BlacklistUseCase
	logger           *logger.Logger
}

func NewBlacklistHandler(blacklistUseCase usecase.BlacklistUseCase, log *logger.Logger) *BlacklistHandler {
	return &BlacklistHandler{blacklistUseCase: blacklistUseCase, logger: log}
}

type BlacklistAddRequest struct {
	Email string `json:"email" binding:"required"`
}

// ListBlacklist godoc
// @Summary      List the caller's blacklist
// @Tags         blacklist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /blacklist [get]
func (h *BlacklistHandler) ListBlacklist(c *gin.Context) {
	entries, err := h.blacklistUseCase.List(c.GetString("user_id"))
	if err != nil {
		h.logger.Error("Failed to list blacklist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list blacklist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blacklist": entries})
}

// AddToBlacklist godoc
// @Summary      Ban a user from the caller's events
// @Tags         blacklist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BlacklistAddRequest true "User email"
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /blacklist [post]
func (h *BlacklistHandler) AddToBlacklist(c *gin.Context) {
	var req BlacklistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.blacklistUseCase.AddByEmail(c.GetString("user_id"), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// RemoveFromBlacklist godoc
// @Summary      Unban a user
// @Tags         blacklist
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "Banned user ID"
// @Success      200  {object}  map[string]string
// @Router       /blacklist/{userId} [delete]
func (h *BlacklistHandler) RemoveFromBlacklist(c *gin.Context) {
	if err := h.blacklistUseCase.Remove(c.GetString("user_id"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User removed from blacklist"})
}
