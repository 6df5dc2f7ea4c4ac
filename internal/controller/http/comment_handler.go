package http

import (
	"net/http"

	"gatherly/internal/usecase"
	"gatherly/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, log *logger.Logger) *CommentHandler {
	return &CommentHandler{commentUseCase: commentUseCase, logger: log}
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	Rating  int    `json:"rating"`
}

// CreateComment godoc
// @Summary      Comment on an event
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Param        request body CreateCommentRequest true "Comment data"
// @Success      201  {object}  map[string]interface{}
// @Router       /events/{id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.Create(c.Param("id"), c.GetString("user_id"), req.Content, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// ListComments godoc
// @Summary      List comments on an event
// @Tags         comments
// @Produce      json
// @Param        id path string true "Event ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /events/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentUseCase.ListForEvent(c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to list comments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Author or event organizer only
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentUseCase.Delete(c.Param("id"), c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
