package http

import (
	"net/http"

	"gatherly/internal/usecase"
	"gatherly/pkg/logger"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupUseCase usecase.GroupUseCase
	logger       *logger.Logger
}

func NewGroupHandler(groupUseCase usecase.GroupUseCase, log *logger.Logger) *GroupHandler {
	return &GroupHandler{groupUseCase: groupUseCase, logger: log}
}

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type RenameGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required"`
}

// CreateGroup godoc
// @Summary      Create a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateGroupRequest true "Group data"
// @Success      201  {object}  map[string]interface{}
// @Router       /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groupUseCase.Create(req.Name, c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// GetGroup godoc
// @Summary      Get a group
// @Description  Members only
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, err := h.groupUseCase.GetByID(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// ListMyGroups godoc
// @Summary      List groups the caller belongs to
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /groups [get]
func (h *GroupHandler) ListMyGroups(c *gin.Context) {
	groups, err := h.groupUseCase.ListForUser(c.GetString("user_id"))
	if err != nil {
		h.logger.Error("Failed to list groups: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// RenameGroup godoc
// @Summary      Rename a group
// @Description  Owner only
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Param        request body RenameGroupRequest true "New name"
// @Success      200  {object}  map[string]interface{}
// @Router       /groups/{id} [patch]
func (h *GroupHandler) RenameGroup(c *gin.Context) {
	var req RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groupUseCase.Rename(c.Param("id"), c.GetString("user_id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// DeleteGroup godoc
// @Summary      Delete a group
// @Description  Owner only
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Success      200  {object}  map[string]string
// @Router       /groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	if err := h.groupUseCase.Delete(c.Param("id"), c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group deleted"})
}

// AddMember godoc
// @Summary      Add a member by email
// @Description  Owner only. The user is notified.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Param        request body AddMemberRequest true "Member email"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /groups/{id}/members [post]
func (h *GroupHandler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groupUseCase.AddMemberByEmail(c.Param("id"), c.GetString("user_id"), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// RemoveMember godoc
// @Summary      Remove a member
// @Description  Owner only
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Param        userId path string true "User ID"
// @Success      200  {object}  map[string]string
// @Router       /groups/{id}/members/{userId} [delete]
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	if err := h.groupUseCase.RemoveMember(c.Param("id"), c.GetString("user_id"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// LeaveGroup godoc
// @Summary      Leave a group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Group ID"
// @Success      200  {object}  map[string]string
// @Router       /groups/{id}/leave [post]
func (h *GroupHandler) LeaveGroup(c *gin.Context) {
	if err := h.groupUseCase.Leave(c.Param("id"), c.GetString("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left the group"})
}
