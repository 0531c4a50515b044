package handler

import (
	"net/http"
	"time"

	"taskboard/internal/apperr"
	"taskboard/internal/middleware"
	"taskboard/internal/project/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MemberHandler struct {
	projects *service.ProjectService
}

func NewMemberHandler(projects *service.ProjectService) *MemberHandler {
	return &MemberHandler{projects: projects}
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type MemberResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

func memberResponse(m *service.MemberInfo) MemberResponse {
	return MemberResponse{
		ID:        m.ID.String(),
		UserID:    m.UserID.String(),
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		AvatarURL: m.AvatarURL,
		JoinedAt:  m.JoinedAt,
	}
}

func (h *MemberHandler) List(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	members, err := h.projects.ListMembers(c.Request.Context(), projectID, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	response := make([]MemberResponse, len(members))
	for i := range members {
		response[i] = memberResponse(&members[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Add(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	newUserID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	member, err := h.projects.AddMember(c.Request.Context(), projectID, newUserID, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, memberResponse(member))
}

func (h *MemberHandler) Remove(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	memberUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.projects.RemoveMember(c.Request.Context(), projectID, memberUserID, userID, role); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
