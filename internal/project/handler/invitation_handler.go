package handler

import (
	"net/http"

	"taskboard/internal/apperr"
	"taskboard/internal/middleware"
	"taskboard/internal/project/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvitationHandler struct {
	invitations *service.InvitationService
}

func NewInvitationHandler(invitations *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

type InviteRequest struct {
	Email string `json:"email" binding:"required"`
}

type InviteResponse struct {
	Email      string `json:"email"`
	UserExists bool   `json:"user_exists"`
	Message    string `json:"message"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}

type InvitationInfoResponse struct {
	Email       string `json:"email"`
	ProjectName string `json:"project_name"`
	InvitedBy   string `json:"invited_by"`
	Expired     bool   `json:"expired"`
	Valid       bool   `json:"valid"`
}

func (h *InvitationHandler) Invite(c *gin.Context) {
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

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.invitations.Invite(c.Request.Context(), projectID, req.Email, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, InviteResponse{
		Email:      result.Email,
		UserExists: result.UserExisted,
		Message:    result.Message,
	})
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	userID, _, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.invitations.Accept(c.Request.Context(), req.Token, userID); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation accepted"})
}

// Info is public: anyone holding the token link may inspect the invitation
// before signing up.
func (h *InvitationHandler) Info(c *gin.Context) {
	token := c.Param("token")

	info, err := h.invitations.Info(c.Request.Context(), token)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, InvitationInfoResponse{
		Email:       info.Email,
		ProjectName: info.ProjectName,
		InvitedBy:   info.InvitedBy,
		Expired:     info.Expired,
		Valid:       info.Valid,
	})
}
