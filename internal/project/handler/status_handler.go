package handler

import (
	"net/http"

	"taskboard/internal/apperr"
	"taskboard/internal/middleware"
	"taskboard/internal/project/model"
	"taskboard/internal/project/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatusHandler struct {
	statuses *service.StatusService
}

func NewStatusHandler(statuses *service.StatusService) *StatusHandler {
	return &StatusHandler{statuses: statuses}
}

type CreateStatusRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Color    string `json:"color" binding:"required"`
	Position *int   `json:"position"`
}

type UpdateStatusRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type ReorderStatusesRequest struct {
	StatusIDs []string `json:"status_ids" binding:"required"`
}

type StatusResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Position  int    `json:"position"`
	IsDefault bool   `json:"is_default"`
}

func statusResponse(s *model.TaskStatus) StatusResponse {
	return StatusResponse{
		ID:        s.ID.String(),
		ProjectID: s.ProjectID.String(),
		Name:      s.Name,
		Color:     s.Color,
		Position:  s.Position,
		IsDefault: s.IsDefault,
	}
}

func (h *StatusHandler) List(c *gin.Context) {
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

	statuses, err := h.statuses.List(c.Request.Context(), projectID, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	response := make([]StatusResponse, len(statuses))
	for i := range statuses {
		response[i] = statusResponse(&statuses[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *StatusHandler) GetByID(c *gin.Context) {
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
	statusID, err := uuid.Parse(c.Param("statusId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	status, err := h.statuses.Get(c.Request.Context(), projectID, statusID, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse(status))
}

func (h *StatusHandler) Create(c *gin.Context) {
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

	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status, err := h.statuses.Create(c.Request.Context(), projectID, service.CreateStatusInput{
		Name:     req.Name,
		Color:    req.Color,
		Position: req.Position,
	}, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, statusResponse(status))
}

func (h *StatusHandler) Update(c *gin.Context) {
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
	statusID, err := uuid.Parse(c.Param("statusId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status, err := h.statuses.Update(c.Request.Context(), projectID, statusID, service.UpdateStatusInput{
		Name:  req.Name,
		Color: req.Color,
	}, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, statusResponse(status))
}

func (h *StatusHandler) Reorder(c *gin.Context) {
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

	var req ReorderStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	statusIDs := make([]uuid.UUID, len(req.StatusIDs))
	for i, raw := range req.StatusIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
			return
		}
		statusIDs[i] = id
	}

	statuses, err := h.statuses.Reorder(c.Request.Context(), projectID, statusIDs, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	response := make([]StatusResponse, len(statuses))
	for i := range statuses {
		response[i] = statusResponse(&statuses[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *StatusHandler) Delete(c *gin.Context) {
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
	statusID, err := uuid.Parse(c.Param("statusId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	moveTo := c.Query("moveTo")
	if moveTo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "moveTo query parameter is required"})
		return
	}
	moveToStatusID, err := uuid.Parse(moveTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid moveTo status ID format"})
		return
	}

	if err := h.statuses.Delete(c.Request.Context(), projectID, statusID, moveToStatusID, userID, role); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status deleted successfully"})
}
