package handler

import (
	"net/http"

	"taskboard/internal/task/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InternalHandler serves the service-to-service endpoints. They skip the
// project access check: the calling service has already authorized the
// operation, and these routes are never exposed through the gateway.
type InternalHandler struct {
	tasks *service.TaskService
}

func NewInternalHandler(tasks *service.TaskService) *InternalHandler {
	return &InternalHandler{tasks: tasks}
}

type MigrateTasksRequest struct {
	ProjectID    string `json:"project_id" binding:"required,uuid"`
	FromStatusID string `json:"from_status_id" binding:"required,uuid"`
	ToStatusID   string `json:"to_status_id" binding:"required,uuid"`
}

func (h *InternalHandler) Migrate(c *gin.Context) {
	var req MigrateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	moved, err := h.tasks.Migrate(c.Request.Context(),
		uuid.MustParse(req.ProjectID),
		uuid.MustParse(req.FromStatusID),
		uuid.MustParse(req.ToStatusID),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Migration failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"migrated": moved})
}

func (h *InternalHandler) PurgeProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Query("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	deleted, err := h.tasks.PurgeProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Purge failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
