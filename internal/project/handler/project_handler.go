package handler

import (
	"net/http"
	"time"

	"taskboard/internal/apperr"
	"taskboard/internal/middleware"
	"taskboard/internal/project/model"
	"taskboard/internal/project/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type CreateProjectRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Color       string     `json:"color"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateProjectRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Color       *string    `json:"color"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type ProjectResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Color       string     `json:"color"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ProjectStatsResponse struct {
	ProjectID       string `json:"project_id"`
	ProjectTitle    string `json:"project_title"`
	TotalTasks      int    `json:"total_tasks"`
	TodoTasks       int    `json:"todo_tasks"`
	InProgressTasks int    `json:"in_progress_tasks"`
	DoneTasks       int    `json:"done_tasks"`
	TotalMembers    int    `json:"total_members"`
}

func projectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		Color:       p.Color,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		OwnerID:     p.OwnerID.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID, _, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), service.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.ProjectStatus(req.Status),
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}, userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, projectResponse(project))
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projects, err := h.projects.List(c.Request.Context(), userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	response := make([]ProjectResponse, len(projects))
	for i := range projects {
		response[i] = projectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
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

	project, err := h.projects.Get(c.Request.Context(), projectID, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
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

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input := service.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Status != nil {
		status := model.ProjectStatus(*req.Status)
		input.Status = &status
	}

	project, err := h.projects.Update(c.Request.Context(), projectID, input, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
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

	if err := h.projects.Delete(c.Request.Context(), projectID, userID, role); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *ProjectHandler) Stats(c *gin.Context) {
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

	stats, err := h.projects.Stats(c.Request.Context(), projectID, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ProjectStatsResponse{
		ProjectID:       stats.ProjectID.String(),
		ProjectTitle:    stats.ProjectTitle,
		TotalTasks:      stats.TotalTasks,
		TodoTasks:       stats.TodoTasks,
		InProgressTasks: stats.InProgressTasks,
		DoneTasks:       stats.DoneTasks,
		TotalMembers:    stats.TotalMembers,
	})
}
