package handler

import (
	"net/http"
	"time"

	"taskboard/internal/apperr"
	"taskboard/internal/middleware"
	"taskboard/internal/task/model"
	"taskboard/internal/task/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=100"`
	Description string     `json:"description"`
	ProjectID   string     `json:"project_id" binding:"required,uuid"`
	StatusID    *string    `json:"status_id" binding:"omitempty,uuid"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *string    `json:"assigned_to" binding:"omitempty,uuid"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StatusID    *string    `json:"status_id" binding:"omitempty,uuid"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *string    `json:"assigned_to" binding:"omitempty,uuid"`
}

type UpdateTaskStatusRequest struct {
	StatusID string `json:"status_id" binding:"required,uuid"`
	Position *int   `json:"position"`
}

type TaskStatusInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type AssigneeInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}

type TaskResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ProjectID   string         `json:"project_id"`
	Status      TaskStatusInfo `json:"status"`
	Priority    string         `json:"priority"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	AssignedTo  *AssigneeInfo  `json:"assigned_to,omitempty"`
	Position    int            `json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type TaskStatsResponse struct {
	ProjectID       string `json:"project_id"`
	TotalTasks      int64  `json:"total_tasks"`
	TodoTasks       int64  `json:"todo_tasks"`
	InProgressTasks int64  `json:"in_progress_tasks"`
	DoneTasks       int64  `json:"done_tasks"`
}

func taskResponse(v *service.TaskView) TaskResponse {
	resp := TaskResponse{
		ID:          v.Task.ID.String(),
		Title:       v.Task.Title,
		Description: v.Task.Description,
		ProjectID:   v.Task.ProjectID.String(),
		Status: TaskStatusInfo{
			ID:    v.Task.StatusID.String(),
			Name:  v.StatusName,
			Color: v.StatusColor,
		},
		Priority:  string(v.Task.Priority),
		DueDate:   v.Task.DueDate,
		Position:  v.Task.Position,
		CreatedAt: v.Task.CreatedAt,
		UpdatedAt: v.Task.UpdatedAt,
	}
	if v.Assignee != nil {
		resp.AssignedTo = &AssigneeInfo{
			ID:        v.Assignee.ID.String(),
			Email:     v.Assignee.Email,
			FirstName: v.Assignee.FirstName,
			LastName:  v.Assignee.LastName,
			AvatarURL: v.Assignee.AvatarURL,
		}
	}
	return resp
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   uuid.MustParse(req.ProjectID),
		Priority:    model.ParsePriority(req.Priority),
		DueDate:     req.DueDate,
	}
	if req.StatusID != nil {
		statusID := uuid.MustParse(*req.StatusID)
		input.StatusID = &statusID
	}
	if req.AssignedTo != nil {
		assignedTo := uuid.MustParse(*req.AssignedTo)
		input.AssignedTo = &assignedTo
	}

	view, err := h.tasks.Create(c.Request.Context(), input, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse(view))
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input service.ListTasksInput
	if raw := c.Query("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return
		}
		input.ProjectID = id
	}
	if raw := c.Query("statusId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
			return
		}
		input.StatusID = id
	}
	if raw := c.Query("assignedTo"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}
		input.AssignedTo = id
	}
	input.Search = c.Query("search")

	views, err := h.tasks.List(c.Request.Context(), input, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	response := make([]TaskResponse, len(views))
	for i := range views {
		response[i] = taskResponse(&views[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	view, err := h.tasks.Get(c.Request.Context(), taskID, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(view))
}

func (h *TaskHandler) Update(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.StatusID != nil {
		statusID := uuid.MustParse(*req.StatusID)
		input.StatusID = &statusID
	}
	if req.Priority != nil {
		priority := model.ParsePriority(*req.Priority)
		input.Priority = &priority
	}
	if req.AssignedTo != nil {
		assignedTo := uuid.MustParse(*req.AssignedTo)
		input.AssignedTo = &assignedTo
	}

	view, err := h.tasks.Update(c.Request.Context(), taskID, input, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(view))
}

func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	view, err := h.tasks.UpdateStatus(c.Request.Context(), taskID, uuid.MustParse(req.StatusID), req.Position, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(view))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID, userID, role); err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *TaskHandler) Stats(c *gin.Context) {
	userID, role, ok := middleware.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Query("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	stats, err := h.tasks.Stats(c.Request.Context(), projectID, userID, role)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, TaskStatsResponse{
		ProjectID:       stats.ProjectID.String(),
		TotalTasks:      stats.TotalTasks,
		TodoTasks:       stats.TodoTasks,
		InProgressTasks: stats.InProgressTasks,
		DoneTasks:       stats.DoneTasks,
	})
}
