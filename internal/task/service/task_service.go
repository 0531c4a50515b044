package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"taskboard/internal/access"
	"taskboard/internal/apperr"
	"taskboard/internal/identity"
	"taskboard/internal/task/client"
	"taskboard/internal/task/model"
	"taskboard/internal/task/repository"

	"github.com/google/uuid"
)

// Placeholder shown when the column's display details cannot be fetched.
// Enrichment is best-effort; the task itself is always returned.
const (
	unknownStatusName  = "Unknown"
	unknownStatusColor = "#9e9e9e"
)

type TaskService struct {
	tasks    TaskStore
	projects client.ProjectClient
	users    identity.Client
}

func NewTaskService(tasks TaskStore, projects client.ProjectClient, users identity.Client) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   uuid.UUID
	StatusID    *uuid.UUID
	Priority    model.Priority
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	StatusID    *uuid.UUID
	Priority    *model.Priority
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
}

type ListTasksInput struct {
	ProjectID  uuid.UUID
	StatusID   uuid.UUID
	AssignedTo uuid.UUID
	Search     string
}

// TaskView is a task with its best-effort display enrichment attached.
type TaskView struct {
	Task        model.Task
	StatusName  string
	StatusColor string
	Assignee    *identity.User
}

type TaskStats struct {
	ProjectID       uuid.UUID
	TotalTasks      int64
	TodoTasks       int64
	InProgressTasks int64
	DoneTasks       int64
}

// Create verifies project access and the status reference over RPC before
// any write. With no explicit status the task lands in the project's
// lowest-position column; a project with zero columns rejects the create.
// Position is max+1 in the chosen column, computed as a read-then-write
// without a lock.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput, userID uuid.UUID, role access.Role) (*TaskView, error) {
	if _, err := s.projectAccess(ctx, input.ProjectID, userID, role); err != nil {
		return nil, err
	}

	var status *client.Status
	if input.StatusID == nil {
		statuses, err := s.listStatuses(ctx, input.ProjectID, userID, role)
		if err != nil {
			return nil, err
		}
		if len(statuses) == 0 {
			return nil, apperr.BadRequest("create columns first")
		}
		status = &statuses[0]
	} else {
		var err error
		status, err = s.validateStatus(ctx, input.ProjectID, *input.StatusID, userID, role)
		if err != nil {
			return nil, err
		}
	}

	assignee, err := s.verifyAssignee(ctx, input.AssignedTo)
	if err != nil {
		return nil, err
	}

	maxPos, err := s.tasks.MaxPositionInStatus(ctx, status.ID)
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		ProjectID:   input.ProjectID,
		StatusID:    status.ID,
		Priority:    priority,
		DueDate:     input.DueDate,
		AssignedTo:  input.AssignedTo,
		Position:    maxPos + 1,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	return &TaskView{
		Task:        *task,
		StatusName:  status.Name,
		StatusColor: status.Color,
		Assignee:    assignee,
	}, nil
}

func (s *TaskService) Get(ctx context.Context, taskID, userID uuid.UUID, role access.Role) (*TaskView, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectAccess(ctx, task.ProjectID, userID, role); err != nil {
		return nil, err
	}

	views := s.enrich(ctx, []model.Task{*task}, userID, role)
	return &views[0], nil
}

// List returns tasks matching the filter. A project-scoped list checks
// access to that project; an unscoped list is admin-only.
func (s *TaskService) List(ctx context.Context, input ListTasksInput, userID uuid.UUID, role access.Role) ([]TaskView, error) {
	if input.ProjectID != uuid.Nil {
		if _, err := s.projectAccess(ctx, input.ProjectID, userID, role); err != nil {
			return nil, err
		}
	} else if role != access.RoleAdmin {
		return nil, apperr.Forbidden("listing tasks across all projects requires admin role")
	}

	tasks, err := s.tasks.List(ctx, repository.ListFilter{
		ProjectID:  input.ProjectID,
		StatusID:   input.StatusID,
		AssignedTo: input.AssignedTo,
		Search:     input.Search,
	})
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, tasks, userID, role), nil
}

// Update applies a partial update. A status change is revalidated against
// the project service like a fresh reference; the moved task is appended to
// the destination column.
func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, input UpdateTaskInput, userID uuid.UUID, role access.Role) (*TaskView, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectAccess(ctx, task.ProjectID, userID, role); err != nil {
		return nil, err
	}

	if input.StatusID != nil && *input.StatusID != task.StatusID {
		status, err := s.validateStatus(ctx, task.ProjectID, *input.StatusID, userID, role)
		if err != nil {
			return nil, err
		}
		maxPos, err := s.tasks.MaxPositionInStatus(ctx, status.ID)
		if err != nil {
			return nil, err
		}
		task.StatusID = status.ID
		task.Position = maxPos + 1
	}

	if input.AssignedTo != nil {
		if _, err := s.verifyAssignee(ctx, input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	views := s.enrich(ctx, []model.Task{*task}, userID, role)
	return &views[0], nil
}

// UpdateStatus is the drag-and-drop move. The destination status is
// revalidated on every call, never cached from a prior check. An omitted
// position appends to the end of the destination column.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID, statusID uuid.UUID, position *int, userID uuid.UUID, role access.Role) (*TaskView, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectAccess(ctx, task.ProjectID, userID, role); err != nil {
		return nil, err
	}

	status, err := s.validateStatus(ctx, task.ProjectID, statusID, userID, role)
	if err != nil {
		return nil, err
	}

	if position != nil {
		task.Position = *position
	} else {
		maxPos, err := s.tasks.MaxPositionInStatus(ctx, status.ID)
		if err != nil {
			return nil, err
		}
		task.Position = maxPos + 1
	}
	task.StatusID = status.ID

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	return &TaskView{
		Task:        *task,
		StatusName:  status.Name,
		StatusColor: status.Color,
	}, nil
}

// Delete is restricted to the project owner and platform admins; plain
// members can move tasks but not remove them.
func (s *TaskService) Delete(ctx context.Context, taskID, userID uuid.UUID, role access.Role) error {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return err
	}
	project, err := s.projectAccess(ctx, task.ProjectID, userID, role)
	if err != nil {
		return err
	}
	if !access.CanManage(project.OwnerID, userID, role) {
		return apperr.Forbidden("only the project owner or admin can delete tasks")
	}
	return s.tasks.Delete(ctx, task.ID)
}

// Stats buckets the project's task counts by a case-insensitive match of the
// live column names against To Do / In Progress / Done. Tasks in columns
// with other names count toward the total only.
func (s *TaskService) Stats(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*TaskStats, error) {
	if _, err := s.projectAccess(ctx, projectID, userID, role); err != nil {
		return nil, err
	}

	statuses, err := s.listStatuses(ctx, projectID, userID, role)
	if err != nil {
		return nil, err
	}

	total, err := s.tasks.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	counts, err := s.tasks.CountByStatus(ctx, projectID)
	if err != nil {
		return nil, err
	}

	stats := &TaskStats{ProjectID: projectID, TotalTasks: total}
	for _, status := range statuses {
		switch strings.ToLower(status.Name) {
		case "to do":
			stats.TodoTasks += counts[status.ID]
		case "in progress":
			stats.InProgressTasks += counts[status.ID]
		case "done":
			stats.DoneTasks += counts[status.ID]
		}
	}
	return stats, nil
}

// Migrate moves every task from one column to another within a project,
// preserving relative order past the target's maximum position. Called by
// the project service before it deletes a column.
func (s *TaskService) Migrate(ctx context.Context, projectID, fromStatusID, toStatusID uuid.UUID) (int64, error) {
	moved, err := s.tasks.MigrateStatus(ctx, projectID, fromStatusID, toStatusID)
	if err != nil {
		return 0, err
	}
	log.Printf("✅ Migrated %d tasks from status %s to %s", moved, fromStatusID, toStatusID)
	return moved, nil
}

// PurgeProject removes every task of a deleted project.
func (s *TaskService) PurgeProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	deleted, err := s.tasks.DeleteByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	log.Printf("✅ Purged %d tasks of project %s", deleted, projectID)
	return deleted, nil
}

func (s *TaskService) getTask(ctx context.Context, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task not found")
	}
	return task, nil
}

func (s *TaskService) projectAccess(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*client.Project, error) {
	project, err := s.projects.GetProject(ctx, projectID, userID, role)
	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, client.ErrNotFound):
		return nil, apperr.NotFound("project not found")
	case errors.Is(err, client.ErrForbidden):
		return nil, apperr.Forbidden("access to this project is denied")
	default:
		return nil, apperr.Unavailable("project service unavailable", err)
	}
}

// validateStatus confirms the status exists and belongs to the project. A
// status that exists under a different project reads as absent and fails
// the same way.
func (s *TaskService) validateStatus(ctx context.Context, projectID, statusID, userID uuid.UUID, role access.Role) (*client.Status, error) {
	status, err := s.projects.GetStatus(ctx, projectID, statusID, userID, role)
	switch {
	case err == nil:
		return status, nil
	case errors.Is(err, client.ErrNotFound):
		return nil, apperr.BadRequest(fmt.Sprintf("status %s does not belong to this project", statusID))
	case errors.Is(err, client.ErrForbidden):
		return nil, apperr.Forbidden("access to this project is denied")
	default:
		return nil, apperr.Unavailable("project service unavailable", err)
	}
}

func (s *TaskService) listStatuses(ctx context.Context, projectID, userID uuid.UUID, role access.Role) ([]client.Status, error) {
	statuses, err := s.projects.ListStatuses(ctx, projectID, userID, role)
	switch {
	case err == nil:
		return statuses, nil
	case errors.Is(err, client.ErrNotFound):
		return nil, apperr.NotFound("project not found")
	case errors.Is(err, client.ErrForbidden):
		return nil, apperr.Forbidden("access to this project is denied")
	default:
		return nil, apperr.Unavailable("project service unavailable", err)
	}
}

func (s *TaskService) verifyAssignee(ctx context.Context, assignedTo *uuid.UUID) (*identity.User, error) {
	if assignedTo == nil {
		return nil, nil
	}
	user, err := s.users.GetUserByIDInternal(ctx, *assignedTo)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, identity.ErrUserNotFound):
		return nil, apperr.BadRequest("assigned user not found")
	default:
		return nil, apperr.Unavailable("auth service unavailable", err)
	}
}

// enrich attaches status and assignee display details to each task. Both
// lookups are best-effort: a failed status fetch falls back to the Unknown
// placeholder, a failed assignee fetch leaves the assignee empty.
func (s *TaskService) enrich(ctx context.Context, tasks []model.Task, userID uuid.UUID, role access.Role) []TaskView {
	statusesByProject := make(map[uuid.UUID]map[uuid.UUID]client.Status)
	assignees := make(map[uuid.UUID]*identity.User)

	views := make([]TaskView, len(tasks))
	for i, task := range tasks {
		view := TaskView{
			Task:        task,
			StatusName:  unknownStatusName,
			StatusColor: unknownStatusColor,
		}

		byID, fetched := statusesByProject[task.ProjectID]
		if !fetched {
			byID = make(map[uuid.UUID]client.Status)
			if statuses, err := s.projects.ListStatuses(ctx, task.ProjectID, userID, role); err != nil {
				log.Printf("⚠️  Status enrichment failed for project %s: %v", task.ProjectID, err)
			} else {
				for _, status := range statuses {
					byID[status.ID] = status
				}
			}
			statusesByProject[task.ProjectID] = byID
		}
		if status, ok := byID[task.StatusID]; ok {
			view.StatusName = status.Name
			view.StatusColor = status.Color
		}

		if task.AssignedTo != nil {
			user, fetched := assignees[*task.AssignedTo]
			if !fetched {
				var err error
				user, err = s.users.GetUserByIDInternal(ctx, *task.AssignedTo)
				if err != nil {
					log.Printf("⚠️  Assignee enrichment failed for user %s: %v", *task.AssignedTo, err)
					user = nil
				}
				assignees[*task.AssignedTo] = user
			}
			view.Assignee = user
		}

		views[i] = view
	}
	return views
}
