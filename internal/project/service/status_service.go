package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"taskboard/internal/access"
	"taskboard/internal/apperr"
	"taskboard/internal/project/client"
	"taskboard/internal/project/model"
	"taskboard/internal/project/repository"

	"github.com/google/uuid"
)

type StatusService struct {
	statuses StatusStore
	projects ProjectStore
	members  MemberStore
	tasks    client.TaskClient
}

func NewStatusService(statuses StatusStore, projects ProjectStore, members MemberStore, tasks client.TaskClient) *StatusService {
	return &StatusService{
		statuses: statuses,
		projects: projects,
		members:  members,
		tasks:    tasks,
	}
}

type defaultStatus struct {
	name  string
	color string
}

var defaultStatuses = []defaultStatus{
	{"To Do", "#ff9800"},
	{"In Progress", "#2196f3"},
	{"Done", "#4caf50"},
}

type CreateStatusInput struct {
	Name     string
	Color    string
	Position *int
}

type UpdateStatusInput struct {
	Name  *string
	Color *string
}

// InitializeDefaults seeds the three default columns. Idempotent by count,
// not by name, so a partial prior run is left alone rather than duplicated.
func (s *StatusService) InitializeDefaults(ctx context.Context, projectID uuid.UUID) error {
	count, err := s.statuses.CountByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("project %s already has %d statuses, skipping initialization", projectID, count)
		return nil
	}

	for i, def := range defaultStatuses {
		status := &model.TaskStatus{
			ID:        uuid.New(),
			ProjectID: projectID,
			Name:      def.name,
			Color:     def.color,
			Position:  i,
			IsDefault: true,
		}
		if err := s.statuses.Create(ctx, status); err != nil {
			return err
		}
	}

	log.Printf("initialized default statuses for project %s", projectID)
	return nil
}

func (s *StatusService) List(ctx context.Context, projectID, userID uuid.UUID, role access.Role) ([]model.TaskStatus, error) {
	if _, err := s.accessProject(ctx, projectID, userID, role); err != nil {
		return nil, err
	}
	return s.statuses.ListByProject(ctx, projectID)
}

func (s *StatusService) Get(ctx context.Context, projectID, statusID, userID uuid.UUID, role access.Role) (*model.TaskStatus, error) {
	if _, err := s.accessProject(ctx, projectID, userID, role); err != nil {
		return nil, err
	}

	status, err := s.statuses.GetByIDAndProject(ctx, statusID, projectID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, apperr.NotFound("status not found")
	}
	return status, nil
}

func (s *StatusService) Create(ctx context.Context, projectID uuid.UUID, input CreateStatusInput, userID uuid.UUID, role access.Role) (*model.TaskStatus, error) {
	if err := s.manageProject(ctx, projectID, userID, role, "only the project owner can create custom statuses"); err != nil {
		return nil, err
	}

	exists, err := s.statuses.ExistsName(ctx, projectID, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(fmt.Sprintf("status with name '%s' already exists", input.Name))
	}

	// A caller-supplied position is taken as-is; neighbors are not
	// renumbered. Positions are an ordering hint, not a dense sequence.
	var position int
	if input.Position != nil {
		position = *input.Position
	} else {
		maxPosition, err := s.statuses.MaxPosition(ctx, projectID)
		if err != nil {
			return nil, err
		}
		position = maxPosition + 1
	}

	status := &model.TaskStatus{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      input.Name,
		Color:     input.Color,
		Position:  position,
		IsDefault: false,
	}
	if err := s.statuses.Create(ctx, status); err != nil {
		if errors.Is(err, repository.ErrDuplicateStatusName) {
			return nil, apperr.Conflict(fmt.Sprintf("status with name '%s' already exists", input.Name))
		}
		return nil, err
	}

	log.Printf("created status %q for project %s", input.Name, projectID)
	return status, nil
}

func (s *StatusService) Update(ctx context.Context, projectID, statusID uuid.UUID, input UpdateStatusInput, userID uuid.UUID, role access.Role) (*model.TaskStatus, error) {
	if err := s.manageProject(ctx, projectID, userID, role, "only the project owner can update statuses"); err != nil {
		return nil, err
	}

	status, err := s.statuses.GetByIDAndProject(ctx, statusID, projectID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, apperr.NotFound("status not found")
	}

	// Collision check only when the name actually changes.
	if input.Name != nil && *input.Name != status.Name {
		exists, err := s.statuses.ExistsName(ctx, projectID, *input.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Conflict(fmt.Sprintf("status with name '%s' already exists", *input.Name))
		}
		status.Name = *input.Name
	}
	if input.Color != nil {
		status.Color = *input.Color
	}

	if err := s.statuses.Update(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// Reorder replaces the full column order: the supplied ids must be exactly
// the project's current set, and each column's position becomes its index.
func (s *StatusService) Reorder(ctx context.Context, projectID uuid.UUID, statusIDs []uuid.UUID, userID uuid.UUID, role access.Role) ([]model.TaskStatus, error) {
	if err := s.manageProject(ctx, projectID, userID, role, "only the project owner can reorder statuses"); err != nil {
		return nil, err
	}

	statuses, err := s.statuses.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(statuses) != len(statusIDs) {
		return nil, apperr.BadRequest("status ids must match the project's columns exactly")
	}

	byID := make(map[uuid.UUID]model.TaskStatus, len(statuses))
	for _, status := range statuses {
		byID[status.ID] = status
	}

	ordered := make([]model.TaskStatus, 0, len(statusIDs))
	for i, id := range statusIDs {
		status, ok := byID[id]
		if !ok {
			return nil, apperr.BadRequest(fmt.Sprintf("status %s not found in project", id))
		}
		delete(byID, id) // a repeated id no longer matches
		status.Position = i
		ordered = append(ordered, status)
	}

	if err := s.statuses.Reorder(ctx, ordered); err != nil {
		return nil, err
	}

	log.Printf("reordered statuses for project %s", projectID)
	return ordered, nil
}

// Delete removes a column after migrating its tasks to the target column.
// Migration crosses the service boundary and must succeed first; a migration
// failure keeps the column so no task is orphaned.
func (s *StatusService) Delete(ctx context.Context, projectID, statusID, moveToStatusID, userID uuid.UUID, role access.Role) error {
	if err := s.manageProject(ctx, projectID, userID, role, "only the project owner can delete statuses"); err != nil {
		return err
	}

	status, err := s.statuses.GetByIDAndProject(ctx, statusID, projectID)
	if err != nil {
		return err
	}
	if status == nil {
		return apperr.NotFound("status not found")
	}

	count, err := s.statuses.CountByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return apperr.BadRequest("cannot delete the last status")
	}

	if moveToStatusID == statusID {
		return apperr.BadRequest("cannot move tasks to the status being deleted")
	}

	moveTo, err := s.statuses.GetByIDAndProject(ctx, moveToStatusID, projectID)
	if err != nil {
		return err
	}
	if moveTo == nil {
		return apperr.NotFound("target status not found")
	}

	if err := s.tasks.MigrateTasks(ctx, projectID, statusID, moveToStatusID, userID, role); err != nil {
		return apperr.Unavailable("task migration failed, status was not deleted", err)
	}

	if err := s.statuses.Delete(ctx, statusID); err != nil {
		return err
	}

	log.Printf("deleted status %s from project %s, tasks moved to %s", statusID, projectID, moveToStatusID)
	return nil
}

func (s *StatusService) accessProject(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("project not found")
	}

	isMember := false
	if role != access.RoleAdmin && project.OwnerID != userID {
		isMember, err = s.members.Exists(ctx, projectID, userID)
		if err != nil {
			return nil, err
		}
	}

	if !access.CanAccess(project.OwnerID, userID, role, isMember) {
		return nil, apperr.Forbidden("you don't have permission to access this project")
	}
	return project, nil
}

func (s *StatusService) manageProject(ctx context.Context, projectID, userID uuid.UUID, role access.Role, denied string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return apperr.NotFound("project not found")
	}
	if !access.CanManage(project.OwnerID, userID, role) {
		return apperr.Forbidden(denied)
	}
	return nil
}
