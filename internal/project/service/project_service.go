package service

import (
	"context"
	"errors"
	"log"
	"time"

	"taskboard/internal/access"
	"taskboard/internal/apperr"
	"taskboard/internal/identity"
	"taskboard/internal/project/client"
	"taskboard/internal/project/model"
	"taskboard/internal/project/repository"

	"github.com/google/uuid"
)

type ProjectService struct {
	projects ProjectStore
	members  MemberStore
	statuses *StatusService
	users    identity.Client
	tasks    client.TaskClient
}

func NewProjectService(
	projects ProjectStore,
	members MemberStore,
	statuses *StatusService,
	users identity.Client,
	tasks client.TaskClient,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		members:  members,
		statuses: statuses,
		users:    users,
		tasks:    tasks,
	}
}

type CreateProjectInput struct {
	Title       string
	Description string
	Status      model.ProjectStatus
	Color       string
	StartDate   *time.Time
	EndDate     *time.Time
}

type UpdateProjectInput struct {
	Title       *string
	Description *string
	Status      *model.ProjectStatus
	Color       *string
	StartDate   *time.Time
	EndDate     *time.Time
}

type MemberInfo struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Email     string
	AvatarURL string
	JoinedAt  time.Time
}

type ProjectStats struct {
	ProjectID       uuid.UUID
	ProjectTitle    string
	TotalTasks      int
	TodoTasks       int
	InProgressTasks int
	DoneTasks       int
	TotalMembers    int
}

// Create persists the project, then seeds the default columns. Seeding is a
// secondary step: its failure is logged and the project stays usable, since
// InitializeDefaults is idempotent and the next attempt can repair it.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput, ownerID uuid.UUID) (*model.Project, error) {
	status := input.Status
	if status == "" {
		status = model.ProjectInProgress
	}

	project := &model.Project{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Color:       input.Color,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		OwnerID:     ownerID,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	log.Printf("project %s created by %s", project.ID, ownerID)

	if err := s.statuses.InitializeDefaults(ctx, project.ID); err != nil {
		log.Printf("⚠️  failed to seed default statuses for project %s: %v", project.ID, err)
	}

	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*model.Project, error) {
	return s.accessProject(ctx, projectID, userID, role)
}

// List returns every project for admins, otherwise the caller's owned and
// member projects.
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID, role access.Role) ([]model.Project, error) {
	if role == access.RoleAdmin {
		return s.projects.ListAll(ctx)
	}
	return s.projects.ListForUser(ctx, userID)
}

func (s *ProjectService) Update(ctx context.Context, projectID uuid.UUID, input UpdateProjectInput, userID uuid.UUID, role access.Role) (*model.Project, error) {
	project, err := s.manageProject(ctx, projectID, userID, role, "only the project owner can update the project")
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Color != nil {
		project.Color = *input.Color
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project; columns, members and invitations cascade in
// the local store. Task cleanup crosses the service boundary and is
// best-effort only: a failure is logged and leaves orphaned tasks behind.
func (s *ProjectService) Delete(ctx context.Context, projectID, userID uuid.UUID, role access.Role) error {
	if _, err := s.manageProject(ctx, projectID, userID, role, "only the project owner can delete the project"); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	log.Printf("project %s deleted by %s", projectID, userID)

	if err := s.tasks.DeleteProjectTasks(ctx, projectID, userID, role); err != nil {
		log.Printf("⚠️  task cleanup for deleted project %s failed: %v", projectID, err)
	}
	return nil
}

// Stats combines the local member count with task counts fetched from the
// task service; task stats degrade to zeros if that call fails.
func (s *ProjectService) Stats(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*ProjectStats, error) {
	project, err := s.accessProject(ctx, projectID, userID, role)
	if err != nil {
		return nil, err
	}

	taskStats, err := s.tasks.GetProjectStats(ctx, projectID, userID, role)
	if err != nil {
		log.Printf("⚠️  failed to fetch task stats for project %s: %v", projectID, err)
		taskStats = &client.TaskStats{ProjectID: projectID}
	}

	memberCount, err := s.members.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &ProjectStats{
		ProjectID:       project.ID,
		ProjectTitle:    project.Title,
		TotalTasks:      taskStats.TotalTasks,
		TodoTasks:       taskStats.TodoTasks,
		InProgressTasks: taskStats.InProgressTasks,
		DoneTasks:       taskStats.DoneTasks,
		TotalMembers:    int(memberCount) + 1, // +1 for the owner
	}, nil
}

func (s *ProjectService) AddMember(ctx context.Context, projectID, newUserID, requesterID uuid.UUID, role access.Role) (*MemberInfo, error) {
	if _, err := s.manageProject(ctx, projectID, requesterID, role, "only the project owner or admin can add members"); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, newUserID, requesterID, role)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, apperr.BadRequest("user not found")
		}
		return nil, apperr.Unavailable("could not verify user", err)
	}

	member := &model.ProjectMember{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    newUserID,
	}
	if err := s.members.Add(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			return nil, apperr.Conflict("user is already a member of this project")
		}
		return nil, err
	}
	log.Printf("user %s added to project %s by %s", newUserID, projectID, requesterID)

	return memberInfo(member, user), nil
}

// AddMemberFromInvitation is the membership primitive shared by direct
// invites and invitation acceptance. It bypasses the manage check (the
// invitation itself is the authorization) but keeps the duplicate guard.
func (s *ProjectService) AddMemberFromInvitation(ctx context.Context, projectID, userID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return apperr.NotFound("project not found")
	}

	member := &model.ProjectMember{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
	}
	if err := s.members.Add(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			return apperr.Conflict("user is already a member of this project")
		}
		return err
	}
	log.Printf("user %s added to project %s via invitation", userID, projectID)
	return nil
}

// ListMembers enriches membership rows with user details from the identity
// provider; rows whose lookup fails are dropped rather than failing the list.
func (s *ProjectService) ListMembers(ctx context.Context, projectID, userID uuid.UUID, role access.Role) ([]MemberInfo, error) {
	if _, err := s.accessProject(ctx, projectID, userID, role); err != nil {
		return nil, err
	}

	members, err := s.members.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	infos := make([]MemberInfo, 0, len(members))
	for i := range members {
		user, err := s.users.GetUserByID(ctx, members[i].UserID, userID, role)
		if err != nil {
			log.Printf("⚠️  failed to fetch user %s for project %s: %v", members[i].UserID, projectID, err)
			continue
		}
		infos = append(infos, *memberInfo(&members[i], user))
	}
	return infos, nil
}

func (s *ProjectService) RemoveMember(ctx context.Context, projectID, memberUserID, requesterID uuid.UUID, role access.Role) error {
	project, err := s.manageProject(ctx, projectID, requesterID, role, "only the project owner or admin can remove members")
	if err != nil {
		return err
	}

	// The owner is not a member row; removing them through this path is a
	// distinct error, not "member not found".
	if memberUserID == project.OwnerID {
		return apperr.BadRequest("cannot remove the project owner")
	}

	member, err := s.members.Find(ctx, projectID, memberUserID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.NotFound("member not found")
	}

	if err := s.members.Remove(ctx, member); err != nil {
		return err
	}
	log.Printf("user %s removed from project %s by %s", memberUserID, projectID, requesterID)
	return nil
}

// accessProject loads a project and enforces the read capability:
// admin, owner, or member.
func (s *ProjectService) accessProject(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*model.Project, error) {
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

// manageProject loads a project and enforces the manage capability
// (admin or owner), before any other side effect.
func (s *ProjectService) manageProject(ctx context.Context, projectID, userID uuid.UUID, role access.Role, denied string) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("project not found")
	}
	if !access.CanManage(project.OwnerID, userID, role) {
		return nil, apperr.Forbidden(denied)
	}
	return project, nil
}

func memberInfo(member *model.ProjectMember, user *identity.User) *MemberInfo {
	return &MemberInfo{
		ID:        member.ID,
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		JoinedAt:  member.JoinedAt,
	}
}
