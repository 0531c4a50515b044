package service_test

import (
	"context"

	"taskboard/internal/access"
	"taskboard/internal/identity"
	"taskboard/internal/project/client"
	"taskboard/internal/project/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*model.Project), args.Error(1)
}

func (m *MockProjectStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	projects := args.Get(0)
	if projects == nil {
		return nil, args.Error(1)
	}
	return projects.([]model.Project), args.Error(1)
}

func (m *MockProjectStore) ListAll(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	projects := args.Get(0)
	if projects == nil {
		return nil, args.Error(1)
	}
	return projects.([]model.Project), args.Error(1)
}

func (m *MockProjectStore) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMemberStore struct {
	mock.Mock
}

func (m *MockMemberStore) Add(ctx context.Context, member *model.ProjectMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberStore) Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberStore) Find(ctx context.Context, projectID, userID uuid.UUID) (*model.ProjectMember, error) {
	args := m.Called(ctx, projectID, userID)
	member := args.Get(0)
	if member == nil {
		return nil, args.Error(1)
	}
	return member.(*model.ProjectMember), args.Error(1)
}

func (m *MockMemberStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	members := args.Get(0)
	if members == nil {
		return nil, args.Error(1)
	}
	return members.([]model.ProjectMember), args.Error(1)
}

func (m *MockMemberStore) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberStore) Remove(ctx context.Context, member *model.ProjectMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

type MockInvitationStore struct {
	mock.Mock
}

func (m *MockInvitationStore) Create(ctx context.Context, invitation *model.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	args := m.Called(ctx, token)
	invitation := args.Get(0)
	if invitation == nil {
		return nil, args.Error(1)
	}
	return invitation.(*model.Invitation), args.Error(1)
}

func (m *MockInvitationStore) ExistsPending(ctx context.Context, projectID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, projectID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvitationStore) Update(ctx context.Context, invitation *model.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

type MockStatusStore struct {
	mock.Mock
}

func (m *MockStatusStore) Create(ctx context.Context, status *model.TaskStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusStore) GetByIDAndProject(ctx context.Context, id, projectID uuid.UUID) (*model.TaskStatus, error) {
	args := m.Called(ctx, id, projectID)
	status := args.Get(0)
	if status == nil {
		return nil, args.Error(1)
	}
	return status.(*model.TaskStatus), args.Error(1)
}

func (m *MockStatusStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.TaskStatus, error) {
	args := m.Called(ctx, projectID)
	statuses := args.Get(0)
	if statuses == nil {
		return nil, args.Error(1)
	}
	return statuses.([]model.TaskStatus), args.Error(1)
}

func (m *MockStatusStore) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatusStore) ExistsName(ctx context.Context, projectID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, projectID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatusStore) MaxPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockStatusStore) Update(ctx context.Context, status *model.TaskStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStatusStore) Reorder(ctx context.Context, statuses []model.TaskStatus) error {
	args := m.Called(ctx, statuses)
	return args.Error(0)
}

type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) GetUserByID(ctx context.Context, id, callerID uuid.UUID, callerRole access.Role) (*identity.User, error) {
	args := m.Called(ctx, id, callerID, callerRole)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*identity.User), args.Error(1)
}

func (m *MockIdentityClient) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*identity.User), args.Error(1)
}

func (m *MockIdentityClient) GetUserByIDInternal(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*identity.User), args.Error(1)
}

type MockTaskClient struct {
	mock.Mock
}

func (m *MockTaskClient) GetProjectStats(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*client.TaskStats, error) {
	args := m.Called(ctx, projectID, userID, role)
	stats := args.Get(0)
	if stats == nil {
		return nil, args.Error(1)
	}
	return stats.(*client.TaskStats), args.Error(1)
}

func (m *MockTaskClient) MigrateTasks(ctx context.Context, projectID, fromStatusID, toStatusID, userID uuid.UUID, role access.Role) error {
	args := m.Called(ctx, projectID, fromStatusID, toStatusID, userID, role)
	return args.Error(0)
}

func (m *MockTaskClient) DeleteProjectTasks(ctx context.Context, projectID, userID uuid.UUID, role access.Role) error {
	args := m.Called(ctx, projectID, userID, role)
	return args.Error(0)
}

type MockMembershipAdder struct {
	mock.Mock
}

func (m *MockMembershipAdder) AddMemberFromInvitation(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) InvitationCreated(email, projectTitle, token string) error {
	args := m.Called(email, projectTitle, token)
	return args.Error(0)
}

func (m *MockNotifier) MemberAdded(email, projectTitle string, projectID uuid.UUID) error {
	args := m.Called(email, projectTitle, projectID)
	return args.Error(0)
}
