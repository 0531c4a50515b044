package service_test

import (
	"context"

	"taskboard/internal/access"
	"taskboard/internal/identity"
	"taskboard/internal/task/client"
	"taskboard/internal/task/model"
	"taskboard/internal/task/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskStore) List(ctx context.Context, filter repository.ListFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskStore) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskStore) MaxPositionInStatus(ctx context.Context, statusID uuid.UUID) (int, error) {
	args := m.Called(ctx, statusID)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskStore) MigrateStatus(ctx context.Context, projectID, fromStatusID, toStatusID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID, fromStatusID, toStatusID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskStore) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskStore) CountByStatus(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, projectID)
	counts := args.Get(0)
	if counts == nil {
		return nil, args.Error(1)
	}
	return counts.(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockTaskStore) DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

type MockProjectClient struct {
	mock.Mock
}

func (m *MockProjectClient) GetProject(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*client.Project, error) {
	args := m.Called(ctx, projectID, userID, role)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*client.Project), args.Error(1)
}

func (m *MockProjectClient) GetStatus(ctx context.Context, projectID, statusID, userID uuid.UUID, role access.Role) (*client.Status, error) {
	args := m.Called(ctx, projectID, statusID, userID, role)
	status := args.Get(0)
	if status == nil {
		return nil, args.Error(1)
	}
	return status.(*client.Status), args.Error(1)
}

func (m *MockProjectClient) ListStatuses(ctx context.Context, projectID, userID uuid.UUID, role access.Role) ([]client.Status, error) {
	args := m.Called(ctx, projectID, userID, role)
	statuses := args.Get(0)
	if statuses == nil {
		return nil, args.Error(1)
	}
	return statuses.([]client.Status), args.Error(1)
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
