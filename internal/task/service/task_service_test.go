package service_test

import (
	"context"
	"testing"

	"taskboard/internal/access"
	"taskboard/internal/apperr"
	"taskboard/internal/identity"
	"taskboard/internal/task/client"
	"taskboard/internal/task/model"
	"taskboard/internal/task/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTaskService() (*service.TaskService, *MockTaskStore, *MockProjectClient, *MockIdentityClient) {
	tasks := new(MockTaskStore)
	projects := new(MockProjectClient)
	users := new(MockIdentityClient)
	svc := service.NewTaskService(tasks, projects, users)
	return svc, tasks, projects, users
}

func boardColumns(projectID uuid.UUID) []client.Status {
	return []client.Status{
		{ID: uuid.New(), ProjectID: projectID, Name: "To Do", Color: "#ff9800", Position: 0},
		{ID: uuid.New(), ProjectID: projectID, Name: "In Progress", Color: "#2196f3", Position: 1},
		{ID: uuid.New(), ProjectID: projectID, Name: "Done", Color: "#4caf50", Position: 2},
	}
}

func TestCreateTask_DefaultsToLowestPositionColumn(t *testing.T) {
	// Arrange
	svc, tasks, projects, _ := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()
	columns := boardColumns(projectID)

	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("ListStatuses", mock.Anything, projectID, userID, access.RoleUser).
		Return(columns, nil)
	tasks.On("MaxPositionInStatus", mock.Anything, columns[0].ID).Return(-1, nil)
	tasks.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	// Act
	view, err := svc.Create(context.Background(), service.CreateTaskInput{
		Title:     "Write docs",
		ProjectID: projectID,
	}, userID, access.RoleUser)

	// Assert: lands in "To Do" at position 0 with MEDIUM priority
	assert.NoError(t, err)
	assert.Equal(t, columns[0].ID, view.Task.StatusID)
	assert.Equal(t, 0, view.Task.Position)
	assert.Equal(t, model.PriorityMedium, view.Task.Priority)
	assert.Equal(t, "To Do", view.StatusName)
}

func TestCreateTask_NoColumnsRejected(t *testing.T) {
	// Arrange
	svc, tasks, projects, _ := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()

	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("ListStatuses", mock.Anything, projectID, userID, access.RoleUser).
		Return([]client.Status{}, nil)

	// Act
	view, err := svc.Create(context.Background(), service.CreateTaskInput{
		Title:     "Write docs",
		ProjectID: projectID,
	}, userID, access.RoleUser)

	// Assert
	assert.Nil(t, view)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTask_CrossProjectStatusRejected(t *testing.T) {
	// Arrange: the status exists but under another project, so the scoped
	// lookup reports absence
	svc, tasks, projects, _ := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()
	foreignStatus := uuid.New()

	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("GetStatus", mock.Anything, projectID, foreignStatus, userID, access.RoleUser).
		Return(nil, client.ErrNotFound)

	// Act
	view, err := svc.Create(context.Background(), service.CreateTaskInput{
		Title:     "Write docs",
		ProjectID: projectID,
		StatusID:  &foreignStatus,
	}, userID, access.RoleUser)

	// Assert
	assert.Nil(t, view)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTask_AppendsAfterMaxPosition(t *testing.T) {
	// Arrange
	svc, tasks, projects, _ := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()
	columns := boardColumns(projectID)

	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("GetStatus", mock.Anything, projectID, columns[1].ID, userID, access.RoleUser).
		Return(&columns[1], nil)
	tasks.On("MaxPositionInStatus", mock.Anything, columns[1].ID).Return(4, nil)
	tasks.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	// Act
	view, err := svc.Create(context.Background(), service.CreateTaskInput{
		Title:     "Write docs",
		ProjectID: projectID,
		StatusID:  &columns[1].ID,
	}, userID, access.RoleUser)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 5, view.Task.Position)
}

func TestCreateTask_UnknownAssigneeRejected(t *testing.T) {
	// Arrange
	svc, tasks, projects, users := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()
	columns := boardColumns(projectID)
	assignee := uuid.New()

	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("ListStatuses", mock.Anything, projectID, userID, access.RoleUser).
		Return(columns, nil)
	users.On("GetUserByIDInternal", mock.Anything, assignee).
		Return(nil, identity.ErrUserNotFound)

	// Act
	view, err := svc.Create(context.Background(), service.CreateTaskInput{
		Title:      "Write docs",
		ProjectID:  projectID,
		AssignedTo: &assignee,
	}, userID, access.RoleUser)

	// Assert
	assert.Nil(t, view)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateStatus_RevalidatesAndAppends(t *testing.T) {
	// Arrange
	svc, tasks, projects, _ := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()
	columns := boardColumns(projectID)

	task := &model.Task{
		ID:        uuid.New(),
		Title:     "Write docs",
		ProjectID: projectID,
		StatusID:  columns[0].ID,
		Position:  1,
	}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("GetStatus", mock.Anything, projectID, columns[2].ID, userID, access.RoleUser).
		Return(&columns[2], nil)
	tasks.On("MaxPositionInStatus", mock.Anything, columns[2].ID).Return(7, nil)
	tasks.On("Update", mock.Anything, task).Return(nil)

	// Act: no position supplied, so the task appends to "Done"
	view, err := svc.UpdateStatus(context.Background(), task.ID, columns[2].ID, nil, userID, access.RoleUser)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, columns[2].ID, view.Task.StatusID)
	assert.Equal(t, 8, view.Task.Position)
	assert.Equal(t, "Done", view.StatusName)
}

func TestUpdateStatus_InvalidDestinationKeepsTask(t *testing.T) {
	// Arrange
	svc, tasks, projects, _ := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()
	badStatus := uuid.New()

	task := &model.Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		StatusID:  uuid.New(),
	}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("GetStatus", mock.Anything, projectID, badStatus, userID, access.RoleUser).
		Return(nil, client.ErrNotFound)

	// Act
	view, err := svc.UpdateStatus(context.Background(), task.ID, badStatus, nil, userID, access.RoleUser)

	// Assert
	assert.Nil(t, view)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteTask_MemberForbidden(t *testing.T) {
	// Arrange: the caller can read the project but does not own it
	svc, tasks, projects, _ := setupTaskService()
	memberID := uuid.New()
	projectID := uuid.New()

	task := &model.Task{ID: uuid.New(), ProjectID: projectID, StatusID: uuid.New()}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	projects.On("GetProject", mock.Anything, projectID, memberID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: uuid.New()}, nil)

	// Act
	err := svc.Delete(context.Background(), task.ID, memberID, access.RoleUser)

	// Assert
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	tasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteTask_AdminAllowed(t *testing.T) {
	// Arrange
	svc, tasks, projects, _ := setupTaskService()
	adminID := uuid.New()
	projectID := uuid.New()

	task := &model.Task{ID: uuid.New(), ProjectID: projectID, StatusID: uuid.New()}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	projects.On("GetProject", mock.Anything, projectID, adminID, access.RoleAdmin).
		Return(&client.Project{ID: projectID, OwnerID: uuid.New()}, nil)
	tasks.On("Delete", mock.Anything, task.ID).Return(nil)

	// Act
	err := svc.Delete(context.Background(), task.ID, adminID, access.RoleAdmin)

	// Assert
	assert.NoError(t, err)
}

func TestList_UnscopedRequiresAdmin(t *testing.T) {
	// Arrange
	svc, tasks, _, _ := setupTaskService()

	// Act
	views, err := svc.List(context.Background(), service.ListTasksInput{}, uuid.New(), access.RoleUser)

	// Assert
	assert.Nil(t, views)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	tasks.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestStats_BucketsByCaseInsensitiveName(t *testing.T) {
	// Arrange: a renamed-case board plus a custom column
	svc, tasks, projects, _ := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()

	todo := client.Status{ID: uuid.New(), ProjectID: projectID, Name: "TO DO"}
	doing := client.Status{ID: uuid.New(), ProjectID: projectID, Name: "in progress"}
	done := client.Status{ID: uuid.New(), ProjectID: projectID, Name: "Done"}
	review := client.Status{ID: uuid.New(), ProjectID: projectID, Name: "Review"}

	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("ListStatuses", mock.Anything, projectID, userID, access.RoleUser).
		Return([]client.Status{todo, doing, done, review}, nil)
	tasks.On("CountByProject", mock.Anything, projectID).Return(int64(10), nil)
	tasks.On("CountByStatus", mock.Anything, projectID).Return(map[uuid.UUID]int64{
		todo.ID:   3,
		doing.ID:  2,
		done.ID:   4,
		review.ID: 1,
	}, nil)

	// Act
	stats, err := svc.Stats(context.Background(), projectID, userID, access.RoleUser)

	// Assert: "Review" counts toward the total only
	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalTasks)
	assert.Equal(t, int64(3), stats.TodoTasks)
	assert.Equal(t, int64(2), stats.InProgressTasks)
	assert.Equal(t, int64(4), stats.DoneTasks)
}

func TestGet_EnrichmentFallsBackOnRPCFailure(t *testing.T) {
	// Arrange
	svc, tasks, projects, _ := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()

	task := &model.Task{
		ID:        uuid.New(),
		Title:     "Write docs",
		ProjectID: projectID,
		StatusID:  uuid.New(),
	}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("ListStatuses", mock.Anything, projectID, userID, access.RoleUser).
		Return(nil, client.ErrProjectServiceUnavailable)

	// Act
	view, err := svc.Get(context.Background(), task.ID, userID, access.RoleUser)

	// Assert: the task comes back with the placeholder status
	assert.NoError(t, err)
	assert.Equal(t, "Write docs", view.Task.Title)
	assert.Equal(t, "Unknown", view.StatusName)
	assert.Equal(t, "#9e9e9e", view.StatusColor)
}

func TestGet_AssigneeEnrichmentBestEffort(t *testing.T) {
	// Arrange
	svc, tasks, projects, users := setupTaskService()
	userID := uuid.New()
	projectID := uuid.New()
	assignee := uuid.New()
	columns := boardColumns(projectID)

	task := &model.Task{
		ID:         uuid.New(),
		ProjectID:  projectID,
		StatusID:   columns[0].ID,
		AssignedTo: &assignee,
	}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	projects.On("GetProject", mock.Anything, projectID, userID, access.RoleUser).
		Return(&client.Project{ID: projectID, OwnerID: userID}, nil)
	projects.On("ListStatuses", mock.Anything, projectID, userID, access.RoleUser).
		Return(columns, nil)
	users.On("GetUserByIDInternal", mock.Anything, assignee).
		Return(nil, identity.ErrUnavailable)

	// Act
	view, err := svc.Get(context.Background(), task.ID, userID, access.RoleUser)

	// Assert: status resolved, assignee silently absent
	assert.NoError(t, err)
	assert.Equal(t, "To Do", view.StatusName)
	assert.Nil(t, view.Assignee)
}
