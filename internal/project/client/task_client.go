package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskboard/internal/access"
	"taskboard/internal/middleware"

	"github.com/google/uuid"
)

// ErrTaskServiceUnavailable covers transport failures and unexpected
// responses from the task service.
var ErrTaskServiceUnavailable = errors.New("task service unavailable")

type TaskStats struct {
	ProjectID       uuid.UUID `json:"project_id"`
	TotalTasks      int       `json:"total_tasks"`
	TodoTasks       int       `json:"todo_tasks"`
	InProgressTasks int       `json:"in_progress_tasks"`
	DoneTasks       int       `json:"done_tasks"`
}

// TaskClient is the project service's view of the task service.
type TaskClient interface {
	GetProjectStats(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*TaskStats, error)

	// MigrateTasks moves every task from one status to another, appending
	// after the target's maximum position. Called before a column is
	// deleted so no task is left pointing at a nonexistent column.
	MigrateTasks(ctx context.Context, projectID, fromStatusID, toStatusID, userID uuid.UUID, role access.Role) error

	// DeleteProjectTasks purges tasks after a project delete. Best-effort:
	// the caller logs failures and moves on.
	DeleteProjectTasks(ctx context.Context, projectID, userID uuid.UUID, role access.Role) error
}

type HTTPTaskClient struct {
	baseURL string
	http    *http.Client
}

var _ TaskClient = (*HTTPTaskClient)(nil)

func NewHTTPTaskClient(baseURL string) *HTTPTaskClient {
	return &HTTPTaskClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPTaskClient) GetProjectStats(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*TaskStats, error) {
	url := fmt.Sprintf("%s/api/v1/tasks/stats?projectId=%s", c.baseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	forwardIdentity(req, userID, role)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTaskServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTaskServiceUnavailable, resp.StatusCode)
	}

	var stats TaskStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrTaskServiceUnavailable, err)
	}
	return &stats, nil
}

type migrateRequest struct {
	ProjectID    uuid.UUID `json:"project_id"`
	FromStatusID uuid.UUID `json:"from_status_id"`
	ToStatusID   uuid.UUID `json:"to_status_id"`
}

func (c *HTTPTaskClient) MigrateTasks(ctx context.Context, projectID, fromStatusID, toStatusID, userID uuid.UUID, role access.Role) error {
	body, err := json.Marshal(migrateRequest{
		ProjectID:    projectID,
		FromStatusID: fromStatusID,
		ToStatusID:   toStatusID,
	})
	if err != nil {
		return err
	}

	url := c.baseURL + "/internal/tasks/migrate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	forwardIdentity(req, userID, role)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTaskServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrTaskServiceUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *HTTPTaskClient) DeleteProjectTasks(ctx context.Context, projectID, userID uuid.UUID, role access.Role) error {
	url := fmt.Sprintf("%s/internal/tasks?projectId=%s", c.baseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	forwardIdentity(req, userID, role)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTaskServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrTaskServiceUnavailable, resp.StatusCode)
	}
	return nil
}

func forwardIdentity(req *http.Request, userID uuid.UUID, role access.Role) {
	req.Header.Set(middleware.HeaderUserID, userID.String())
	req.Header.Set(middleware.HeaderUserRole, role.String())
}
