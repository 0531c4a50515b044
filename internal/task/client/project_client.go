package client

import (
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

var (
	// ErrNotFound means the project or status does not exist, or is scoped
	// to a different project than the one asked about.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the forwarded identity cannot access the project.
	ErrForbidden = errors.New("access denied")

	// ErrProjectServiceUnavailable covers transport failures and unexpected
	// responses from the project service.
	ErrProjectServiceUnavailable = errors.New("project service unavailable")
)

// Project is the slice of the project DTO task authorization depends on.
type Project struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	OwnerID uuid.UUID `json:"owner_id"`
}

// Status is a Kanban column as the project service reports it.
type Status struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	IsDefault bool      `json:"is_default"`
}

// ProjectClient is the task service's view of the project service. Every
// call forwards the caller's identity so the project service applies its own
// access policy; a 403 there becomes ErrForbidden here.
type ProjectClient interface {
	GetProject(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*Project, error)
	GetStatus(ctx context.Context, projectID, statusID, userID uuid.UUID, role access.Role) (*Status, error)
	ListStatuses(ctx context.Context, projectID, userID uuid.UUID, role access.Role) ([]Status, error)
}

type HTTPProjectClient struct {
	baseURL string
	http    *http.Client
}

var _ ProjectClient = (*HTTPProjectClient)(nil)

func NewHTTPProjectClient(baseURL string) *HTTPProjectClient {
	return &HTTPProjectClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPProjectClient) GetProject(ctx context.Context, projectID, userID uuid.UUID, role access.Role) (*Project, error) {
	url := fmt.Sprintf("%s/api/v1/projects/%s", c.baseURL, projectID)
	var project Project
	if err := c.get(ctx, url, userID, role, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *HTTPProjectClient) GetStatus(ctx context.Context, projectID, statusID, userID uuid.UUID, role access.Role) (*Status, error) {
	url := fmt.Sprintf("%s/api/v1/projects/%s/statuses/%s", c.baseURL, projectID, statusID)
	var status Status
	if err := c.get(ctx, url, userID, role, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *HTTPProjectClient) ListStatuses(ctx context.Context, projectID, userID uuid.UUID, role access.Role) ([]Status, error) {
	url := fmt.Sprintf("%s/api/v1/projects/%s/statuses", c.baseURL, projectID)
	var statuses []Status
	if err := c.get(ctx, url, userID, role, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *HTTPProjectClient) get(ctx context.Context, url string, userID uuid.UUID, role access.Role, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set(middleware.HeaderUserID, userID.String())
	req.Header.Set(middleware.HeaderUserRole, role.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProjectServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		return ErrForbidden
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrProjectServiceUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrProjectServiceUnavailable, err)
	}
	return nil
}
