package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"taskboard/internal/access"
	"taskboard/internal/middleware"

	"github.com/google/uuid"
)

// The identity provider is consumed, not implemented: it authenticates users
// and resolves them by id or email. Every failure is either a definite
// "no such user" or a transport problem; callers must never confuse the two.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnavailable  = errors.New("auth service unavailable")
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	AvatarURL string    `json:"avatar_url"`
	Role      string    `json:"role"`
}

// DisplayName is the human-readable form used in invitation info responses.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}

type Client interface {
	// GetUserByID resolves a user on behalf of the acting caller; the
	// caller's identity is forwarded for the provider's own permission
	// checks.
	GetUserByID(ctx context.Context, id, callerID uuid.UUID, callerRole access.Role) (*User, error)

	// GetUserByEmail resolves a user by (already normalized) email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByIDInternal bypasses provider permission checks. Server-to-
	// server use only; never reachable from the public edge.
	GetUserByIDInternal(ctx context.Context, id uuid.UUID) (*User, error)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *HTTPClient) GetUserByID(ctx context.Context, id, callerID uuid.UUID, callerRole access.Role) (*User, error) {
	path := fmt.Sprintf("/api/v1/users/%s", id)
	return c.getUser(ctx, path, func(req *http.Request) {
		req.Header.Set(middleware.HeaderUserID, callerID.String())
		req.Header.Set(middleware.HeaderUserRole, callerRole.String())
	})
}

func (c *HTTPClient) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	path := "/api/v1/users/by-email?email=" + url.QueryEscape(email)
	return c.getUser(ctx, path, nil)
}

func (c *HTTPClient) GetUserByIDInternal(ctx context.Context, id uuid.UUID) (*User, error) {
	path := fmt.Sprintf("/internal/users/%s", id)
	return c.getUser(ctx, path, nil)
}

func (c *HTTPClient) getUser(ctx context.Context, path string, decorate func(*http.Request)) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if decorate != nil {
		decorate(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var user User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
		}
		return &user, nil
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
}
