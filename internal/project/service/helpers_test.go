package service_test

import (
	"time"

	"taskboard/internal/identity"
	"taskboard/internal/project/model"

	"github.com/google/uuid"
)

func testUser(email string) *identity.User {
	return &identity.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
	}
}

func errUserNotFound() error {
	return identity.ErrUserNotFound
}

func pendingInvitation(projectID uuid.UUID, email string) *model.Invitation {
	return &model.Invitation{
		ID:        uuid.New(),
		ProjectID: projectID,
		Email:     email,
		InvitedBy: uuid.New(),
		Token:     uuid.NewString(),
		Status:    model.InvitationPending,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
}
