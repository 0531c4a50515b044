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
	"taskboard/internal/notify"
	"taskboard/internal/project/model"
	"taskboard/internal/project/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const invitationTTL = 7 * 24 * time.Hour

// MembershipAdder is the idempotent add-member primitive reused by direct
// invites and invitation acceptance.
type MembershipAdder interface {
	AddMemberFromInvitation(ctx context.Context, projectID, userID uuid.UUID) error
}

type InvitationService struct {
	invitations InvitationStore
	projects    ProjectStore
	memberships MembershipAdder
	users       identity.Client
	notifier    notify.Notifier
	validate    *validator.Validate
}

func NewInvitationService(
	invitations InvitationStore,
	projects ProjectStore,
	memberships MembershipAdder,
	users identity.Client,
	notifier notify.Notifier,
) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		projects:    projects,
		memberships: memberships,
		users:       users,
		notifier:    notifier,
		validate:    validator.New(),
	}
}

type InviteResult struct {
	Email       string
	UserExisted bool
	Message     string
}

type InvitationInfo struct {
	Email       string
	ProjectName string
	InvitedBy   string
	Expired     bool
	Valid       bool
}

// Invite adds an existing user directly, or records a pending invitation for
// an unknown email. The permission check runs before any other I/O so
// unauthorized callers learn nothing about the project's members.
func (s *InvitationService) Invite(ctx context.Context, projectID uuid.UUID, email string, inviterID uuid.UUID, role access.Role) (*InviteResult, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("project not found")
	}
	if !access.CanManage(project.OwnerID, inviterID, role) {
		return nil, apperr.Forbidden("only the project owner or admin can invite members")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, apperr.BadRequest("invalid email format")
	}

	// Fast-path duplicate check; the partial unique index below is what
	// actually settles concurrent invites.
	exists, err := s.invitations.ExistsPending(ctx, projectID, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("invitation already sent to this email")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.memberships.AddMemberFromInvitation(ctx, projectID, user.ID); err != nil {
			return nil, err
		}
		notify.Dispatch("member-added", func() error {
			return s.notifier.MemberAdded(email, project.Title, projectID)
		})
		log.Printf("user %s added directly to project %s", user.ID, projectID)
		return &InviteResult{
			Email:       email,
			UserExisted: true,
			Message:     "User added successfully to the project",
		}, nil

	case errors.Is(err, identity.ErrUserNotFound):
		invitation := &model.Invitation{
			ID:        uuid.New(),
			ProjectID: projectID,
			Email:     email,
			InvitedBy: inviterID,
			Token:     uuid.NewString(),
			Status:    model.InvitationPending,
			ExpiresAt: time.Now().Add(invitationTTL),
		}
		if err := s.invitations.Create(ctx, invitation); err != nil {
			if errors.Is(err, repository.ErrDuplicateInvitation) {
				return nil, apperr.Conflict("invitation already sent to this email")
			}
			return nil, err
		}
		notify.Dispatch("invitation-created", func() error {
			return s.notifier.InvitationCreated(email, project.Title, invitation.Token)
		})
		log.Printf("invitation created for %s to project %s", email, projectID)
		return &InviteResult{
			Email:       email,
			UserExisted: false,
			Message:     "Invitation sent successfully",
		}, nil

	default:
		return nil, apperr.Unavailable("could not resolve email against the auth service", err)
	}
}

// Accept redeems an invitation token for the authenticated user. The
// invitation is marked ACCEPTED only after the membership add succeeds; a
// failure at any earlier step leaves it PENDING.
func (s *InvitationService) Accept(ctx context.Context, token string, userID uuid.UUID) error {
	invitation, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if invitation == nil {
		return apperr.NotFound("invalid invitation token")
	}

	if invitation.Status != model.InvitationPending {
		return apperr.Conflict(fmt.Sprintf("this invitation is no longer valid (status: %s)", invitation.Status))
	}

	if invitation.ExpiresAt.Before(time.Now()) {
		// Lazy expiry: expired invitations transition on the read path.
		invitation.Status = model.InvitationExpired
		if err := s.invitations.Update(ctx, invitation); err != nil {
			return err
		}
		log.Printf("expired invitation used: %s", token)
		return apperr.Conflict("this invitation has expired")
	}

	user, err := s.users.GetUserByIDInternal(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Unavailable("could not verify user against the auth service", err)
	}

	// Wrong person, not a bad token.
	if !strings.EqualFold(user.Email, invitation.Email) {
		log.Printf("email mismatch: invitation for %s, user has %s", invitation.Email, user.Email)
		return apperr.Conflict("this invitation was sent to a different email address")
	}

	if err := s.memberships.AddMemberFromInvitation(ctx, invitation.ProjectID, userID); err != nil {
		return err
	}

	invitation.Status = model.InvitationAccepted
	if err := s.invitations.Update(ctx, invitation); err != nil {
		return err
	}

	log.Printf("user %s accepted invitation for project %s", userID, invitation.ProjectID)
	return nil
}

// Info returns what the invitation itself reveals, unauthenticated. A
// missing invitation and a since-deleted project are both plain NotFound.
func (s *InvitationService) Info(ctx context.Context, token string) (*InvitationInfo, error) {
	invitation, err := s.invitations.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, apperr.NotFound("invalid invitation token")
	}

	project, err := s.projects.GetByID(ctx, invitation.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("invalid invitation token")
	}

	invitedBy := ""
	if inviter, err := s.users.GetUserByIDInternal(ctx, invitation.InvitedBy); err == nil {
		invitedBy = inviter.DisplayName()
	} else {
		log.Printf("⚠️  failed to resolve inviter %s: %v", invitation.InvitedBy, err)
	}

	expired := invitation.ExpiresAt.Before(time.Now())
	return &InvitationInfo{
		Email:       invitation.Email,
		ProjectName: project.Title,
		InvitedBy:   invitedBy,
		Expired:     expired,
		Valid:       invitation.Status == model.InvitationPending && !expired,
	}, nil
}
