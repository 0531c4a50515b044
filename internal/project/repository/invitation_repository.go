package repository

import (
	"context"
	"errors"

	"taskboard/internal/project/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create inserts a PENDING invitation. The partial unique index on
// (project_id, email) WHERE status = 'PENDING' turns a concurrent duplicate
// into ErrDuplicateInvitation instead of two live invitations.
func (r *InvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	err := r.db.WithContext(ctx).Create(invitation).Error
	if isUniqueViolation(err) {
		return ErrDuplicateInvitation
	}
	return err
}

func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepository) ExistsPending(ctx context.Context, projectID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("project_id = ? AND email = ? AND status = ?", projectID, email, model.InvitationPending).
		Count(&count).Error
	return count > 0, err
}

func (r *InvitationRepository) Update(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Save(invitation).Error
}
