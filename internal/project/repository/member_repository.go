package repository

import (
	"context"
	"errors"

	"taskboard/internal/project/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Add inserts a membership row. A duplicate (project, user) pair returns
// ErrDuplicateMember, including when two requests race: the unique
// constraint decides, not the caller's earlier existence check.
func (r *MemberRepository) Add(ctx context.Context, member *model.ProjectMember) error {
	err := r.db.WithContext(ctx).Create(member).Error
	if isUniqueViolation(err) {
		return ErrDuplicateMember
	}
	return err
}

func (r *MemberRepository) Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *MemberRepository) Find(ctx context.Context, projectID, userID uuid.UUID) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	var members []model.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

func (r *MemberRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProjectMember{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *MemberRepository) Remove(ctx context.Context, member *model.ProjectMember) error {
	return r.db.WithContext(ctx).Delete(member).Error
}
