package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"autohaus-service/internal/model"
)

type FormSubmissionRepository struct {
	db *gorm.DB
}

func NewFormSubmissionRepository(db *gorm.DB) *FormSubmissionRepository {
	return &FormSubmissionRepository{db: db}
}

func (r *FormSubmissionRepository) Create(ctx context.Context, submission *model.FormSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *FormSubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FormSubmission, error) {
	var submission model.FormSubmission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *FormSubmissionRepository) List(ctx context.Context) ([]model.FormSubmission, error) {
	var submissions []model.FormSubmission
	err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *FormSubmissionRepository) Update(ctx context.Context, submission *model.FormSubmission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *FormSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.FormSubmission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
