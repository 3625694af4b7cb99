package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"autohaus-service/internal/model"
)

type CarListingRepository struct {
	db *gorm.DB
}

func NewCarListingRepository(db *gorm.DB) *CarListingRepository {
	return &CarListingRepository{db: db}
}

func (r *CarListingRepository) Create(ctx context.Context, listing *model.CarListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *CarListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CarListing, error) {
	var listing model.CarListing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// List returns listings newest first, optionally narrowed to one status.
func (r *CarListingRepository) List(ctx context.Context, status *model.CarListingStatus) ([]model.CarListing, error) {
	query := r.db.WithContext(ctx).Model(&model.CarListing{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var listings []model.CarListing
	err := query.Order("created_at DESC").Find(&listings).Error
	return listings, err
}

func (r *CarListingRepository) Update(ctx context.Context, listing *model.CarListing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *CarListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CarListing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
