package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"autohaus-service/internal/model"
)

// CarListingStore is the persistence surface for the legacy listing pages.
type CarListingStore interface {
	Create(ctx context.Context, listing *model.CarListing) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CarListing, error)
	List(ctx context.Context, status *model.CarListingStatus) ([]model.CarListing, error)
	Update(ctx context.Context, listing *model.CarListing) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CarListingService struct {
	listings CarListingStore
}

func NewCarListingService(listings CarListingStore) *CarListingService {
	return &CarListingService{listings: listings}
}

type CarListingInput struct {
	Make        *string   `json:"make"`
	Model       *string   `json:"model"`
	Year        *int      `json:"year"`
	Price       *int      `json:"price"`
	Mileage     *int      `json:"mileage"`
	Description *string   `json:"description"`
	Images      *[]string `json:"images"`
	Status      *string   `json:"status"`
}

func (s *CarListingService) Create(ctx context.Context, input CarListingInput) (*model.CarListing, error) {
	if input.Make == nil || input.Model == nil || input.Year == nil ||
		input.Price == nil || input.Mileage == nil {
		return nil, ErrInvalidInput
	}

	listing := &model.CarListing{
		Make:        *input.Make,
		Model:       *input.Model,
		Year:        *input.Year,
		Price:       *input.Price,
		Mileage:     *input.Mileage,
		Description: input.Description,
		Images:      []string{},
		Status:      model.CarListingStatusAvailable,
	}
	if input.Images != nil {
		listing.Images = *input.Images
	}
	if input.Status != nil {
		status, ok := parseCarListingStatus(*input.Status)
		if !ok {
			return nil, ErrInvalidInput
		}
		listing.Status = status
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// ListAvailable serves the public listings page: available cars only.
func (s *CarListingService) ListAvailable(ctx context.Context) ([]model.CarListing, error) {
	status := model.CarListingStatusAvailable
	listings, err := s.listings.List(ctx, &status)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []model.CarListing{}
	}
	return listings, nil
}

func (s *CarListingService) Update(ctx context.Context, id uuid.UUID, input CarListingInput) (*model.CarListing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Make != nil {
		listing.Make = *input.Make
	}
	if input.Model != nil {
		listing.Model = *input.Model
	}
	if input.Year != nil {
		listing.Year = *input.Year
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if input.Mileage != nil {
		listing.Mileage = *input.Mileage
	}
	if input.Description != nil {
		listing.Description = input.Description
	}
	if input.Images != nil {
		listing.Images = *input.Images
	}
	if input.Status != nil {
		status, ok := parseCarListingStatus(*input.Status)
		if !ok {
			return nil, ErrInvalidInput
		}
		listing.Status = status
	}

	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *CarListingService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.listings.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func parseCarListingStatus(raw string) (model.CarListingStatus, bool) {
	switch model.CarListingStatus(raw) {
	case model.CarListingStatusAvailable, model.CarListingStatusSold:
		return model.CarListingStatus(raw), true
	}
	return "", false
}
