package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"autohaus-service/internal/model"
	"autohaus-service/internal/repository"
)

const minPlausibleYear = 1960

// Fallback facet ranges for an empty inventory, so the filter UI always has
// something sensible to render.
const (
	fallbackPriceMax   = 100000
	fallbackMileageMax = 300000
	fallbackYearMin    = 1990
)

// VehicleStore is the persistence surface the vehicle service needs.
type VehicleStore interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	Update(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.VehicleListFilter) ([]model.Vehicle, int64, error)
	Facets(ctx context.Context) (repository.VehicleFacets, error)
}

// FacetCache holds the serialized filter options with a bounded TTL. A nil
// cache is valid and simply disables caching.
type FacetCache interface {
	Get(ctx context.Context) ([]byte, bool)
	Set(ctx context.Context, payload []byte)
	Invalidate(ctx context.Context)
}

type VehicleService struct {
	vehicles VehicleStore
	cache    FacetCache
}

func NewVehicleService(vehicles VehicleStore, cache FacetCache) *VehicleService {
	return &VehicleService{
		vehicles: vehicles,
		cache:    cache,
	}
}

// VehicleListResult is one page of matching vehicles plus the pagination
// bookkeeping the listing UI needs.
type VehicleListResult struct {
	Vehicles   []model.Vehicle `json:"vehicles"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

func (s *VehicleService) List(ctx context.Context, filter repository.VehicleListFilter) (*VehicleListResult, error) {
	if filter.Page < 1 {
		filter.Page = repository.DefaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = repository.DefaultLimit
	}
	if filter.Limit > repository.MaxLimit {
		filter.Limit = repository.MaxLimit
	}

	vehicles, total, err := s.vehicles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if vehicles == nil {
		vehicles = []model.Vehicle{}
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &VehicleListResult{
		Vehicles:   vehicles,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *VehicleService) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// VehicleInput carries the mutable vehicle fields. Nil pointers mean "not
// provided": required-field checks only apply on create, and updates leave
// absent fields untouched.
type VehicleInput struct {
	Title   *string `json:"title"`
	Brand   *string `json:"brand"`
	Model   *string `json:"model"`
	Variant *string `json:"variant"`
	Year    *int    `json:"year"`

	Price    *int `json:"price"`
	PriceMin *int `json:"priceMin"`
	PriceMax *int `json:"priceMax"`

	Mileage    *int `json:"mileage"`
	MileageMin *int `json:"mileageMin"`
	MileageMax *int `json:"mileageMax"`

	Transmission  *string `json:"transmission"`
	FuelType      *string `json:"fuelType"`
	Drivetrain    *string `json:"drivetrain"`
	ExteriorColor *string `json:"exteriorColor"`

	ImportSource *string    `json:"importSource"`
	AuctionGrade *string    `json:"auctionGrade"`
	ETA          *time.Time `json:"eta"`

	ListingType *string `json:"listingType"`
	Status      *string `json:"status"`

	Description *string               `json:"description"`
	Images      *[]model.VehicleImage `json:"images"`

	Featured  *bool `json:"featured"`
	Published *bool `json:"published"`
}

func (s *VehicleService) Create(ctx context.Context, input VehicleInput) (*model.Vehicle, error) {
	if input.Title == nil || input.Brand == nil || input.Model == nil ||
		input.Year == nil || input.ListingType == nil {
		return nil, ErrInvalidInput
	}
	if !plausibleYear(*input.Year) {
		return nil, ErrInvalidInput
	}

	listingType, ok := parseListingType(*input.ListingType)
	if !ok {
		return nil, ErrInvalidInput
	}

	vehicle := &model.Vehicle{
		Title:         *input.Title,
		Brand:         *input.Brand,
		Model:         *input.Model,
		Variant:       input.Variant,
		Year:          *input.Year,
		Price:         input.Price,
		PriceMin:      input.PriceMin,
		PriceMax:      input.PriceMax,
		Mileage:       input.Mileage,
		MileageMin:    input.MileageMin,
		MileageMax:    input.MileageMax,
		Drivetrain:    input.Drivetrain,
		ExteriorColor: input.ExteriorColor,
		ImportSource:  "Japan",
		AuctionGrade:  input.AuctionGrade,
		ETA:           input.ETA,
		ListingType:   listingType,
		Status:        model.VehicleStatusAvailable,
		Description:   input.Description,
		Images:        []model.VehicleImage{},
		Published:     true,
	}

	if input.Transmission != nil {
		transmission, ok := parseTransmission(*input.Transmission)
		if !ok {
			return nil, ErrInvalidInput
		}
		vehicle.Transmission = &transmission
	}
	if input.FuelType != nil {
		fuelType, ok := parseFuelType(*input.FuelType)
		if !ok {
			return nil, ErrInvalidInput
		}
		vehicle.FuelType = &fuelType
	}
	if input.Status != nil {
		status, ok := parseVehicleStatus(*input.Status)
		if !ok {
			return nil, ErrInvalidInput
		}
		vehicle.Status = status
	}
	if input.ImportSource != nil {
		vehicle.ImportSource = *input.ImportSource
	}
	if input.Images != nil {
		vehicle.Images = *input.Images
	}
	if input.Featured != nil {
		vehicle.Featured = *input.Featured
	}
	if input.Published != nil {
		vehicle.Published = *input.Published
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.invalidateFacets(ctx)
	return vehicle, nil
}

// Update applies a partial update: any subset of fields may be provided,
// including independent toggles of featured/status/published.
func (s *VehicleService) Update(ctx context.Context, id uuid.UUID, input VehicleInput) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		vehicle.Title = *input.Title
	}
	if input.Brand != nil {
		vehicle.Brand = *input.Brand
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Variant != nil {
		vehicle.Variant = input.Variant
	}
	if input.Year != nil {
		if !plausibleYear(*input.Year) {
			return nil, ErrInvalidInput
		}
		vehicle.Year = *input.Year
	}
	if input.Price != nil {
		vehicle.Price = input.Price
	}
	if input.PriceMin != nil {
		vehicle.PriceMin = input.PriceMin
	}
	if input.PriceMax != nil {
		vehicle.PriceMax = input.PriceMax
	}
	if input.Mileage != nil {
		vehicle.Mileage = input.Mileage
	}
	if input.MileageMin != nil {
		vehicle.MileageMin = input.MileageMin
	}
	if input.MileageMax != nil {
		vehicle.MileageMax = input.MileageMax
	}
	if input.Transmission != nil {
		transmission, ok := parseTransmission(*input.Transmission)
		if !ok {
			return nil, ErrInvalidInput
		}
		vehicle.Transmission = &transmission
	}
	if input.FuelType != nil {
		fuelType, ok := parseFuelType(*input.FuelType)
		if !ok {
			return nil, ErrInvalidInput
		}
		vehicle.FuelType = &fuelType
	}
	if input.Drivetrain != nil {
		vehicle.Drivetrain = input.Drivetrain
	}
	if input.ExteriorColor != nil {
		vehicle.ExteriorColor = input.ExteriorColor
	}
	if input.ImportSource != nil {
		vehicle.ImportSource = *input.ImportSource
	}
	if input.AuctionGrade != nil {
		vehicle.AuctionGrade = input.AuctionGrade
	}
	if input.ETA != nil {
		vehicle.ETA = input.ETA
	}
	if input.ListingType != nil {
		listingType, ok := parseListingType(*input.ListingType)
		if !ok {
			return nil, ErrInvalidInput
		}
		vehicle.ListingType = listingType
	}
	if input.Status != nil {
		status, ok := parseVehicleStatus(*input.Status)
		if !ok {
			return nil, ErrInvalidInput
		}
		vehicle.Status = status
	}
	if input.Description != nil {
		vehicle.Description = input.Description
	}
	if input.Images != nil {
		vehicle.Images = *input.Images
	}
	if input.Featured != nil {
		vehicle.Featured = *input.Featured
	}
	if input.Published != nil {
		vehicle.Published = *input.Published
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	s.invalidateFacets(ctx)
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.vehicles.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.invalidateFacets(ctx)
	return nil
}

// NumericRange is an observed min/max over published vehicles.
type NumericRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterOptions is the facet aggregate that populates the public filter UI.
type FilterOptions struct {
	Brands        []string            `json:"brands"`
	ModelsByBrand map[string][]string `json:"modelsByBrand"`
	Transmissions []string            `json:"transmissions"`
	FuelTypes     []string            `json:"fuelTypes"`
	ListingTypes  []string            `json:"listingTypes"`
	PriceRange    NumericRange        `json:"priceRange"`
	MileageRange  NumericRange        `json:"mileageRange"`
	YearRange     NumericRange        `json:"yearRange"`
}

// FilterOptions returns the cached facet aggregate, recomputing it from the
// store when the cache is cold. Store failures are not masked.
func (s *VehicleService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx); ok {
			options := &FilterOptions{}
			if err := json.Unmarshal(payload, options); err == nil {
				return options, nil
			}
		}
	}

	facets, err := s.vehicles.Facets(ctx)
	if err != nil {
		return nil, err
	}

	options := buildFilterOptions(facets)

	if s.cache != nil {
		if payload, err := json.Marshal(options); err == nil {
			s.cache.Set(ctx, payload)
		}
	}

	return options, nil
}

func buildFilterOptions(facets repository.VehicleFacets) *FilterOptions {
	options := &FilterOptions{
		Brands:        emptyIfNil(facets.Brands),
		ModelsByBrand: map[string][]string{},
		Transmissions: emptyIfNil(facets.Transmissions),
		FuelTypes:     emptyIfNil(facets.FuelTypes),
		ListingTypes:  emptyIfNil(facets.ListingTypes),
		PriceRange:    NumericRange{Min: 0, Max: fallbackPriceMax},
		MileageRange:  NumericRange{Min: 0, Max: fallbackMileageMax},
		YearRange:     NumericRange{Min: fallbackYearMin, Max: time.Now().Year()},
	}

	for _, pair := range facets.Models {
		options.ModelsByBrand[pair.Brand] = append(options.ModelsByBrand[pair.Brand], pair.Model)
	}

	if facets.PriceMin != nil {
		options.PriceRange.Min = *facets.PriceMin
	}
	if facets.PriceMax != nil {
		options.PriceRange.Max = *facets.PriceMax
	}
	if facets.MileageMin != nil {
		options.MileageRange.Min = *facets.MileageMin
	}
	if facets.MileageMax != nil {
		options.MileageRange.Max = *facets.MileageMax
	}
	if facets.YearMin != nil {
		options.YearRange.Min = *facets.YearMin
	}
	if facets.YearMax != nil {
		options.YearRange.Max = *facets.YearMax
	}

	return options
}

func (s *VehicleService) invalidateFacets(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func plausibleYear(year int) bool {
	return year >= minPlausibleYear && year <= time.Now().Year()+1
}

func parseListingType(raw string) (model.ListingType, bool) {
	switch model.ListingType(raw) {
	case model.ListingTypeOrderIt, model.ListingTypeSecureIt, model.ListingTypeBuyIt:
		return model.ListingType(raw), true
	}
	return "", false
}

func parseVehicleStatus(raw string) (model.VehicleStatus, bool) {
	switch model.VehicleStatus(raw) {
	case model.VehicleStatusAvailable, model.VehicleStatusInTransit, model.VehicleStatusSold:
		return model.VehicleStatus(raw), true
	}
	return "", false
}

func parseTransmission(raw string) (model.Transmission, bool) {
	switch model.Transmission(raw) {
	case model.TransmissionManual, model.TransmissionAutomatic:
		return model.Transmission(raw), true
	}
	return "", false
}

func parseFuelType(raw string) (model.FuelType, bool) {
	switch model.FuelType(raw) {
	case model.FuelTypePetrol, model.FuelTypeDiesel, model.FuelTypeHybrid, model.FuelTypeEV:
		return model.FuelType(raw), true
	}
	return "", false
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
