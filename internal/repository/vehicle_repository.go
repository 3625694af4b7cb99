package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"autohaus-service/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Vehicle{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List executes the filter and returns one page of vehicles together with the
// total size of the matching set.
func (r *VehicleRepository) List(ctx context.Context, filter VehicleListFilter) ([]model.Vehicle, int64, error) {
	query := filter.Apply(r.db.WithContext(ctx).Model(&model.Vehicle{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []model.Vehicle
	err := query.
		Order(filter.orderClause()).
		Limit(filter.limit()).
		Offset(filter.offset()).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

// BrandModels is one brand's distinct model list.
type BrandModels struct {
	Brand string
	Model string
}

// VehicleFacets is the raw facet data derived from published vehicles. Range
// bounds are nil when no published vehicle carries the measurement.
type VehicleFacets struct {
	Brands        []string
	Models        []BrandModels
	Transmissions []string
	FuelTypes     []string
	ListingTypes  []string
	PriceMin      *int
	PriceMax      *int
	MileageMin    *int
	MileageMax    *int
	YearMin       *int
	YearMax       *int
}

// Facets computes the distinct filter values and numeric ranges over published
// vehicles only. Effective price/mileage takes the exact value when present,
// otherwise the corresponding range bound.
func (r *VehicleRepository) Facets(ctx context.Context) (VehicleFacets, error) {
	facets := VehicleFacets{}
	published := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Vehicle{}).Where("published = ?", true)
	}

	if err := published().
		Distinct().
		Order("brand").
		Pluck("brand", &facets.Brands).Error; err != nil {
		return facets, err
	}

	if err := published().
		Distinct("brand", "model").
		Order("brand").Order("model").
		Scan(&facets.Models).Error; err != nil {
		return facets, err
	}

	if err := published().
		Where("transmission IS NOT NULL").
		Distinct().
		Order("transmission").
		Pluck("transmission", &facets.Transmissions).Error; err != nil {
		return facets, err
	}

	if err := published().
		Where("fuel_type IS NOT NULL").
		Distinct().
		Order("fuel_type").
		Pluck("fuel_type", &facets.FuelTypes).Error; err != nil {
		return facets, err
	}

	if err := published().
		Distinct().
		Order("listing_type").
		Pluck("listing_type", &facets.ListingTypes).Error; err != nil {
		return facets, err
	}

	var ranges struct {
		PriceMin   *int
		PriceMax   *int
		MileageMin *int
		MileageMax *int
		YearMin    *int
		YearMax    *int
	}
	err := published().
		Select(
			"MIN(COALESCE(price, price_min)) AS price_min",
			"MAX(COALESCE(price, price_max)) AS price_max",
			"MIN(COALESCE(mileage, mileage_min)) AS mileage_min",
			"MAX(COALESCE(mileage, mileage_max)) AS mileage_max",
			"MIN(year) AS year_min",
			"MAX(year) AS year_max",
		).
		Scan(&ranges).Error
	if err != nil {
		return facets, err
	}

	facets.PriceMin = ranges.PriceMin
	facets.PriceMax = ranges.PriceMax
	facets.MileageMin = ranges.MileageMin
	facets.MileageMax = ranges.MileageMax
	facets.YearMin = ranges.YearMin
	facets.YearMax = ranges.YearMax

	return facets, nil
}
