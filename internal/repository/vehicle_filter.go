package repository

import (
	"fmt"
	"math"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 60
)

// VehicleListFilter is the fully-optional, strongly-typed form of the raw
// listing query parameters. Nil means the parameter was absent or malformed
// and must not constrain the query.
type VehicleListFilter struct {
	Search       *string
	Brand        *string
	Model        *string
	Transmission *string
	FuelType     *string
	ListingType  *string
	Status       *string

	YearMin    *int
	YearMax    *int
	PriceMin   *int
	PriceMax   *int
	MileageMin *int
	MileageMax *int

	// Featured narrows to featured vehicles only when true; false means
	// "don't care", never "not featured".
	Featured bool

	// IncludeAll lifts the published gate. Callers must only set it for
	// authenticated operators.
	IncludeAll bool

	SortBy    string
	SortOrder string

	Page  int
	Limit int
}

// sortColumns is the allow-list of sortable columns, keyed by the public
// parameter name.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"price":     "price",
	"year":      "year",
	"mileage":   "mileage",
	"brand":     "brand",
	"model":     "model",
	"title":     "title",
}

func (f VehicleListFilter) page() int {
	if f.Page < 1 {
		return DefaultPage
	}
	return f.Page
}

func (f VehicleListFilter) limit() int {
	switch {
	case f.Limit < 1:
		return DefaultLimit
	case f.Limit > MaxLimit:
		return MaxLimit
	default:
		return f.Limit
	}
}

func (f VehicleListFilter) offset() int {
	return (f.page() - 1) * f.limit()
}

// orderClause returns a deterministic ORDER BY built only from allow-listed
// columns; unknown sort keys fall back to created_at. The id tie-break keeps
// pagination stable for equal sort keys.
func (f VehicleListFilter) orderClause() string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s, id %s", column, direction, direction)
}

// Apply attaches every active predicate to query. Grouping matters: the price
// and mileage dual-shape clauses are each an OR of (exact in range) and
// (interval overlap), and the two groups are combined with AND so a vehicle
// must satisfy both active range filters, not just one.
func (f VehicleListFilter) Apply(query *gorm.DB) *gorm.DB {
	group := func() *gorm.DB {
		return query.Session(&gorm.Session{NewDB: true})
	}

	if f.Search != nil {
		pattern := "%" + *f.Search + "%"
		query = query.Where(
			group().
				Where("title ILIKE ?", pattern).
				Or("brand ILIKE ?", pattern).
				Or("model ILIKE ?", pattern).
				Or("variant ILIKE ?", pattern).
				Or("description ILIKE ?", pattern),
		)
	}

	if f.Brand != nil {
		query = query.Where("brand = ?", *f.Brand)
	}
	if f.Model != nil {
		query = query.Where("model = ?", *f.Model)
	}
	if f.Transmission != nil {
		query = query.Where("transmission = ?", *f.Transmission)
	}
	if f.FuelType != nil {
		query = query.Where("fuel_type = ?", *f.FuelType)
	}
	if f.ListingType != nil {
		query = query.Where("listing_type = ?", *f.ListingType)
	}
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.Featured {
		query = query.Where("featured = ?", true)
	}
	if !f.IncludeAll {
		query = query.Where("published = ?", true)
	}

	if f.YearMin != nil {
		query = query.Where("year >= ?", *f.YearMin)
	}
	if f.YearMax != nil {
		query = query.Where("year <= ?", *f.YearMax)
	}

	if f.PriceMin != nil || f.PriceMax != nil {
		lo, hi := rangeBounds(f.PriceMin, f.PriceMax)
		query = query.Where(
			group().
				Where("price >= ? AND price <= ?", lo, hi).
				Or("price_min <= ? AND price_max >= ?", hi, lo),
		)
	}

	if f.MileageMin != nil || f.MileageMax != nil {
		lo, hi := rangeBounds(f.MileageMin, f.MileageMax)
		query = query.Where(
			group().
				Where("mileage >= ? AND mileage <= ?", lo, hi).
				Or("mileage_min <= ? AND mileage_max >= ?", hi, lo),
		)
	}

	return query
}

// rangeBounds resolves open-ended bounds: a missing lower bound is 0, a
// missing upper bound is effectively unbounded.
func rangeBounds(min, max *int) (int, int) {
	lo := 0
	hi := math.MaxInt32
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	return lo, hi
}
