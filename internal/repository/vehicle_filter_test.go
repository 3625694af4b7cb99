package repository

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"autohaus-service/internal/model"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func buildListSQL(t *testing.T, db *gorm.DB, filter VehicleListFilter) (string, []interface{}) {
	t.Helper()
	tx := filter.Apply(db.Model(&model.Vehicle{})).
		Order(filter.orderClause()).
		Limit(filter.limit()).
		Offset(filter.offset()).
		Find(&[]model.Vehicle{})
	require.NoError(t, tx.Error)
	return tx.Statement.SQL.String(), tx.Statement.Vars
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func TestVehicleListFilter_PublishedGate(t *testing.T) {
	db := newDryRunDB(t)

	sql, vars := buildListSQL(t, db, VehicleListFilter{})
	assert.Contains(t, sql, "published = ?")
	assert.Contains(t, vars, true)

	sql, _ = buildListSQL(t, db, VehicleListFilter{IncludeAll: true})
	assert.NotContains(t, sql, "published")
}

func TestVehicleListFilter_FeaturedOnlyWhenTrue(t *testing.T) {
	db := newDryRunDB(t)

	sql, _ := buildListSQL(t, db, VehicleListFilter{Featured: true})
	assert.Contains(t, sql, "featured = ?")

	sql, _ = buildListSQL(t, db, VehicleListFilter{Featured: false})
	assert.NotContains(t, sql, "featured")
}

func TestVehicleListFilter_SearchSpansTextColumns(t *testing.T) {
	db := newDryRunDB(t)

	sql, vars := buildListSQL(t, db, VehicleListFilter{
		Search:     strPtr("skyline"),
		IncludeAll: true,
	})

	for _, column := range []string{"title", "brand", "model", "variant", "description"} {
		assert.Contains(t, sql, column+" ILIKE ?")
	}

	count := 0
	for _, v := range vars {
		if v == "%skyline%" {
			count++
		}
	}
	assert.Equal(t, 5, count)
}

func TestVehicleListFilter_PriceDualShape(t *testing.T) {
	db := newDryRunDB(t)

	sql, vars := buildListSQL(t, db, VehicleListFilter{
		PriceMin:   intPtr(5000),
		PriceMax:   intPtr(20000),
		IncludeAll: true,
	})

	assert.Contains(t, sql, "price >= ? AND price <= ?")
	assert.Contains(t, sql, "price_min <= ? AND price_max >= ?")
	assert.Contains(t, sql, " OR ")

	// Exact clause binds (lo, hi); the overlap clause binds (hi, lo).
	assert.Equal(t, []interface{}{5000, 20000, 20000, 5000}, vars[:4])
}

func TestVehicleListFilter_OpenEndedBounds(t *testing.T) {
	db := newDryRunDB(t)

	_, vars := buildListSQL(t, db, VehicleListFilter{
		MileageMax: intPtr(80000),
		IncludeAll: true,
	})

	assert.Equal(t, []interface{}{0, 80000, 80000, 0}, vars[:4])

	_, vars = buildListSQL(t, db, VehicleListFilter{
		MileageMin: intPtr(30000),
		IncludeAll: true,
	})

	assert.Equal(t, []interface{}{30000, math.MaxInt32, math.MaxInt32, 30000}, vars[:4])
}

func TestVehicleListFilter_PriceAndMileageCombineWithAND(t *testing.T) {
	db := newDryRunDB(t)

	sql, vars := buildListSQL(t, db, VehicleListFilter{
		PriceMax:   intPtr(15000),
		MileageMax: intPtr(100000),
		IncludeAll: true,
	})

	priceAt := strings.Index(sql, "price_min <= ?")
	mileageAt := strings.Index(sql, "mileage >= ?")
	require.Greater(t, priceAt, -1)
	require.Greater(t, mileageAt, -1)
	require.Less(t, priceAt, mileageAt)
	assert.Contains(t, sql[priceAt:mileageAt], "AND")

	// Both groups bind independently: price first, then mileage.
	assert.Equal(t, []interface{}{0, 15000, 15000, 0, 0, 100000, 100000, 0}, vars[:8])
}

func TestVehicleListFilter_ExactMatchPredicates(t *testing.T) {
	db := newDryRunDB(t)

	sql, vars := buildListSQL(t, db, VehicleListFilter{
		Brand:        strPtr("Nissan"),
		Transmission: strPtr("Manual"),
		FuelType:     strPtr("Petrol"),
		YearMin:      intPtr(2010),
		YearMax:      intPtr(2020),
		IncludeAll:   true,
	})

	assert.Contains(t, sql, "brand = ?")
	assert.Contains(t, sql, "transmission = ?")
	assert.Contains(t, sql, "fuel_type = ?")
	assert.Contains(t, sql, "year >= ?")
	assert.Contains(t, sql, "year <= ?")
	assert.Contains(t, vars, "Nissan")
	assert.Contains(t, vars, 2010)
	assert.Contains(t, vars, 2020)
}

func TestVehicleListFilter_OrderClause(t *testing.T) {
	tests := []struct {
		name   string
		filter VehicleListFilter
		want   string
	}{
		{"default", VehicleListFilter{}, "created_at DESC, id DESC"},
		{"price_asc", VehicleListFilter{SortBy: "price", SortOrder: "asc"}, "price ASC, id ASC"},
		{"unknown_column", VehicleListFilter{SortBy: "passwordHash"}, "created_at DESC, id DESC"},
		{"camel_case_mapped", VehicleListFilter{SortBy: "updatedAt", SortOrder: "asc"}, "updated_at ASC, id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.orderClause())
		})
	}
}

func TestVehicleListFilter_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		filter     VehicleListFilter
		wantLimit  int
		wantOffset int
	}{
		{"defaults", VehicleListFilter{}, DefaultLimit, 0},
		{"second_page", VehicleListFilter{Page: 2, Limit: 12}, 12, 12},
		{"capped_limit", VehicleListFilter{Page: 1, Limit: 1000}, MaxLimit, 0},
		{"negative_page", VehicleListFilter{Page: -5, Limit: 10}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLimit, tt.filter.limit())
			assert.Equal(t, tt.wantOffset, tt.filter.offset())
		})
	}
}
