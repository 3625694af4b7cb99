package service

import (
	"net/url"
	"strconv"
	"strings"

	"autohaus-service/internal/repository"
)

// ParseVehicleListOptions turns the raw listing query bag into a typed filter.
// Filter parameters are advisory: malformed numeric values are dropped rather
// than rejected, since they typically come from a half-edited filter UI.
// includeAll is honored only for authorized callers; everyone else is pinned
// to published vehicles.
func ParseVehicleListOptions(values url.Values, authorized bool) repository.VehicleListFilter {
	filter := repository.VehicleListFilter{
		Search:       optionalString(values.Get("search")),
		Brand:        optionalString(values.Get("brand")),
		Model:        optionalString(values.Get("model")),
		Transmission: optionalString(values.Get("transmission")),
		FuelType:     optionalString(values.Get("fuelType")),
		ListingType:  optionalString(values.Get("listingType")),
		Status:       optionalString(values.Get("status")),

		YearMin:    optionalInt(values.Get("yearMin")),
		YearMax:    optionalInt(values.Get("yearMax")),
		PriceMin:   optionalInt(values.Get("priceMin")),
		PriceMax:   optionalInt(values.Get("priceMax")),
		MileageMin: optionalInt(values.Get("mileageMin")),
		MileageMax: optionalInt(values.Get("mileageMax")),

		// Only the literal "true" filters; anything else means "don't care".
		Featured:   values.Get("featured") == "true",
		IncludeAll: authorized && values.Get("includeAll") == "true",

		SortBy:    strings.TrimSpace(values.Get("sortBy")),
		SortOrder: strings.TrimSpace(values.Get("sortOrder")),

		Page:  intWithDefault(values.Get("page"), repository.DefaultPage),
		Limit: intWithDefault(values.Get("limit"), repository.DefaultLimit),
	}

	if filter.SortBy == "" {
		filter.SortBy = "createdAt"
	}
	if filter.SortOrder != "asc" {
		filter.SortOrder = "desc"
	}

	if filter.Page < 1 {
		filter.Page = repository.DefaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = repository.DefaultLimit
	}
	if filter.Limit > repository.MaxLimit {
		filter.Limit = repository.MaxLimit
	}

	return filter
}

func optionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func optionalInt(raw string) *int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &parsed
}

func intWithDefault(raw string, fallback int) int {
	parsed := optionalInt(raw)
	if parsed == nil {
		return fallback
	}
	return *parsed
}
