package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingType string

const (
	ListingTypeOrderIt  ListingType = "Order It"
	ListingTypeSecureIt ListingType = "Secure It"
	ListingTypeBuyIt    ListingType = "Buy It"
)

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "Available"
	VehicleStatusInTransit VehicleStatus = "In Transit"
	VehicleStatusSold      VehicleStatus = "Sold"
)

type Transmission string

// Canonical storage-level set. The admin UI historically offered CVT and DCT
// as well; those were never accepted by the store and are not widened here.
const (
	TransmissionManual    Transmission = "Manual"
	TransmissionAutomatic Transmission = "Automatic"
)

type FuelType string

const (
	FuelTypePetrol FuelType = "Petrol"
	FuelTypeDiesel FuelType = "Diesel"
	FuelTypeHybrid FuelType = "Hybrid"
	FuelTypeEV     FuelType = "EV"
)

// VehicleImage is one entry of a vehicle's ordered gallery. StorageID is the
// image store's handle, kept so the image can be deleted later.
type VehicleImage struct {
	URL       string `json:"url"`
	StorageID string `json:"storageId"`
	Order     int    `json:"order"`
}

// Vehicle is one importable car listing. Price and mileage each have a dual
// shape: an exact value, a range, or neither may be present.
type Vehicle struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Title   string    `gorm:"type:text;not null" json:"title"`
	Brand   string    `gorm:"type:varchar(100);not null;index" json:"brand"`
	Model   string    `gorm:"type:varchar(100);not null;index" json:"model"`
	Variant *string   `gorm:"type:varchar(100)" json:"variant,omitempty"`
	Year    int       `gorm:"not null;index" json:"year"`

	Price    *int `json:"price,omitempty"`
	PriceMin *int `json:"priceMin,omitempty"`
	PriceMax *int `json:"priceMax,omitempty"`

	Mileage    *int `json:"mileage,omitempty"`
	MileageMin *int `json:"mileageMin,omitempty"`
	MileageMax *int `json:"mileageMax,omitempty"`

	Transmission  *Transmission `gorm:"type:varchar(20);index" json:"transmission,omitempty"`
	FuelType      *FuelType     `gorm:"type:varchar(20);index" json:"fuelType,omitempty"`
	Drivetrain    *string       `gorm:"type:varchar(50)" json:"drivetrain,omitempty"`
	ExteriorColor *string       `gorm:"type:varchar(50)" json:"exteriorColor,omitempty"`

	ImportSource string     `gorm:"type:varchar(100);not null;default:Japan" json:"importSource"`
	AuctionGrade *string    `gorm:"type:varchar(20)" json:"auctionGrade,omitempty"`
	ETA          *time.Time `json:"eta,omitempty"`

	ListingType ListingType   `gorm:"type:listing_type;not null;index" json:"listingType"`
	Status      VehicleStatus `gorm:"type:vehicle_status;not null;default:Available;index" json:"status"`

	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Images      []VehicleImage `gorm:"serializer:json;type:jsonb" json:"images"`

	Featured  bool `gorm:"not null;default:false" json:"featured"`
	Published bool `gorm:"not null;default:true" json:"published"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
