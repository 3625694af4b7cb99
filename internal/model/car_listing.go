package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarListingStatus string

const (
	CarListingStatusAvailable CarListingStatus = "available"
	CarListingStatusSold      CarListingStatus = "sold"
)

// CarListing is the legacy flat listing collection kept for the original
// public listings page. New inventory lives in Vehicle.
type CarListing struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Make        string           `gorm:"type:varchar(100);not null" json:"make"`
	Model       string           `gorm:"type:varchar(100);not null" json:"model"`
	Year        int              `gorm:"not null" json:"year"`
	Price       int              `gorm:"not null" json:"price"`
	Mileage     int              `gorm:"not null" json:"mileage"`
	Description *string          `gorm:"type:text" json:"description,omitempty"`
	Images      []string         `gorm:"serializer:json;type:jsonb" json:"images"`
	Status      CarListingStatus `gorm:"type:car_listing_status;not null;default:available;index" json:"status"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"createdAt"`
}

func (CarListing) TableName() string {
	return "car_listings"
}

func (l *CarListing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
