package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Blog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Title           string    `gorm:"type:text;not null" json:"title"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	Author          string    `gorm:"type:varchar(100);not null" json:"author"`
	PublicationDate time.Time `gorm:"not null;default:now();index" json:"publicationDate"`
	Images          []string  `gorm:"serializer:json;type:jsonb" json:"images"`
	Tags            []string  `gorm:"serializer:json;type:jsonb" json:"tags"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Blog) TableName() string {
	return "blogs"
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
