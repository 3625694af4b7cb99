package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormSubmission is a contact/enquiry form entry from the public site.
type FormSubmission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Email       string    `gorm:"type:varchar(200);not null" json:"email"`
	Phone       *string   `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Vehicle     *string   `gorm:"type:text" json:"vehicle,omitempty"`
	Budget      *string   `gorm:"type:varchar(100)" json:"budget,omitempty"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
	SubmittedAt time.Time `gorm:"not null;default:now();index" json:"submittedAt"`
}

func (FormSubmission) TableName() string {
	return "form_submissions"
}

func (f *FormSubmission) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.SubmittedAt.IsZero() {
		f.SubmittedAt = time.Now()
	}
	return nil
}
