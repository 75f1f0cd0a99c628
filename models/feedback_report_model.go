package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackReport struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MockIDRef     string    `gorm:"size:64;not null;index" json:"mock_id_ref"`
	UserEmail     string    `gorm:"size:255;not null" json:"user_email"`
	AverageRating *float64  `gorm:"type:numeric(4,1)" json:"average_rating"`
	ReportURL     string    `gorm:"size:512;not null" json:"report_url"`
	GeneratedAt   time.Time `gorm:"not null" json:"generated_at"`

	CreatedAt time.Time `json:"-"`
}

func (r *FeedbackReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
