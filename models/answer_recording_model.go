package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswerRecording tracks a media clip the browser uploaded directly to
// Cloudinary with a server-issued signature.
type AnswerRecording struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MockIDRef string    `gorm:"size:64;not null;index" json:"mock_id_ref"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	PublicID  string    `gorm:"size:255;not null" json:"public_id"`
	SecureURL string    `gorm:"size:512;not null" json:"secure_url"`
	UserEmail string    `gorm:"size:255;not null" json:"user_email"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *AnswerRecording) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
