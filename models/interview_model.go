package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterviewSession is written once at creation time. QuestionSet holds the
// AI-generated questions verbatim as JSON text; question N of the interview
// is always element N of that array.
type InterviewSession struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MockID          string    `gorm:"size:64;not null;uniqueIndex" json:"mock_id"`
	JobPosition     string    `gorm:"size:255;not null" json:"job_position"`
	JobDescription  string    `gorm:"type:text;not null" json:"job_description"`
	YearsExperience string    `gorm:"size:20;not null" json:"years_experience"`
	QuestionSet     string    `gorm:"type:text;not null" json:"-"`
	CreatedBy       string    `gorm:"size:255;not null;index" json:"created_by"`
	CreatedOn       string    `gorm:"size:20;not null" json:"created_on"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (s *InterviewSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
