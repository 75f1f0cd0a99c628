package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswerRecord keys on (MockIDRef, Question); the question text is the
// natural key within a session, not a synthetic id. Replacing an answer is
// delete-then-insert inside one transaction, so at most one current row
// exists per key. Rating is nullable: the AI may decline to rate.
type AnswerRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MockIDRef  string    `gorm:"size:64;not null;index" json:"mock_id_ref"`
	Question   string    `gorm:"type:text;not null" json:"question"`
	CorrectAns string    `gorm:"type:text" json:"correct_ans"`
	UserAns    string    `gorm:"type:text;not null" json:"user_ans"`
	Feedback   string    `gorm:"type:text" json:"feedback"`
	Rating     *float64  `gorm:"type:numeric(4,1)" json:"rating"`
	UserEmail  string    `gorm:"size:255;not null" json:"user_email"`
	CreatedOn  string    `gorm:"size:20;not null" json:"created_on"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *AnswerRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
