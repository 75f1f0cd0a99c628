package services

import (
	"log"

	"github.com/prepwise/mock_interview/models"
	"github.com/prepwise/mock_interview/utils"
	"gorm.io/gorm"
)

// Scorer turns a finished transcript into a persisted, AI-scored answer.
type Scorer interface {
	ScoreAndSave(session *models.InterviewSession, question QuestionAnswer, transcript, userEmail string) (*models.AnswerRecord, error)
}

type AnswerService struct {
	db *gorm.DB
	ai *AIService
}

func NewAnswerService(db *gorm.DB, ai *AIService) *AnswerService {
	return &AnswerService{db: db, ai: ai}
}

// ScoreAndSave asks the AI to rate the transcript against the question, then
// replaces any previous answer for the (session, question) key. The delete
// and insert run inside one transaction so a crash cannot leave the question
// half-replaced.
func (s *AnswerService) ScoreAndSave(session *models.InterviewSession, question QuestionAnswer, transcript, userEmail string) (*models.AnswerRecord, error) {
	reply, err := s.ai.Chat(ScoringSystemPrompt, ScoringPrompt(question.Question, transcript))
	if err != nil {
		return nil, err
	}

	score, err := ParseScore(reply)
	if err != nil {
		log.Printf("Failed to parse scoring response for interview %s: %v", session.MockID, err)
		return nil, err
	}

	record := models.AnswerRecord{
		MockIDRef:  session.MockID,
		Question:   question.Question,
		CorrectAns: question.Answer,
		UserAns:    transcript,
		Feedback:   score.Feedback,
		Rating:     &score.Rating,
		UserEmail:  userEmail,
		CreatedOn:  utils.CreatedOnStamp(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mock_id_ref = ? AND question = ?", session.MockID, question.Question).
			Delete(&models.AnswerRecord{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}
