package services

import (
	"math"

	"github.com/prepwise/mock_interview/models"
)

// DedupAnswers keeps the first occurrence of each question text. Records are
// expected newest-first, so the survivor is the most recent answer and any
// stale row left behind by a lost replace race is hidden.
func DedupAnswers(records []models.AnswerRecord) []models.AnswerRecord {
	seen := make(map[string]bool, len(records))
	deduped := make([]models.AnswerRecord, 0, len(records))
	for _, r := range records {
		if seen[r.Question] {
			continue
		}
		seen[r.Question] = true
		deduped = append(deduped, r)
	}
	return deduped
}

// AverageRating is the mean of all non-nil ratings rounded to one decimal
// place, or nil when nothing has been rated. Unrated answers are excluded
// from the mean, not counted as zero.
func AverageRating(records []models.AnswerRecord) *float64 {
	var sum float64
	var count int
	for _, r := range records {
		if r.Rating == nil {
			continue
		}
		sum += *r.Rating
		count++
	}
	if count == 0 {
		return nil
	}
	avg := math.Round(sum/float64(count)*10) / 10
	return &avg
}
