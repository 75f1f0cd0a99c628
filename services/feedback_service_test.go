package services

import (
	"testing"
	"time"

	"github.com/prepwise/mock_interview/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(v float64) *float64 { return &v }

func TestDedupAnswers_KeepsNewestPerQuestion(t *testing.T) {
	t0 := time.Now().Add(-time.Hour)
	t1 := time.Now()

	// Newest-first, the order the feedback query returns.
	records := []models.AnswerRecord{
		{Question: "A", Rating: rating(8), CreatedAt: t1},
		{Question: "A", Rating: rating(5), CreatedAt: t0},
		{Question: "B", Rating: nil, CreatedAt: t0},
	}

	deduped := DedupAnswers(records)
	require.Len(t, deduped, 2)
	assert.Equal(t, "A", deduped[0].Question)
	require.NotNil(t, deduped[0].Rating)
	assert.Equal(t, 8.0, *deduped[0].Rating)
	assert.Equal(t, "B", deduped[1].Question)
}

func TestAverageRating_ExcludesUnrated(t *testing.T) {
	records := []models.AnswerRecord{
		{Question: "A", Rating: rating(8)},
		{Question: "B", Rating: rating(5)},
		{Question: "C", Rating: nil},
	}

	avg := AverageRating(records)
	require.NotNil(t, avg)
	assert.Equal(t, 6.5, *avg)
}

func TestAverageRating_RoundsToOneDecimal(t *testing.T) {
	records := []models.AnswerRecord{
		{Question: "A", Rating: rating(7)},
		{Question: "B", Rating: rating(8)},
		{Question: "C", Rating: rating(8)},
	}

	avg := AverageRating(records)
	require.NotNil(t, avg)
	assert.Equal(t, 7.7, *avg)
}

func TestAverageRating_AbsentWhenNothingRated(t *testing.T) {
	assert.Nil(t, AverageRating(nil))
	assert.Nil(t, AverageRating([]models.AnswerRecord{{Question: "A"}}))
}
