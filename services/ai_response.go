package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ParseError marks an AI response that could not be turned into the expected
// payload. The triggering user action is aborted; nothing is retried.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ai response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// QuestionAnswer is one entry of a session's canonical question set.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Score is the result of the answer-scoring path. Rating is clamped to the
// 0-10 scale; the model occasionally wanders outside it.
type Score struct {
	Rating   float64 `json:"rating"`
	Feedback string  `json:"feedback"`
}

// StripCodeFences removes a leading/trailing markdown code fence (with an
// optional language tag) and trims surrounding whitespace. Stripping an
// already-stripped payload is a no-op.
func StripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

// ParseQuestionSet validates the question-generation response: the top-level
// value must be a JSON array of {question, answer} objects. Anything else is
// rejected, never coerced.
func ParseQuestionSet(raw string) ([]QuestionAnswer, error) {
	cleaned := StripCodeFences(raw)

	var probe interface{}
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, &ParseError{Reason: "not valid JSON", Err: err}
	}
	if _, ok := probe.([]interface{}); !ok {
		return nil, &ParseError{Reason: "expected a JSON array at the top level"}
	}

	var questions []QuestionAnswer
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, &ParseError{Reason: "array items are not {question, answer} objects", Err: err}
	}
	for i, q := range questions {
		if q.Question == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("item %d has no question text", i)}
		}
	}
	return questions, nil
}

// ParseScore validates the answer-scoring response: an object with a numeric
// rating and a string feedback, both required.
func ParseScore(raw string) (*Score, error) {
	cleaned := StripCodeFences(raw)

	var payload struct {
		Rating   *float64 `json:"rating"`
		Feedback *string  `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &ParseError{Reason: "not a valid JSON object", Err: err}
	}
	if payload.Rating == nil {
		return nil, &ParseError{Reason: "missing numeric rating"}
	}
	if payload.Feedback == nil {
		return nil, &ParseError{Reason: "missing feedback text"}
	}

	return &Score{
		Rating:   clampRating(*payload.Rating),
		Feedback: *payload.Feedback,
	}, nil
}

func clampRating(r float64) float64 {
	return math.Max(0, math.Min(10, r))
}

// DecodeStoredQuestionSet normalizes the encodings a stored session may carry:
// the current bare array, or the legacy object wrappers under "questions" or
// "questions_and_answers". Unknown shapes are a decode error, not an empty set.
func DecodeStoredQuestionSet(raw string) ([]QuestionAnswer, error) {
	var questions []QuestionAnswer
	if err := json.Unmarshal([]byte(raw), &questions); err == nil {
		return questions, nil
	}

	var wrapped struct {
		Questions           []QuestionAnswer `json:"questions"`
		QuestionsAndAnswers []QuestionAnswer `json:"questions_and_answers"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, &ParseError{Reason: "stored question set is not decodable", Err: err}
	}
	if wrapped.Questions != nil {
		return wrapped.Questions, nil
	}
	if wrapped.QuestionsAndAnswers != nil {
		return wrapped.QuestionsAndAnswers, nil
	}
	return nil, &ParseError{Reason: "stored question set has an unknown shape"}
}
