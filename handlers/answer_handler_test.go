package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmitAnswerApp() *fiber.App {
	app := fiber.New()
	app.Post("/interviews/:mockId/answers", SubmitAnswer)
	return app
}

func postAnswer(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/interviews/mock-1/answers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSubmitAnswer_RejectsShortTranscript(t *testing.T) {
	app := newSubmitAnswerApp()
	status := postAnswer(t, app, `{"question_index": 0, "transcript": "uh ok"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestSubmitAnswer_PaddingDoesNotBeatNoiseFloor(t *testing.T) {
	app := newSubmitAnswerApp()

	// Whitespace must not count toward the minimum transcript length.
	status := postAnswer(t, app, `{"question_index": 0, "transcript": "      uh ok      \n\t"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestSubmitAnswer_RejectsMissingQuestionIndex(t *testing.T) {
	app := newSubmitAnswerApp()
	status := postAnswer(t, app, `{"transcript": "A transcript that is long enough to score."}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
