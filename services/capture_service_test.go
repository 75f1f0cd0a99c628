package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prepwise/mock_interview/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

type fakePermission struct {
	granted bool
}

func (p *fakePermission) Granted() bool { return p.granted }

type fakeScorer struct {
	mu      sync.Mutex
	calls   int
	lastIn  string
	err     error
	release chan struct{} // when set, ScoreAndSave blocks until closed
}

func (s *fakeScorer) ScoreAndSave(session *models.InterviewSession, question QuestionAnswer, transcript, userEmail string) (*models.AnswerRecord, error) {
	s.mu.Lock()
	s.calls++
	s.lastIn = transcript
	release := s.release
	s.mu.Unlock()

	if release != nil {
		<-release
	}
	if s.err != nil {
		return nil, s.err
	}
	r := 7.0
	return &models.AnswerRecord{
		MockIDRef: session.MockID,
		Question:  question.Question,
		UserAns:   transcript,
		Rating:    &r,
		UserEmail: userEmail,
	}, nil
}

func (s *fakeScorer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeSpeechInput struct {
	ch chan string
}

func (f *fakeSpeechInput) Transcripts() <-chan string { return f.ch }

func newTestCapture(granted bool, scorer Scorer) *CaptureSession {
	session := &models.InterviewSession{MockID: "mock-1", JobPosition: "Backend Engineer"}
	questions := []QuestionAnswer{
		{Question: "What is a goroutine?", Answer: "A lightweight thread."},
		{Question: "Explain channels.", Answer: "Typed conduits."},
		{Question: "What does select do?", Answer: "Waits on multiple channels."},
	}
	return NewCaptureSession(session, questions, &fakePermission{granted: granted}, scorer, "candidate@example.com")
}

func TestCapture_PermissionRequired(t *testing.T) {
	scorer := &fakeScorer{}
	c := newTestCapture(false, scorer)

	err := c.StartListening()
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, CaptureIdle, c.State())
	assert.Equal(t, 0, scorer.callCount())
}

func TestCapture_ShortTranscriptDiscarded(t *testing.T) {
	scorer := &fakeScorer{}
	c := newTestCapture(true, scorer)

	require.NoError(t, c.StartListening())
	c.AppendTranscript("uh hello")

	record, err := c.StopListening()
	require.NoError(t, err)
	assert.Nil(t, record, "transcript at the noise floor must not be scored")
	assert.Equal(t, 0, scorer.callCount())
	assert.Equal(t, CaptureIdle, c.State())
}

func TestCapture_ScoresAndReturnsToIdle(t *testing.T) {
	scorer := &fakeScorer{}
	c := newTestCapture(true, scorer)

	require.NoError(t, c.StartListening())
	c.AppendTranscript("A goroutine is a lightweight thread ")
	c.AppendTranscript("managed by the Go runtime.")

	record, err := c.StopListening()
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 1, scorer.callCount())
	assert.Equal(t, "A goroutine is a lightweight thread managed by the Go runtime.", scorer.lastIn)
	assert.Equal(t, "What is a goroutine?", record.Question)
	assert.Equal(t, CaptureIdle, c.State())
}

func TestCapture_ScoringFailureReturnsToIdle(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("ai unavailable")}
	c := newTestCapture(true, scorer)

	require.NoError(t, c.StartListening())
	c.AppendTranscript("This answer is long enough to be scored.")

	_, err := c.StopListening()
	require.Error(t, err)
	assert.Equal(t, CaptureIdle, c.State())

	// A fresh cycle can start after the failure.
	assert.NoError(t, c.StartListening())
}

func TestCapture_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	scorer := &fakeScorer{release: release}
	c := newTestCapture(true, scorer)

	require.NoError(t, c.StartListening())
	c.AppendTranscript("An answer that is comfortably past the threshold.")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.StopListening()
	}()

	// Wait for the scoring call to be in flight, then verify the trigger is
	// disabled.
	require.Eventually(t, func() bool { return c.State() == CaptureScoring }, testWait, testTick)
	assert.ErrorIs(t, c.StartListening(), ErrCaptureBusy)
	_, err := c.StopListening()
	assert.ErrorIs(t, err, ErrNotListening)

	close(release)
	<-done
	assert.Equal(t, CaptureIdle, c.State())
}

func TestCapture_StopWithoutStart(t *testing.T) {
	c := newTestCapture(true, &fakeScorer{})
	_, err := c.StopListening()
	assert.ErrorIs(t, err, ErrNotListening)
}

func TestCapture_TranscriptClearedBetweenCycles(t *testing.T) {
	scorer := &fakeScorer{}
	c := newTestCapture(true, scorer)

	require.NoError(t, c.StartListening())
	c.AppendTranscript("First answer with plenty of characters in it.")
	_, err := c.StopListening()
	require.NoError(t, err)

	require.NoError(t, c.StartListening())
	c.AppendTranscript("Second answer, also long enough to score.")
	_, err = c.StopListening()
	require.NoError(t, err)

	assert.Equal(t, "Second answer, also long enough to score.", scorer.lastIn)
}

func TestCapture_NavigationBounds(t *testing.T) {
	c := newTestCapture(true, &fakeScorer{})

	idx, err := c.Navigate("prev", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx, "pointer must not move below zero")

	idx, err = c.Navigate("select", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.True(t, c.AtEnd())

	idx, err = c.Navigate("next", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "pointer must not move past the last question")

	idx, err = c.Navigate("select", 99)
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "out-of-range selection leaves the pointer in place")
}

func TestCapture_NavigationRefusedWhileListening(t *testing.T) {
	c := newTestCapture(true, &fakeScorer{})
	require.NoError(t, c.StartListening())

	_, err := c.Navigate("next", 0)
	assert.ErrorIs(t, err, ErrRecordingActive)
}

func TestCapture_EndOnlyAtLastQuestion(t *testing.T) {
	c := newTestCapture(true, &fakeScorer{})

	assert.ErrorIs(t, c.End(), ErrNotAtEnd)

	_, err := c.Navigate("select", 2)
	require.NoError(t, err)
	require.NoError(t, c.End())
	assert.True(t, c.Ended())

	assert.ErrorIs(t, c.StartListening(), ErrCaptureEnded)
	assert.ErrorIs(t, c.End(), ErrCaptureEnded)
}

func TestCapture_ConsumeSpeechInput(t *testing.T) {
	scorer := &fakeScorer{}
	c := newTestCapture(true, scorer)
	require.NoError(t, c.StartListening())

	input := &fakeSpeechInput{ch: make(chan string, 4)}
	input.ch <- "Channels are typed conduits "
	input.ch <- "for communication between goroutines."
	close(input.ch)

	record, err := c.Consume(input)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Channels are typed conduits for communication between goroutines.", scorer.lastIn)
	assert.Equal(t, CaptureIdle, c.State())
}
