package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/prepwise/mock_interview/models"
	"github.com/prepwise/mock_interview/speech"
)

// MinTranscriptLength is the noise floor: a transcript this short or shorter
// is treated as a false start and never scored.
const MinTranscriptLength = 10

type CaptureState int

const (
	CaptureIdle CaptureState = iota
	CaptureListening
	CaptureScoring
)

func (s CaptureState) String() string {
	switch s {
	case CaptureListening:
		return "listening"
	case CaptureScoring:
		return "scoring"
	default:
		return "idle"
	}
}

var (
	ErrPermissionDenied = errors.New("camera and microphone access not granted")
	ErrCaptureBusy      = errors.New("a capture cycle is already in flight")
	ErrNotListening     = errors.New("no recording in progress")
	ErrRecordingActive  = errors.New("cannot navigate while a recording is in progress")
	ErrNotAtEnd         = errors.New("the interview can only be ended on the last question")
	ErrCaptureEnded     = errors.New("the interview has ended")
)

// CaptureSession drives one live interview: Idle -> Listening -> Scoring ->
// Idle, per question. Permission and speech input are injected so the machine
// runs without a browser. Only one cycle may be in flight at a time; the
// transcript buffer is cleared on every return to Idle.
type CaptureSession struct {
	mu         sync.Mutex
	state      CaptureState
	transcript strings.Builder
	lastActive time.Time
	ended      bool

	permission speech.MediaPermissionSource
	scorer     Scorer

	session   *models.InterviewSession
	questions []QuestionAnswer
	cursor    *QuestionCursor
	userEmail string
}

func NewCaptureSession(session *models.InterviewSession, questions []QuestionAnswer, permission speech.MediaPermissionSource, scorer Scorer, userEmail string) *CaptureSession {
	return &CaptureSession{
		state:      CaptureIdle,
		lastActive: time.Now(),
		permission: permission,
		scorer:     scorer,
		session:    session,
		questions:  questions,
		cursor:     NewQuestionCursor(len(questions)),
		userEmail:  userEmail,
	}
}

// SetPermissionSource swaps the permission seam when a client reconnects and
// resumes an existing session.
func (c *CaptureSession) SetPermissionSource(p speech.MediaPermissionSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.permission = p
}

func (c *CaptureSession) State() CaptureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *CaptureSession) Ended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ended
}

// IdleFor reports how long the session has gone without activity. The cleanup
// job drops sessions that sat idle past its deadline.
func (c *CaptureSession) IdleFor() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.lastActive)
}

// StartListening begins a capture cycle for the active question. It fails
// without media permission and while a previous cycle is still in flight.
func (c *CaptureSession) StartListening() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended {
		return ErrCaptureEnded
	}
	if !c.permission.Granted() {
		return ErrPermissionDenied
	}
	if c.state != CaptureIdle {
		return ErrCaptureBusy
	}

	c.transcript.Reset()
	c.state = CaptureListening
	c.lastActive = time.Now()
	return nil
}

// Consume drains a recognition stream into the transcript buffer and finishes
// the cycle when the stream closes.
func (c *CaptureSession) Consume(input speech.SpeechInput) (*models.AnswerRecord, error) {
	for text := range input.Transcripts() {
		c.AppendTranscript(text)
	}
	return c.StopListening()
}

// AppendTranscript adds an incremental transcript chunk. Chunks arriving
// outside the Listening state are dropped.
func (c *CaptureSession) AppendTranscript(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != CaptureListening {
		return
	}
	c.transcript.WriteString(text)
	c.lastActive = time.Now()
}

// StopListening ends the capture cycle. A transcript at or under the noise
// threshold is discarded with no scoring call; otherwise the answer is scored
// and persisted, replacing any previous answer for the active question. The
// machine returns to Idle after success and failure alike.
func (c *CaptureSession) StopListening() (*models.AnswerRecord, error) {
	c.mu.Lock()
	if c.state != CaptureListening {
		c.mu.Unlock()
		return nil, ErrNotListening
	}

	transcript := strings.TrimSpace(c.transcript.String())
	if len(transcript) <= MinTranscriptLength {
		c.toIdleLocked()
		c.mu.Unlock()
		return nil, nil
	}

	c.state = CaptureScoring
	question := c.questions[c.cursor.Index()]
	c.mu.Unlock()

	record, err := c.scorer.ScoreAndSave(c.session, question, transcript, c.userEmail)

	c.mu.Lock()
	c.toIdleLocked()
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return record, nil
}

func (c *CaptureSession) toIdleLocked() {
	c.state = CaptureIdle
	c.transcript.Reset()
	c.lastActive = time.Now()
}

// Question returns the active question index and text.
func (c *CaptureSession) Question() (int, QuestionAnswer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.cursor.Index()
	if i >= len(c.questions) {
		return i, QuestionAnswer{}
	}
	return i, c.questions[i]
}

func (c *CaptureSession) AtEnd() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor.AtEnd()
}

// Navigate moves the active-question pointer: "next", "prev", or "select"
// with an explicit index. Navigation is refused mid-recording; out-of-bounds
// moves leave the pointer where it was.
func (c *CaptureSession) Navigate(action string, index int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended {
		return c.cursor.Index(), ErrCaptureEnded
	}
	if c.state != CaptureIdle {
		return c.cursor.Index(), ErrRecordingActive
	}

	switch action {
	case "next":
		c.cursor.Next()
	case "prev":
		c.cursor.Prev()
	case "select":
		c.cursor.Select(index)
	default:
		return c.cursor.Index(), errors.New("unknown navigation action: " + action)
	}
	c.lastActive = time.Now()
	return c.cursor.Index(), nil
}

// End finishes the interview. It is only offered once the pointer sits on the
// last question.
func (c *CaptureSession) End() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended {
		return ErrCaptureEnded
	}
	if c.state != CaptureIdle {
		return ErrRecordingActive
	}
	if !c.cursor.AtEnd() {
		return ErrNotAtEnd
	}
	c.ended = true
	c.lastActive = time.Now()
	return nil
}

func (c *CaptureSession) Session() *models.InterviewSession { return c.session }

func (c *CaptureSession) UserEmail() string { return c.userEmail }
