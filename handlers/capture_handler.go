package handlers

import (
	"log"
	"sync"
	"sync/atomic"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/mock_interview/database"
	"github.com/prepwise/mock_interview/models"
	"github.com/prepwise/mock_interview/notifications"
	"github.com/prepwise/mock_interview/services"
	"github.com/prepwise/mock_interview/websocket"
)

// captureFrame is the single client->server message shape on the capture
// socket. Type selects which of the other fields matter.
type captureFrame struct {
	Type    string `json:"type"`
	Token   string `json:"token,omitempty"`
	Granted bool   `json:"granted,omitempty"`
	Text    string `json:"text,omitempty"`
	Action  string `json:"action,omitempty"`
	Index   int    `json:"index,omitempty"`
}

// clientPermission mirrors the browser's media-permission state reported over
// the socket.
type clientPermission struct {
	granted atomic.Bool
}

func (p *clientPermission) Granted() bool { return p.granted.Load() }

// frameSpeechInput adapts transcript frames into the SpeechInput capability
// the capture machine consumes. Closing the channel is the stop signal.
type frameSpeechInput struct {
	ch chan string
}

func (f *frameSpeechInput) Transcripts() <-chan string { return f.ch }

// ServeCapture drives one live interview over a websocket: the browser
// reports media permission, streams speech-recognition transcript chunks, and
// moves the active-question pointer; the server answers with state changes,
// scored answers, and errors.
func ServeCapture(c *websocketcontrib.Conn) {
	mockID := c.Params("mockId")

	var writeMu sync.Mutex
	send := func(payload interface{}) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := c.WriteJSON(payload); err != nil {
			log.Printf("Capture write error for interview %s: %v", mockID, err)
		}
	}

	var authMsg captureFrame
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"type": "error", "message": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"type": "error", "message": "Invalid token"})
		c.Close()
		return
	}
	email, _ := claims["email"].(string)
	if email == "" {
		_ = c.WriteJSON(fiber.Map{"type": "error", "message": "Token has no email claim"})
		c.Close()
		return
	}

	var session models.InterviewSession
	if err := database.DB.First(&session, "mock_id = ?", mockID).Error; err != nil {
		_ = c.WriteJSON(fiber.Map{"type": "error", "message": "Interview not found"})
		c.Close()
		return
	}

	questions, err := services.DecodeStoredQuestionSet(session.QuestionSet)
	if err != nil {
		log.Printf("Error decoding question set for interview %s: %v", mockID, err)
		_ = c.WriteJSON(fiber.Map{"type": "error", "message": "Stored question set is not decodable"})
		c.Close()
		return
	}

	permission := &clientPermission{}
	capture := websocket.GetOrCreateCapture(mockID, email, func() *services.CaptureSession {
		return services.NewCaptureSession(
			&session,
			questions,
			permission,
			services.NewAnswerService(database.DB, services.NewAIServiceFromEnv()),
			email,
		)
	})
	capture.SetPermissionSource(permission)

	defer c.Close()

	index, question := capture.Question()
	send(fiber.Map{"type": "question", "index": index, "question": question.Question, "at_end": capture.AtEnd()})

	var input *frameSpeechInput

	for {
		var frame captureFrame
		if err := c.ReadJSON(&frame); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("Capture socket closed for interview %s (%s)", mockID, email)
			} else {
				log.Printf("Capture read error for interview %s (%s): %v", mockID, email, err)
			}
			if input != nil {
				close(input.ch)
			}
			return
		}

		switch frame.Type {
		case "permission":
			permission.granted.Store(frame.Granted)

		case "start":
			if err := capture.StartListening(); err != nil {
				send(fiber.Map{"type": "error", "message": err.Error()})
				continue
			}
			input = &frameSpeechInput{ch: make(chan string, 16)}
			go func(in *frameSpeechInput) {
				record, err := capture.Consume(in)
				switch {
				case err != nil:
					send(fiber.Map{"type": "error", "message": "Something went wrong while saving the answer"})
				case record == nil:
					send(fiber.Map{"type": "discarded", "reason": "transcript too short"})
				default:
					send(fiber.Map{"type": "scored", "record": record})
				}
				send(fiber.Map{"type": "state", "state": capture.State().String()})
			}(input)
			send(fiber.Map{"type": "state", "state": "listening"})

		case "transcript":
			if input != nil {
				input.ch <- frame.Text
			}

		case "stop":
			if input == nil {
				send(fiber.Map{"type": "error", "message": services.ErrNotListening.Error()})
				continue
			}
			close(input.ch)
			input = nil
			send(fiber.Map{"type": "state", "state": "scoring"})

		case "question":
			idx, err := capture.Navigate(frame.Action, frame.Index)
			if err != nil {
				send(fiber.Map{"type": "error", "message": err.Error()})
				continue
			}
			_, q := capture.Question()
			send(fiber.Map{"type": "question", "index": idx, "question": q.Question, "at_end": capture.AtEnd()})

		case "end":
			if err := capture.End(); err != nil {
				send(fiber.Map{"type": "error", "message": err.Error()})
				continue
			}
			websocket.RemoveCapture(mockID, email)

			var records []models.AnswerRecord
			if err := database.DB.
				Where("mock_id_ref = ?", mockID).
				Order("created_at DESC, id DESC").
				Find(&records).Error; err != nil {
				log.Printf("Error loading answers for interview %s: %v", mockID, err)
			}
			answers := services.DedupAnswers(records)
			avg := services.AverageRating(answers)
			go notifications.SendFeedbackSummary(email, session.JobPosition, len(answers), avg)

			send(fiber.Map{"type": "ended", "answered": len(answers), "average_rating": avg})
			return

		default:
			send(fiber.Map{"type": "error", "message": "Unknown frame type: " + frame.Type})
		}
	}
}
