package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/prepwise/mock_interview/services"
)

// The hub tracks live capture sessions keyed by mock id and candidate email,
// so a reconnecting client resumes the same state machine instead of starting
// a parallel one.

type captureKey struct {
	MockID string
	Email  string
}

var captures = make(map[captureKey]*services.CaptureSession)
var capturesMu sync.RWMutex

func GetOrCreateCapture(mockID, email string, create func() *services.CaptureSession) *services.CaptureSession {
	key := captureKey{MockID: mockID, Email: email}

	capturesMu.Lock()
	defer capturesMu.Unlock()

	if existing, ok := captures[key]; ok && !existing.Ended() {
		return existing
	}
	session := create()
	captures[key] = session
	log.Printf("Capture session registered for interview %s (%s)", mockID, email)
	return session
}

func RemoveCapture(mockID, email string) {
	capturesMu.Lock()
	defer capturesMu.Unlock()
	delete(captures, captureKey{MockID: mockID, Email: email})
}

// ExpireIdleCaptures drops sessions that have gone quiet. Returns how many
// were removed.
func ExpireIdleCaptures(maxIdle time.Duration) int {
	capturesMu.Lock()
	defer capturesMu.Unlock()

	removed := 0
	for key, session := range captures {
		if session.Ended() || session.IdleFor() > maxIdle {
			delete(captures, key)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("Expired %d idle capture session(s)", removed)
	}
	return removed
}
