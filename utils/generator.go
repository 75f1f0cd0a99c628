package utils

import (
	"time"

	"github.com/google/uuid"
)

// NewMockID generates the opaque identifier that names an interview session
// in URLs and answer rows.
func NewMockID() string {
	return uuid.NewString()
}

// CreatedOnStamp is the formatted date string captured when a row is written.
func CreatedOnStamp() string {
	return time.Now().Format("2006-01-02")
}
