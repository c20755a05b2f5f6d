package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a message in the shared team chat (local variant only).
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
