package chat

import "time"

// Sender values for Message.
const (
	SenderUser      = "user"
	SenderTherapist = "therapist"
)

// Message is one turn of a conversation. Immutable once appended.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
