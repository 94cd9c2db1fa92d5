package chat

import "time"

// Session captures one bounded conversation while it is live.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Category  string    `json:"category"`
	StartTime time.Time `json:"startTime"`
}

// Record is a finalized session, frozen at end-of-session and never
// mutated afterwards.
type Record struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Category        string    `json:"category"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Messages        []Message `json:"messages"`
}

// Finalize freezes a session into a Record. Duration is whole elapsed
// minutes, floored, never negative.
func Finalize(s Session, messages []Message, endTime time.Time) Record {
	duration := int(endTime.Sub(s.StartTime) / time.Minute)
	if duration < 0 {
		duration = 0
	}

	copied := make([]Message, len(messages))
	copy(copied, messages)

	return Record{
		ID:              s.ID,
		UserID:          s.UserID,
		Category:        s.Category,
		StartTime:       s.StartTime,
		EndTime:         endTime,
		DurationMinutes: duration,
		Messages:        copied,
	}
}
