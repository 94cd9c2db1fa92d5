package mood

import "time"

// Record is one emotion observation produced by the external detector.
// Append-only; aggregation reads it as-is.
type Record struct {
	ID         string    `json:"id"`
	Emotion    string    `json:"emotion"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// ClampConfidence bounds a detector confidence into [0,1].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
