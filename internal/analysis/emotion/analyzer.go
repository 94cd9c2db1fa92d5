package emotion

import "strings"

// Label is an emotion tag as used across detection and analytics.
type Label string

const (
	Neutral   Label = "neutral"
	Happy     Label = "happy"
	Sad       Label = "sad"
	Angry     Label = "angry"
	Surprised Label = "surprised"
	Fear      Label = "fear"
)

// Known lists every emotion the analytics layer buckets by, in display
// order. Tags outside this set fall back to Neutral.
func Known() []Label {
	return []Label{Happy, Sad, Neutral, Surprised, Angry, Fear}
}

// IsKnown reports whether tag is part of the enumerated emotion set.
func IsKnown(tag string) bool {
	for _, label := range Known() {
		if string(label) == tag {
			return true
		}
	}
	return false
}

// Decision carries a detected emotion and how sure the match was.
type Decision struct {
	Emotion    Label
	Confidence float64
	Score      int
}

var keywordBuckets = map[Label][]string{
	Happy: {
		"happy", "great", "awesome", "amazing", "love", "thanks", "thank you",
		"khush", "mazaa", "badhiya", "accha lag", "relieved", "proud", "haha", "lol",
	},
	Sad: {
		"sad", "unhappy", "cry", "depressed", "lonely", "hopeless", "upset", "hurt",
		"dukhi", "udaas", "rona", "akela", "miss", "heartbroken", "low",
	},
	Angry: {
		"angry", "furious", "rage", "mad", "annoyed", "frustrated", "hate",
		"gussa", "chidh", "irritated", "fed up",
	},
	Surprised: {
		"surprised", "shocked", "unbelievable", "wow", "unexpected", "can't believe",
		"achanak", "sach mein",
	},
	Fear: {
		"scared", "afraid", "anxious", "panic", "worried", "terrified", "nervous",
		"darr", "ghabrahat", "tension", "overthinking",
	},
}

// Analyze infers the dominant emotion of one utterance. A blank or
// emotionless utterance maps to Neutral with zero confidence.
func Analyze(text string) Decision {
	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return Decision{Emotion: Neutral}
	}

	scores := make(map[Label]int)
	for label, keywords := range keywordBuckets {
		for _, word := range keywords {
			if strings.Contains(normalized, word) {
				scores[label] += 3
			}
		}
	}

	if exclamations := strings.Count(text, "!"); exclamations > 1 {
		scores[Surprised] += exclamations
	}

	best := Neutral
	bestScore := 0
	for _, label := range Known() {
		if s := scores[label]; s > bestScore {
			bestScore = s
			best = label
		}
	}

	if bestScore == 0 {
		return Decision{Emotion: Neutral}
	}

	confidence := float64(bestScore) / 12
	if confidence > 1 {
		confidence = 1
	}
	return Decision{Emotion: best, Confidence: confidence, Score: bestScore}
}
