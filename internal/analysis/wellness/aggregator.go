package wellness

import (
	"math"
	"time"

	"github.com/puresoul/puresoul/backend/internal/analysis/emotion"
	"github.com/puresoul/puresoul/backend/internal/model/chat"
	"github.com/puresoul/puresoul/backend/internal/model/mood"
)

// EmotionCount is one distribution bucket.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// DayBucket is one calendar day of the trailing trend, with every
// emotion key present even at zero.
type DayBucket struct {
	Date     string         `json:"date"`
	Total    int            `json:"total"`
	Emotions map[string]int `json:"emotions"`
}

// EmotionShare is one row of the weekly share table.
type EmotionShare struct {
	Emotion     string `json:"emotion"`
	Count       int    `json:"count"`
	Percentage  int    `json:"percentage"`
	WeeklyCount int    `json:"weeklyCount"`
}

// Report is the full analytics rollup.
type Report struct {
	Distribution           []EmotionCount `json:"distribution"`
	DailyTrend             []DayBucket    `json:"dailyTrend"`
	WeeklyShare            []EmotionShare `json:"weeklyShare"`
	WellnessScore          int            `json:"wellnessScore"`
	TotalEmotions          int            `json:"totalEmotions"`
	TotalSessions          int            `json:"totalSessions"`
	AverageSessionDuration int            `json:"averageSessionDuration"`
	MostFrequentEmotion    string         `json:"mostFrequentEmotion"`
}

const trendDays = 7

// BuildReport derives the analytics rollup from emotion and session
// history. Pure: the trailing-window anchor comes in as now, so the
// same inputs always produce the same report.
func BuildReport(records []mood.Record, sessions []chat.Record, now time.Time) Report {
	valid := make([]mood.Record, 0, len(records))
	for _, r := range records {
		// Malformed timestamps are excluded rather than guessed at.
		if r.Timestamp.IsZero() {
			continue
		}
		r.Emotion = normalizeTag(r.Emotion)
		valid = append(valid, r)
	}

	report := Report{
		Distribution:        distribution(valid),
		DailyTrend:          dailyTrend(valid, now),
		WellnessScore:       wellnessScore(valid),
		TotalEmotions:       len(valid),
		TotalSessions:       len(sessions),
		MostFrequentEmotion: string(emotion.Neutral),
	}

	report.WeeklyShare = weeklyShare(valid, now)
	if len(report.WeeklyShare) > 0 {
		report.MostFrequentEmotion = report.WeeklyShare[0].Emotion
	}

	if len(sessions) > 0 {
		sum := 0
		for _, s := range sessions {
			sum += s.DurationMinutes
		}
		report.AverageSessionDuration = roundDiv(sum, len(sessions))
	}

	return report
}

// normalizeTag buckets unknown or blank emotion tags under the default.
func normalizeTag(tag string) string {
	if emotion.IsKnown(tag) {
		return tag
	}
	return string(emotion.Neutral)
}

func distribution(records []mood.Record) []EmotionCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range records {
		if _, seen := counts[r.Emotion]; !seen {
			order = append(order, r.Emotion)
		}
		counts[r.Emotion]++
	}

	out := make([]EmotionCount, 0, len(order))
	for _, tag := range order {
		out = append(out, EmotionCount{Emotion: tag, Count: counts[tag]})
	}
	return out
}

// dailyTrend buckets the trailing 7 calendar days, oldest first. Day
// boundaries follow now's location.
func dailyTrend(records []mood.Record, now time.Time) []DayBucket {
	trend := make([]DayBucket, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 1)

		bucket := DayBucket{
			Date:     start.Format("Jan 02"),
			Emotions: make(map[string]int, len(emotion.Known())),
		}
		for _, label := range emotion.Known() {
			bucket.Emotions[string(label)] = 0
		}

		for _, r := range records {
			if !r.Timestamp.Before(start) && r.Timestamp.Before(end) {
				bucket.Total++
				bucket.Emotions[r.Emotion]++
			}
		}

		trend = append(trend, bucket)
	}
	return trend
}

// weeklyShare ranks emotions by total count (descending, first-seen
// order breaking ties) with whole-history percentage and trailing-7-day
// count per tag.
func weeklyShare(records []mood.Record, now time.Time) []EmotionShare {
	total := len(records)
	weekStart := now.AddDate(0, 0, -trendDays)

	counts := make(map[string]int)
	weekly := make(map[string]int)
	order := make([]string, 0)
	for _, r := range records {
		if _, seen := counts[r.Emotion]; !seen {
			order = append(order, r.Emotion)
		}
		counts[r.Emotion]++
		if !r.Timestamp.Before(weekStart) && !r.Timestamp.After(now) {
			weekly[r.Emotion]++
		}
	}

	out := make([]EmotionShare, 0, len(order))
	for _, tag := range order {
		out = append(out, EmotionShare{
			Emotion:     tag,
			Count:       counts[tag],
			Percentage:  roundDiv(100*counts[tag], max(1, total)),
			WeeklyCount: weekly[tag],
		})
	}

	// Stable sort keeps first-seen order between equal counts.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Count > out[j-1].Count; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// wellnessScore weights positive emotions double and neutral ones
// single against the maximum attainable, on a 0-100 scale.
func wellnessScore(records []mood.Record) int {
	if len(records) == 0 {
		return 0
	}

	positive, neutral := 0, 0
	for _, r := range records {
		switch r.Emotion {
		case string(emotion.Happy):
			positive++
		case string(emotion.Neutral), string(emotion.Surprised):
			neutral++
		}
	}

	return int(math.Round(float64(2*positive+neutral) / float64(2*len(records)) * 100))
}

func roundDiv(numerator, denominator int) int {
	return int(math.Round(float64(numerator) / float64(denominator)))
}
