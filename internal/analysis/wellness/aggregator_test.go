package wellness_test

import (
	"testing"
	"time"

	"github.com/puresoul/puresoul/backend/internal/analysis/wellness"
	"github.com/puresoul/puresoul/backend/internal/model/chat"
	"github.com/puresoul/puresoul/backend/internal/model/mood"
)

func record(emotionTag string, ts time.Time) mood.Record {
	return mood.Record{ID: emotionTag + ts.String(), Emotion: emotionTag, Confidence: 0.9, Timestamp: ts}
}

func TestWellnessScore(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	records := []mood.Record{
		record("happy", now),
		record("happy", now),
		record("sad", now),
		record("neutral", now),
	}

	report := wellness.BuildReport(records, nil, now)
	if report.WellnessScore != 63 {
		t.Fatalf("expected wellness score 63, got %d", report.WellnessScore)
	}
}

func TestWellnessScoreEmptyHistory(t *testing.T) {
	report := wellness.BuildReport(nil, nil, time.Now())
	if report.WellnessScore != 0 {
		t.Fatalf("expected 0 with no records, got %d", report.WellnessScore)
	}
	if report.MostFrequentEmotion != "neutral" {
		t.Fatalf("expected default most-frequent emotion, got %s", report.MostFrequentEmotion)
	}
}

func TestWellnessScoreBounded(t *testing.T) {
	now := time.Now()
	records := []mood.Record{record("happy", now), record("happy", now)}

	report := wellness.BuildReport(records, nil, now)
	if report.WellnessScore != 100 {
		t.Fatalf("all-happy history should score 100, got %d", report.WellnessScore)
	}
}

func TestDailyTrendZeroDaysKeepAllKeys(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	records := []mood.Record{record("happy", now)}

	report := wellness.BuildReport(records, nil, now)
	if len(report.DailyTrend) != 7 {
		t.Fatalf("expected 7 trend days, got %d", len(report.DailyTrend))
	}

	// Oldest first: today is the last bucket.
	today := report.DailyTrend[6]
	if today.Total != 1 || today.Emotions["happy"] != 1 {
		t.Fatalf("today's bucket wrong: %+v", today)
	}

	empty := report.DailyTrend[0]
	if empty.Total != 0 {
		t.Fatalf("expected empty day total 0, got %d", empty.Total)
	}
	for _, tag := range []string{"happy", "sad", "neutral", "surprised", "angry", "fear"} {
		if _, ok := empty.Emotions[tag]; !ok {
			t.Fatalf("missing emotion key %q in empty day", tag)
		}
	}
}

func TestWeeklyShareSingleEmotion(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	records := []mood.Record{
		record("happy", now),
		record("happy", now.Add(-time.Hour)),
		record("happy", now.Add(-2*time.Hour)),
	}

	report := wellness.BuildReport(records, nil, now)
	if len(report.WeeklyShare) != 1 {
		t.Fatalf("expected one share row, got %d", len(report.WeeklyShare))
	}
	share := report.WeeklyShare[0]
	if share.Emotion != "happy" || share.Percentage != 100 {
		t.Fatalf("expected happy at 100%%, got %+v", share)
	}
	if share.WeeklyCount != 3 {
		t.Fatalf("expected weekly count 3, got %d", share.WeeklyCount)
	}
}

func TestWeeklySharePercentagesBounded(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	records := []mood.Record{
		record("happy", now),
		record("sad", now),
		record("sad", now),
		record("angry", now.AddDate(0, 0, -10)),
	}

	report := wellness.BuildReport(records, nil, now)

	sum := 0
	for _, share := range report.WeeklyShare {
		if share.Percentage < 0 || share.Percentage > 100 {
			t.Fatalf("percentage out of range: %+v", share)
		}
		sum += share.Percentage
	}
	if report.WeeklyShare[0].Emotion != "sad" {
		t.Fatalf("expected sad ranked first, got %s", report.WeeklyShare[0].Emotion)
	}
	if report.MostFrequentEmotion != "sad" {
		t.Fatalf("most frequent should follow weekly share, got %s", report.MostFrequentEmotion)
	}

	// Records outside the trailing week count toward totals only.
	for _, share := range report.WeeklyShare {
		if share.Emotion == "angry" && share.WeeklyCount != 0 {
			t.Fatalf("stale record must not count as weekly: %+v", share)
		}
	}
}

func TestUnknownEmotionBucketedAsDefault(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	records := []mood.Record{
		record("bewildered", now),
		record("", now),
	}

	report := wellness.BuildReport(records, nil, now)
	if len(report.Distribution) != 1 {
		t.Fatalf("expected single default bucket, got %+v", report.Distribution)
	}
	if report.Distribution[0].Emotion != "neutral" || report.Distribution[0].Count != 2 {
		t.Fatalf("unknown tags must land in neutral: %+v", report.Distribution[0])
	}
}

func TestMalformedTimestampsExcluded(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	records := []mood.Record{
		record("happy", now),
		{ID: "broken", Emotion: "happy"}, // zero timestamp
	}

	report := wellness.BuildReport(records, nil, now)
	if report.TotalEmotions != 1 {
		t.Fatalf("malformed record must be excluded, got total %d", report.TotalEmotions)
	}
}

func TestSessionStats(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	sessions := []chat.Record{
		{ID: "a", DurationMinutes: 10},
		{ID: "b", DurationMinutes: 15},
	}

	report := wellness.BuildReport(nil, sessions, now)
	if report.TotalSessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", report.TotalSessions)
	}
	if report.AverageSessionDuration != 13 {
		t.Fatalf("expected rounded average 13, got %d", report.AverageSessionDuration)
	}
}

func TestReportDeterminism(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	records := []mood.Record{
		record("happy", now),
		record("sad", now.Add(-time.Hour)),
		record("fear", now.AddDate(0, 0, -3)),
	}

	first := wellness.BuildReport(records, nil, now)
	second := wellness.BuildReport(records, nil, now)

	if first.WellnessScore != second.WellnessScore ||
		len(first.WeeklyShare) != len(second.WeeklyShare) ||
		first.MostFrequentEmotion != second.MostFrequentEmotion {
		t.Fatal("same inputs must produce the same report")
	}
	for i := range first.WeeklyShare {
		if first.WeeklyShare[i] != second.WeeklyShare[i] {
			t.Fatalf("weekly share row %d differs between runs", i)
		}
	}
}
