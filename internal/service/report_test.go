package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportStore struct {
	// keyed by the window start day in YYYY-MM-DD
	chats, users map[string]int

	clickedChats       int
	correct, incorrect int
}

func (s *stubReportStore) QuestionStats(ctx context.Context, start, end time.Time) (int, int, error) {
	key := start.Format("2006-01-02")
	return s.chats[key], s.users[key], nil
}

func (s *stubReportStore) ClickStats(ctx context.Context, start, end time.Time) (int, int, error) {
	return s.clickedChats, 0, nil
}

func (s *stubReportStore) StockEnsembleCounts(ctx context.Context, start, end time.Time) (int, int, error) {
	return s.correct, s.incorrect, nil
}

func newTestReportService(store ReportStore) *ReportService {
	svc := NewReportService(store, testLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestDailyReport(t *testing.T) {
	store := &stubReportStore{
		chats:        map[string]int{"2025-09-16": 120, "2025-09-15": 100},
		users:        map[string]int{"2025-09-16": 30, "2025-09-15": 40},
		clickedChats: 30,
		correct:      8,
		incorrect:    2,
	}
	svc := newTestReportService(store)

	got, err := svc.DailyReport(context.Background(), "2025-09-16")
	require.NoError(t, err)

	assert.Equal(t, 120, got.ChatCount)
	assert.InDelta(t, 20.0, got.ChatCountDiff, 0.001)
	assert.Equal(t, 30, got.UserCount)
	assert.InDelta(t, -25.0, got.UserCountDiff, 0.001)

	assert.Equal(t, 30, got.ClickRatio.Click.Count)
	assert.InDelta(t, 25.0, got.ClickRatio.Click.Ratio, 0.001)
	assert.Equal(t, 90, got.ClickRatio.NonClick.Count)
	assert.InDelta(t, 75.0, got.ClickRatio.NonClick.Ratio, 0.001)

	assert.Equal(t, 8, got.Predictions.Correct)
	assert.InDelta(t, 80.0, got.Predictions.Accuracy, 0.001)
}

func TestDailyReportQuietDay(t *testing.T) {
	svc := newTestReportService(&stubReportStore{})

	got, err := svc.DailyReport(context.Background(), "2025-09-16")
	require.NoError(t, err)

	assert.Equal(t, 0, got.ChatCount)
	assert.Zero(t, got.ChatCountDiff)
	assert.Zero(t, got.ClickRatio.Click.Ratio)
	assert.Zero(t, got.Predictions.Accuracy)
}

func TestDailyReportRejectsFutureDate(t *testing.T) {
	svc := newTestReportService(&stubReportStore{})

	_, err := svc.DailyReport(context.Background(), "2025-09-18")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestDailyReportAcceptsTodayUnderNonUTCClock(t *testing.T) {
	svc := newTestReportService(&stubReportStore{})
	// 01:00 on the 17th in Seoul is still the 16th in UTC; the calendar
	// day of the clock decides, not the absolute UTC day.
	seoul := time.FixedZone("KST", 9*60*60)
	svc.now = func() time.Time { return time.Date(2025, 9, 17, 1, 0, 0, 0, seoul) }

	_, err := svc.DailyReport(context.Background(), "2025-09-17")
	require.NoError(t, err)

	_, err = svc.DailyReport(context.Background(), "2025-09-18")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestDailyReportRejectsBadDate(t *testing.T) {
	svc := newTestReportService(&stubReportStore{})

	_, err := svc.DailyReport(context.Background(), "16-09-2025")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
