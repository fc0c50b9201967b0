package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/dates"
	"github.com/raphaelgruber/chatstats-go/internal/models"
)

// ReportStore is the storage surface the daily report needs.
type ReportStore interface {
	QuestionStats(ctx context.Context, start, end time.Time) (chats, users int, err error)
	ClickStats(ctx context.Context, start, end time.Time) (chats, users int, err error)
	StockEnsembleCounts(ctx context.Context, start, end time.Time) (correct, incorrect int, err error)
}

// ReportService builds the home-dashboard daily summary.
type ReportService struct {
	store  ReportStore
	logger *slog.Logger
	now    func() time.Time
}

// NewReportService creates a report service.
func NewReportService(store ReportStore, logger *slog.Logger) *ReportService {
	return &ReportService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// DailyReport summarises one day's traffic, clicks and classifier results,
// with percentage diffs against the previous day. Future dates are rejected.
func (s *ReportService) DailyReport(ctx context.Context, date string) (*models.DailyReport, error) {
	day, err := dates.Parse(date)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	n := s.now()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	if day.After(today) {
		return nil, NewValidationError(fmt.Sprintf("date %s is in the future", date))
	}

	dayEnd := day.AddDate(0, 0, 1)
	prev := day.AddDate(0, 0, -1)

	chats, users, err := s.store.QuestionStats(ctx, day, dayEnd)
	if err != nil {
		s.logger.Error("failed to load daily report stats", "error", err, "date", date)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	prevChats, prevUsers, err := s.store.QuestionStats(ctx, prev, day)
	if err != nil {
		s.logger.Error("failed to load previous day stats", "error", err, "date", date)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	clicked, _, err := s.store.ClickStats(ctx, day, dayEnd)
	if err != nil {
		s.logger.Error("failed to load daily click stats", "error", err, "date", date)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	correct, incorrect, err := s.store.StockEnsembleCounts(ctx, day, dayEnd)
	if err != nil {
		s.logger.Error("failed to load prediction stats", "error", err, "date", date)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	nonClicked := nonNegative(chats - clicked)
	return &models.DailyReport{
		ChatCount:     chats,
		ChatCountDiff: percentDiff(chats, prevChats),
		UserCount:     users,
		UserCountDiff: percentDiff(users, prevUsers),
		ClickRatio: models.DailyClickRatio{
			Click:    models.RatioPart{Count: clicked, Ratio: percentOf(clicked, chats)},
			NonClick: models.RatioPart{Count: nonClicked, Ratio: percentOf(nonClicked, chats)},
		},
		Predictions: models.PredictionStats{
			Correct:   correct,
			Incorrect: incorrect,
			Accuracy:  percentOf(correct, correct+incorrect),
		},
	}, nil
}

// percentDiff returns the percentage change from prev to cur. A zero
// previous value yields 0 rather than a division blowup.
func percentDiff(cur, prev int) float64 {
	if prev == 0 {
		return 0
	}
	return float64(cur-prev) / float64(prev) * 100
}

// percentOf returns part as a percentage of total, 0 when total is 0.
func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
