package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/dates"
	"github.com/raphaelgruber/chatstats-go/internal/db"
	"github.com/raphaelgruber/chatstats-go/internal/models"
)

// StatsStore is the storage surface the analytics service needs.
type StatsStore interface {
	DailyCounts(ctx context.Context, start, end time.Time) ([]models.DailyCount, error)
	HourlyCounts(ctx context.Context, start, end time.Time) ([]models.HourlyCount, error)
	WeekdayCounts(ctx context.Context, start, end time.Time) ([]db.WeekdayCount, error)
	UserChatCounts(ctx context.Context, start, end time.Time, limit int, descending bool) ([]models.UserRank, error)
}

// Ranking limit bounds.
const (
	minRankingLimit     = 5
	maxRankingLimit     = 50
	defaultRankingLimit = 10
)

// AnalyticsService serves the chat volume aggregates.
type AnalyticsService struct {
	store  StatsStore
	logger *slog.Logger
	now    func() time.Time
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(store StatsStore, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// weekdayNames maps the ISO weekday number ("1" = Monday) to its label.
var weekdayNames = map[string]string{
	"1": "Mon", "2": "Tue", "3": "Wed", "4": "Thu",
	"5": "Fri", "6": "Sat", "7": "Sun",
}

// DailyStats returns per-day chat and user counts for an inclusive date
// range, with zero rows for days without traffic.
func (s *AnalyticsService) DailyStats(ctx context.Context, startDate, endDate string) ([]models.DailyCount, error) {
	rng, err := dates.ParseRange(startDate, endDate)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	counts, err := s.store.DailyCounts(ctx, rng.Start, rng.NextDay())
	if err != nil {
		s.logger.Error("failed to load daily counts", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	byDay := make(map[string]models.DailyCount, len(counts))
	for _, c := range counts {
		byDay[c.Date] = c
	}

	filled := make([]models.DailyCount, 0, len(counts))
	for day := rng.Start; !day.After(rng.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dates.Layout)
		if c, ok := byDay[key]; ok {
			filled = append(filled, c)
		} else {
			filled = append(filled, models.DailyCount{Date: key})
		}
	}
	return filled, nil
}

// HourlyStats returns chat counts for every hour of the day over a named
// date range, zero-filled over "00".."23".
func (s *AnalyticsService) HourlyStats(ctx context.Context, dateType, startDate, endDate string) ([]models.HourlyCount, error) {
	rng, err := dates.ForType(dateType, startDate, endDate, s.now())
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	counts, err := s.store.HourlyCounts(ctx, rng.Start, rng.NextDay())
	if err != nil {
		s.logger.Error("failed to load hourly counts", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	byHour := make(map[string]int, len(counts))
	for _, c := range counts {
		byHour[c.Hour] = c.Chats
	}

	filled := make([]models.HourlyCount, 0, 24)
	for h := 0; h < 24; h++ {
		hour := fmt.Sprintf("%02d", h)
		filled = append(filled, models.HourlyCount{Hour: hour, Chats: byHour[hour]})
	}
	return filled, nil
}

// WeekdayStats returns chat and user counts per weekday, Monday through
// Sunday, for one calendar month.
func (s *AnalyticsService) WeekdayStats(ctx context.Context, year, month int) ([]models.WeekdayCount, error) {
	if year < 2000 || year > 2100 {
		return nil, NewValidationError(fmt.Sprintf("year %d out of range 2000..2100", year))
	}
	if month < 1 || month > 12 {
		return nil, NewValidationError(fmt.Sprintf("month %d out of range 1..12", month))
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	counts, err := s.store.WeekdayCounts(ctx, start, end)
	if err != nil {
		s.logger.Error("failed to load weekday counts", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	byDay := make(map[string]db.WeekdayCount, len(counts))
	for _, c := range counts {
		byDay[c.Weekday] = c
	}

	filled := make([]models.WeekdayCount, 0, 7)
	for i := 1; i <= 7; i++ {
		key := fmt.Sprintf("%d", i)
		c := byDay[key]
		filled = append(filled, models.WeekdayCount{
			Day:   weekdayNames[key],
			Chats: c.Chats,
			Users: c.Users,
		})
	}
	return filled, nil
}

// UserRanking returns the top users by question count. An explicit start
// and end date override the named period. The limit is clamped to 5..50,
// zero meaning the default of 10.
func (s *AnalyticsService) UserRanking(ctx context.Context, period string, limit int, descending bool, startDate, endDate string) ([]models.UserRank, error) {
	rng, err := dates.ForPeriod(period, s.now())
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	if startDate != "" && endDate != "" {
		rng, err = dates.ParseRange(startDate, endDate)
		if err != nil {
			return nil, NewValidationError(err.Error())
		}
	}

	switch {
	case limit <= 0:
		limit = defaultRankingLimit
	case limit < minRankingLimit:
		limit = minRankingLimit
	case limit > maxRankingLimit:
		limit = maxRankingLimit
	}

	ranks, err := s.store.UserChatCounts(ctx, rng.Start, rng.NextDay(), limit, descending)
	if err != nil {
		s.logger.Error("failed to load user ranking", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return ranks, nil
}
