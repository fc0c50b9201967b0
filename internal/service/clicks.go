package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/dates"
	"github.com/raphaelgruber/chatstats-go/internal/models"
)

// ClickStore is the storage surface the click service needs.
type ClickStore interface {
	UserClickCounts(ctx context.Context, start, end time.Time, limit int) ([]models.ClickRank, error)
	UserChatCounts(ctx context.Context, start, end time.Time, limit int, descending bool) ([]models.UserRank, error)
	ClickStats(ctx context.Context, start, end time.Time) (chats, users int, err error)
	QuestionStats(ctx context.Context, start, end time.Time) (chats, users int, err error)
}

// chatCountFanout bounds the per-user chat count join for the click ranking.
const chatCountFanout = 1000

// ClickService serves the answer-click aggregates.
type ClickService struct {
	store  ClickStore
	logger *slog.Logger
}

// NewClickService creates a click service.
func NewClickService(store ClickStore, logger *slog.Logger) *ClickService {
	return &ClickService{
		store:  store,
		logger: logger,
	}
}

// UserClickRanking returns the top users by distinct clicked conversations
// over an inclusive date range, with each user's question count alongside.
func (s *ClickService) UserClickRanking(ctx context.Context, startDate, endDate string, limit int) ([]models.ClickRank, error) {
	rng, err := dates.ParseRange(startDate, endDate)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	if limit < 1 {
		limit = 10
	}

	ranks, err := s.store.UserClickCounts(ctx, rng.Start, rng.NextDay(), limit)
	if err != nil {
		s.logger.Error("failed to load click ranking", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if len(ranks) == 0 {
		return ranks, nil
	}

	chatCounts, err := s.store.UserChatCounts(ctx, rng.Start, rng.NextDay(), chatCountFanout, true)
	if err != nil {
		s.logger.Error("failed to load chat counts for click ranking", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	chatsByUser := make(map[string]int, len(chatCounts))
	for _, c := range chatCounts {
		chatsByUser[c.UserID] = c.Chats
	}
	for i := range ranks {
		ranks[i].Chats = chatsByUser[ranks[i].UserID]
	}
	return ranks, nil
}

// ClickRatio returns the clicked vs not-clicked split of a date range's chats.
func (s *ClickService) ClickRatio(ctx context.Context, startDate, endDate string) (*models.ClickRatio, error) {
	rng, err := dates.ParseRange(startDate, endDate)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	clickedChats, clickedUsers, err := s.store.ClickStats(ctx, rng.Start, rng.NextDay())
	if err != nil {
		s.logger.Error("failed to load click stats", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	totalChats, totalUsers, err := s.store.QuestionStats(ctx, rng.Start, rng.NextDay())
	if err != nil {
		s.logger.Error("failed to load question stats", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return &models.ClickRatio{
		Clicked: models.ClickRatioSide{
			Chats: clickedChats,
			Users: clickedUsers,
		},
		NotClicked: models.ClickRatioSide{
			Chats: nonNegative(totalChats - clickedChats),
			Users: nonNegative(totalUsers - clickedUsers),
		},
	}, nil
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
