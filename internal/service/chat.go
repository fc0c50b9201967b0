// Package service implements the retrieval and reporting operations that the
// HTTP handlers, MCP tools and CLI commands share.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/correlate"
	"github.com/raphaelgruber/chatstats-go/internal/dates"
	"github.com/raphaelgruber/chatstats-go/internal/metrics"
	"github.com/raphaelgruber/chatstats-go/internal/models"
)

// ChatStore is the storage surface the chat service needs.
type ChatStore interface {
	RecordsInRange(ctx context.Context, start, end time.Time) ([]models.LogRecord, error)
	StockPositiveIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
}

// ChatService pairs questions with answers and serves filtered, paginated
// conversation pages.
type ChatService struct {
	store  ChatStore
	bound  time.Duration
	logger *slog.Logger
}

// NewChatService creates a chat service. bound limits how far forward the
// nearest-answer rule may reach.
func NewChatService(store ChatStore, bound time.Duration, logger *slog.Logger) *ChatService {
	return &ChatService{
		store:  store,
		bound:  bound,
		logger: logger,
	}
}

// maxPageSize caps a single page so a broad query cannot return the whole
// window at once.
const maxPageSize = 100

// ChatQuery describes one conversation search.
type ChatQuery struct {
	StartDate string
	EndDate   string
	User      string
	Keyword   string
	Stock     string
	Page      int // zero-based
	PageSize  int
}

// FindConversations loads the date window, correlates questions with
// answers, applies the filters and returns the requested page sorted most
// recent first.
func (s *ChatService) FindConversations(ctx context.Context, q ChatQuery) (*models.ConversationPage, error) {
	rng, err := dates.ParseRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	if q.Stock == "" {
		q.Stock = models.StockAll
	}
	if !models.ValidStockFilter(q.Stock) {
		return nil, NewValidationError(fmt.Sprintf("invalid stock filter %q", q.Stock))
	}
	if q.Page < 0 {
		q.Page = 0
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}

	records, err := s.store.RecordsInRange(ctx, rng.Start, rng.NextDay())
	if err != nil {
		s.logger.Error("failed to load log records", "error", err,
			"start", q.StartDate, "end", q.EndDate)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	metrics.ObserveRecordsLoaded(len(records))

	questions := make([]models.LogRecord, 0, len(records)/2)
	answers := make([]models.LogRecord, 0, len(records)/2)
	for _, r := range records {
		switch {
		case r.IsQuestion():
			questions = append(questions, r)
		case r.IsAnswer():
			answers = append(answers, r)
		}
	}

	resolver := correlate.NewResolver(answers, s.bound)
	conversations := make([]models.Conversation, 0, len(questions))
	for _, question := range questions {
		answer, outcome := resolver.Resolve(question)
		metrics.CountOutcome(string(outcome))
		conversations = append(conversations, models.Conversation{
			ID:        question.ID,
			Timestamp: question.Timestamp,
			UserID:    question.UserID,
			Question:  question.Content,
			Answer:    answer,
		})
	}

	if err := s.markStock(ctx, conversations); err != nil {
		s.logger.Error("failed to load stock flags", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	filtered := filterConversations(conversations, q)
	sortConversations(filtered)
	return paginate(filtered, q.Page, q.PageSize), nil
}

// markStock sets IsStock on each conversation from one batched lookup.
func (s *ChatService) markStock(ctx context.Context, conversations []models.Conversation) error {
	if len(conversations) == 0 {
		return nil
	}
	ids := make([]string, len(conversations))
	for i, c := range conversations {
		ids[i] = c.ID
	}
	positive, err := s.store.StockPositiveIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range conversations {
		_, conversations[i].IsStock = positive[conversations[i].ID]
	}
	return nil
}

func filterConversations(conversations []models.Conversation, q ChatQuery) []models.Conversation {
	user := strings.ToLower(q.User)
	keyword := strings.ToLower(q.Keyword)
	out := make([]models.Conversation, 0, len(conversations))
	for _, c := range conversations {
		if user != "" && !strings.Contains(strings.ToLower(c.UserID), user) {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(c.Question), keyword) {
			continue
		}
		switch q.Stock {
		case models.StockOnly:
			if !c.IsStock {
				continue
			}
		case models.StockExcluded:
			if c.IsStock {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// sortConversations orders most recent first, breaking timestamp ties by id
// descending so pages are stable.
func sortConversations(conversations []models.Conversation) {
	sort.SliceStable(conversations, func(i, j int) bool {
		if !conversations[i].Timestamp.Equal(conversations[j].Timestamp) {
			return conversations[i].Timestamp.After(conversations[j].Timestamp)
		}
		return conversations[i].ID > conversations[j].ID
	})
}

// paginate slices out one zero-based page.
func paginate(conversations []models.Conversation, page, pageSize int) *models.ConversationPage {
	total := len(conversations)
	totalPages := (total + pageSize - 1) / pageSize

	start := page * pageSize
	if start >= total {
		return &models.ConversationPage{
			Items:      []models.Conversation{},
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return &models.ConversationPage{
		Items:      conversations[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
