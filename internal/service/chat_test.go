package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/chatstats-go/internal/correlate"
	"github.com/raphaelgruber/chatstats-go/internal/models"
)

type stubChatStore struct {
	records   []models.LogRecord
	positive  map[string]struct{}
	recordErr error
	stockErr  error
}

func (s *stubChatStore) RecordsInRange(ctx context.Context, start, end time.Time) ([]models.LogRecord, error) {
	if s.recordErr != nil {
		return nil, s.recordErr
	}
	out := []models.LogRecord{}
	for _, r := range s.records {
		if !r.Timestamp.Before(start) && r.Timestamp.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubChatStore) StockPositiveIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	if s.stockErr != nil {
		return nil, s.stockErr
	}
	if s.positive == nil {
		return map[string]struct{}{}, nil
	}
	return s.positive, nil
}

func strPtr(s string) *string { return &s }

func logRecord(id, user, role, content string, ts time.Time) models.LogRecord {
	return models.LogRecord{
		ID:        id,
		Timestamp: ts,
		Role:      role,
		UserID:    user,
		Content:   content,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestChatService(store ChatStore) *ChatService {
	return NewChatService(store, correlate.DefaultProximityBound, testLogger())
}

func TestFindConversationsRejectsInvertedRange(t *testing.T) {
	svc := newTestChatService(&stubChatStore{})

	_, err := svc.FindConversations(context.Background(), ChatQuery{
		StartDate: "2024-05-10",
		EndDate:   "2024-05-01",
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestFindConversationsRejectsBadStockFilter(t *testing.T) {
	svc := newTestChatService(&stubChatStore{})

	_, err := svc.FindConversations(context.Background(), ChatQuery{
		StartDate: "2024-05-01",
		EndDate:   "2024-05-10",
		Stock:     "bogus",
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestFindConversationsWrapsStoreErrors(t *testing.T) {
	svc := newTestChatService(&stubChatStore{recordErr: errors.New("connection reset")})

	_, err := svc.FindConversations(context.Background(), ChatQuery{
		StartDate: "2024-05-01",
		EndDate:   "2024-05-10",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.False(t, IsValidationError(err))
}

func TestFindConversationsCorrelates(t *testing.T) {
	base := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	hashQ := logRecord("2024-05-02_00003", "alice@corp.com", models.RoleQuestion, "prices today?", base)
	hashQ.HashValue = strPtr("h-1")
	hashA := logRecord("2024-05-02_00004", "bot@corp.com", models.RoleAnswer, "hash answer", base.Add(time.Minute))
	hashA.HashRef = strPtr("h-1")

	seqQ := logRecord("2024-05-02_00007", "bob@corp.com", models.RoleQuestion, "follow up", base.Add(time.Hour))
	seqA := logRecord("2024-05-02_00006", "bob@corp.com", models.RoleAnswer, "sequence answer", base.Add(time.Hour-time.Minute))

	orphan := logRecord("2024-05-02_00010", "carol@corp.com", models.RoleQuestion, "anyone there?", base.Add(2*time.Hour))

	svc := newTestChatService(&stubChatStore{
		records: []models.LogRecord{hashQ, hashA, seqQ, seqA, orphan},
	})

	page, err := svc.FindConversations(context.Background(), ChatQuery{
		StartDate: "2024-05-01",
		EndDate:   "2024-05-03",
	})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)

	byID := map[string]models.Conversation{}
	for _, c := range page.Items {
		byID[c.ID] = c
	}

	require.NotNil(t, byID["2024-05-02_00003"].Answer)
	assert.Equal(t, "hash answer", *byID["2024-05-02_00003"].Answer)
	require.NotNil(t, byID["2024-05-02_00007"].Answer)
	assert.Equal(t, "sequence answer", *byID["2024-05-02_00007"].Answer)
	assert.Nil(t, byID["2024-05-02_00010"].Answer)
}

func TestFindConversationsSortsMostRecentFirst(t *testing.T) {
	base := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestChatService(&stubChatStore{
		records: []models.LogRecord{
			logRecord("2024-05-02_00001", "alice@corp.com", models.RoleQuestion, "first", base),
			logRecord("2024-05-02_00002", "alice@corp.com", models.RoleQuestion, "second", base.Add(time.Hour)),
			// Same timestamp as the second: the higher id wins the tie.
			logRecord("2024-05-02_00003", "alice@corp.com", models.RoleQuestion, "third", base.Add(time.Hour)),
		},
	})

	page, err := svc.FindConversations(context.Background(), ChatQuery{
		StartDate: "2024-05-01",
		EndDate:   "2024-05-03",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "2024-05-02_00003", page.Items[0].ID)
	assert.Equal(t, "2024-05-02_00002", page.Items[1].ID)
	assert.Equal(t, "2024-05-02_00001", page.Items[2].ID)
}

func TestFindConversationsFilters(t *testing.T) {
	base := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	store := &stubChatStore{
		records: []models.LogRecord{
			logRecord("2024-05-02_00001", "alice@corp.com", models.RoleQuestion, "Samsung stock outlook", base),
			logRecord("2024-05-02_00002", "bob@corp.com", models.RoleQuestion, "lunch menu", base.Add(time.Minute)),
			logRecord("2024-05-02_00003", "alice@corp.com", models.RoleQuestion, "weather tomorrow", base.Add(2*time.Minute)),
		},
		positive: map[string]struct{}{"2024-05-02_00001": {}},
	}
	svc := newTestChatService(store)
	rangeQuery := ChatQuery{StartDate: "2024-05-01", EndDate: "2024-05-03"}

	t.Run("by user", func(t *testing.T) {
		q := rangeQuery
		q.User = "alice@corp.com"
		page, err := svc.FindConversations(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("by user substring ignoring case", func(t *testing.T) {
		q := rangeQuery
		q.User = "ALICE"
		page, err := svc.FindConversations(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("by keyword case-insensitive", func(t *testing.T) {
		q := rangeQuery
		q.Keyword = "SAMSUNG"
		page, err := svc.FindConversations(context.Background(), q)
		require.NoError(t, err)
		require.Equal(t, 1, page.Total)
		assert.Equal(t, "2024-05-02_00001", page.Items[0].ID)
	})

	t.Run("stock split partitions", func(t *testing.T) {
		all, err := svc.FindConversations(context.Background(), rangeQuery)
		require.NoError(t, err)

		q := rangeQuery
		q.Stock = models.StockOnly
		stock, err := svc.FindConversations(context.Background(), q)
		require.NoError(t, err)
		assert.True(t, stock.Items[0].IsStock)

		q.Stock = models.StockExcluded
		nonStock, err := svc.FindConversations(context.Background(), q)
		require.NoError(t, err)

		assert.Equal(t, all.Total, stock.Total+nonStock.Total)
	})
}

func TestFindConversationsPagination(t *testing.T) {
	base := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	records := make([]models.LogRecord, 0, 7)
	for i := 0; i < 7; i++ {
		records = append(records, logRecord(
			fmt.Sprintf("2024-05-02_%05d", i+1),
			"alice@corp.com", models.RoleQuestion,
			fmt.Sprintf("question %d", i+1),
			base.Add(time.Duration(i)*time.Minute),
		))
	}
	svc := newTestChatService(&stubChatStore{records: records})
	query := func(page int) ChatQuery {
		return ChatQuery{StartDate: "2024-05-01", EndDate: "2024-05-03", Page: page, PageSize: 3}
	}

	seen := map[string]bool{}
	for p := 0; p <= 2; p++ {
		page, err := svc.FindConversations(context.Background(), query(p))
		require.NoError(t, err)
		assert.Equal(t, 7, page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, p, page.Page)
		for _, c := range page.Items {
			assert.False(t, seen[c.ID], "conversation %s appeared on two pages", c.ID)
			seen[c.ID] = true
		}
	}
	assert.Len(t, seen, 7)

	overflow, err := svc.FindConversations(context.Background(), query(3))
	require.NoError(t, err)
	assert.Empty(t, overflow.Items)
	assert.Equal(t, 7, overflow.Total)

	huge := query(0)
	huge.PageSize = 5000
	capped, err := svc.FindConversations(context.Background(), huge)
	require.NoError(t, err)
	assert.Equal(t, 100, capped.PageSize)
}

func TestFindConversationsZeroBasedPaging(t *testing.T) {
	base := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	records := make([]models.LogRecord, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, logRecord(
			fmt.Sprintf("2024-05-02_%05d", i+1),
			"alice@corp.com", models.RoleQuestion,
			fmt.Sprintf("question %d", i+1),
			base.Add(time.Duration(i)*time.Minute),
		))
	}
	svc := newTestChatService(&stubChatStore{records: records})
	query := func(page int) ChatQuery {
		return ChatQuery{StartDate: "2024-05-01", EndDate: "2024-05-03", Page: page, PageSize: 10}
	}

	first, err := svc.FindConversations(context.Background(), query(0))
	require.NoError(t, err)
	require.Len(t, first.Items, 10)
	assert.Equal(t, 0, first.Page)
	assert.Equal(t, "2024-05-02_00020", first.Items[0].ID)

	second, err := svc.FindConversations(context.Background(), query(1))
	require.NoError(t, err)
	require.Len(t, second.Items, 10)
	assert.Equal(t, "2024-05-02_00010", second.Items[0].ID)

	onFirst := map[string]bool{}
	for _, c := range first.Items {
		onFirst[c.ID] = true
	}
	for _, c := range second.Items {
		assert.False(t, onFirst[c.ID], "conversation %s appeared on both pages", c.ID)
	}

	negative, err := svc.FindConversations(context.Background(), query(-3))
	require.NoError(t, err)
	assert.Equal(t, 0, negative.Page)
	assert.Equal(t, first.Items, negative.Items)
}
