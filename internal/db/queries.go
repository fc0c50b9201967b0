// Package db provides SurrealDB query functions over the conversational log.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/metrics"
	"github.com/raphaelgruber/chatstats-go/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// RecordsInRange loads every log record with start <= date < end, both
// roles, ordered by date descending (most recent first). The trailing order
// of this slice is what the hash correlator's "most recently inserted wins"
// rule is defined against.
func (c *Client) RecordsInRange(ctx context.Context, start, end time.Time) ([]models.LogRecord, error) {
	started := time.Now()
	defer func() { metrics.ObserveQuery("records_in_range", time.Since(started)) }()

	results, err := surrealdb.Query[[]models.LogRecord](ctx, c.db, `
		SELECT record::id(id) AS id, date, qa, content, user_id, hash_value, hash_ref
		FROM conv_log
		WHERE date >= $start AND date < $end
		ORDER BY date DESC
	`, map[string]any{"start": start, "end": end})
	if err != nil {
		return nil, fmt.Errorf("records in range: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.LogRecord{}, nil
	}
	return (*results)[0].Result, nil
}

// StockPositiveIDs returns the subset of ids that have a classification row
// with a positive ensemble marker.
func (c *Client) StockPositiveIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	if len(ids) == 0 {
		return map[string]struct{}{}, nil
	}

	results, err := surrealdb.Query[[]string](ctx, c.db, `
		SELECT VALUE conv_id FROM stock_cls
		WHERE ensemble = 'o' AND conv_id IN $ids
	`, map[string]any{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("stock positive ids: %w", err)
	}

	positive := make(map[string]struct{})
	if results != nil && len(*results) > 0 {
		for _, id := range (*results)[0].Result {
			positive[id] = struct{}{}
		}
	}
	return positive, nil
}

// DailyCounts returns per-day question counts and distinct user counts for
// start <= date < end, ordered by day ascending.
func (c *Client) DailyCounts(ctx context.Context, start, end time.Time) ([]models.DailyCount, error) {
	type row struct {
		Day   string `json:"day"`
		Chats int    `json:"chats"`
		Users int    `json:"users"`
	}

	results, err := surrealdb.Query[[]row](ctx, c.db, `
		SELECT time::format(date, '%Y-%m-%d') AS day,
		       count(qa = 'Q') AS chats,
		       array::len(array::distinct(array::group(user_id))) AS users
		FROM conv_log
		WHERE date >= $start AND date < $end
		GROUP BY day
		ORDER BY day
	`, map[string]any{"start": start, "end": end})
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}

	counts := []models.DailyCount{}
	if results != nil && len(*results) > 0 {
		for _, r := range (*results)[0].Result {
			counts = append(counts, models.DailyCount{Date: r.Day, Chats: r.Chats, Users: r.Users})
		}
	}
	return counts, nil
}

// HourlyCounts returns question counts grouped by hour of day ("00".."23")
// for start <= date < end. Hours without traffic are absent; callers
// zero-fill.
func (c *Client) HourlyCounts(ctx context.Context, start, end time.Time) ([]models.HourlyCount, error) {
	results, err := surrealdb.Query[[]models.HourlyCount](ctx, c.db, `
		SELECT time::format(date, '%H') AS hour,
		       count(qa = 'Q') AS chats
		FROM conv_log
		WHERE date >= $start AND date < $end
		GROUP BY hour
		ORDER BY hour
	`, map[string]any{"start": start, "end": end})
	if err != nil {
		return nil, fmt.Errorf("hourly counts: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.HourlyCount{}, nil
	}
	return (*results)[0].Result, nil
}

// WeekdayCount is one grouped row of the weekday aggregate; Weekday is the
// ISO weekday number "1" (Monday) through "7" (Sunday).
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Chats   int    `json:"chats"`
	Users   int    `json:"users"`
}

// WeekdayCounts returns question and distinct-user counts grouped by ISO
// weekday for start <= date < end.
func (c *Client) WeekdayCounts(ctx context.Context, start, end time.Time) ([]WeekdayCount, error) {
	results, err := surrealdb.Query[[]WeekdayCount](ctx, c.db, `
		SELECT time::format(date, '%u') AS weekday,
		       count(qa = 'Q') AS chats,
		       array::len(array::distinct(array::group(user_id))) AS users
		FROM conv_log
		WHERE date >= $start AND date < $end
		GROUP BY weekday
		ORDER BY weekday
	`, map[string]any{"start": start, "end": end})
	if err != nil {
		return nil, fmt.Errorf("weekday counts: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []WeekdayCount{}, nil
	}
	return (*results)[0].Result, nil
}

// UserChatCounts returns per-user question counts for start <= date < end,
// ordered by count in the requested direction, limited to the top rows.
func (c *Client) UserChatCounts(ctx context.Context, start, end time.Time, limit int, descending bool) ([]models.UserRank, error) {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	type row struct {
		UserID string `json:"user_id"`
		Chats  int    `json:"chats"`
	}

	sql := fmt.Sprintf(`
		SELECT user_id, count(qa = 'Q') AS chats
		FROM conv_log
		WHERE date >= $start AND date < $end
		GROUP BY user_id
		ORDER BY chats %s
		LIMIT $limit
	`, direction)

	results, err := surrealdb.Query[[]row](ctx, c.db, sql, map[string]any{
		"start": start,
		"end":   end,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("user chat counts: %w", err)
	}

	ranks := []models.UserRank{}
	if results != nil && len(*results) > 0 {
		for _, r := range (*results)[0].Result {
			ranks = append(ranks, models.UserRank{
				UserID:   r.UserID,
				UserName: models.UserName(r.UserID),
				Chats:    r.Chats,
			})
		}
	}
	return ranks, nil
}

// QuestionStats returns the question count and distinct user count for
// start <= date < end.
func (c *Client) QuestionStats(ctx context.Context, start, end time.Time) (chats, users int, err error) {
	type row struct {
		Chats int `json:"chats"`
		Users int `json:"users"`
	}

	results, qerr := surrealdb.Query[[]row](ctx, c.db, `
		SELECT count(qa = 'Q') AS chats,
		       array::len(array::distinct(array::group(user_id))) AS users
		FROM conv_log
		WHERE date >= $start AND date < $end
		GROUP ALL
	`, map[string]any{"start": start, "end": end})
	if qerr != nil {
		return 0, 0, fmt.Errorf("question stats: %w", qerr)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		r := (*results)[0].Result[0]
		chats, users = r.Chats, r.Users
	}
	return chats, users, nil
}

// UserClickCounts returns per-user distinct positive-click counts over the
// window's conv ids, ordered by count descending, limited to the top rows.
func (c *Client) UserClickCounts(ctx context.Context, start, end time.Time, limit int) ([]models.ClickRank, error) {
	type row struct {
		UserID string `json:"user_id"`
		Clicks int    `json:"clicks"`
	}

	results, err := surrealdb.Query[[]row](ctx, c.db, `
		SELECT user_id,
		       array::len(array::distinct(array::group(conv_id))) AS clicks
		FROM clicked_log
		WHERE clicked = 'o' AND conv_id IN (
			SELECT VALUE record::id(id) FROM conv_log
			WHERE date >= $start AND date < $end
		)
		GROUP BY user_id
		ORDER BY clicks DESC
		LIMIT $limit
	`, map[string]any{"start": start, "end": end, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("user click counts: %w", err)
	}

	ranks := []models.ClickRank{}
	if results != nil && len(*results) > 0 {
		for _, r := range (*results)[0].Result {
			ranks = append(ranks, models.ClickRank{
				UserID:   r.UserID,
				UserName: models.UserName(r.UserID),
				Clicks:   r.Clicks,
			})
		}
	}
	return ranks, nil
}

// ClickedConvIDs returns the distinct conv ids with a positive click row
// among the log records of the window.
func (c *Client) ClickedConvIDs(ctx context.Context, start, end time.Time) ([]string, error) {
	results, err := surrealdb.Query[[]string](ctx, c.db, `
		SELECT VALUE conv_id FROM (
			SELECT conv_id FROM clicked_log
			WHERE clicked = 'o' AND conv_id IN (
				SELECT VALUE record::id(id) FROM conv_log
				WHERE date >= $start AND date < $end
			)
			GROUP BY conv_id
		)
	`, map[string]any{"start": start, "end": end})
	if err != nil {
		return nil, fmt.Errorf("clicked conv ids: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []string{}, nil
	}
	return (*results)[0].Result, nil
}

// ClickStats returns the number of distinct clicked conv ids and distinct
// clicking users over the window's records.
func (c *Client) ClickStats(ctx context.Context, start, end time.Time) (chats, users int, err error) {
	type row struct {
		Chats int `json:"chats"`
		Users int `json:"users"`
	}

	results, qerr := surrealdb.Query[[]row](ctx, c.db, `
		SELECT array::len(array::distinct(array::group(conv_id))) AS chats,
		       array::len(array::distinct(array::group(user_id))) AS users
		FROM clicked_log
		WHERE clicked = 'o' AND conv_id IN (
			SELECT VALUE record::id(id) FROM conv_log
			WHERE date >= $start AND date < $end
		)
		GROUP ALL
	`, map[string]any{"start": start, "end": end})
	if qerr != nil {
		return 0, 0, fmt.Errorf("click stats: %w", qerr)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		r := (*results)[0].Result[0]
		chats, users = r.Chats, r.Users
	}
	return chats, users, nil
}

// StockEnsembleCounts returns the number of distinct window conv ids
// classified positive ("o") and negative ("x") by the ensemble.
func (c *Client) StockEnsembleCounts(ctx context.Context, start, end time.Time) (correct, incorrect int, err error) {
	type row struct {
		Ensemble string `json:"ensemble"`
		Count    int    `json:"count"`
	}

	results, qerr := surrealdb.Query[[]row](ctx, c.db, `
		SELECT ensemble,
		       array::len(array::distinct(array::group(conv_id))) AS count
		FROM stock_cls
		WHERE conv_id IN (
			SELECT VALUE record::id(id) FROM conv_log
			WHERE date >= $start AND date < $end
		)
		GROUP BY ensemble
	`, map[string]any{"start": start, "end": end})
	if qerr != nil {
		return 0, 0, fmt.Errorf("stock ensemble counts: %w", qerr)
	}

	if results != nil && len(*results) > 0 {
		for _, r := range (*results)[0].Result {
			switch r.Ensemble {
			case "o":
				correct = r.Count
			case "x":
				incorrect = r.Count
			}
		}
	}
	return correct, incorrect, nil
}
