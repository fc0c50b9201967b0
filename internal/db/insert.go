package db

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/chatstats-go/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// The analytics backend itself never writes to the log; ingestion is an
// external path. These helpers exist for integration tests and one-off
// backfills.

// InsertLogRecord creates a conv_log row with the record's id.
func (c *Client) InsertLogRecord(ctx context.Context, rec models.LogRecord) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE type::record("conv_log", $id) SET
			date = $date,
			qa = $qa,
			content = $content,
			user_id = $user_id,
			hash_value = $hash_value,
			hash_ref = $hash_ref
	`, map[string]any{
		"id":         rec.ID,
		"date":       rec.Timestamp,
		"qa":         rec.Role,
		"content":    rec.Content,
		"user_id":    rec.UserID,
		"hash_value": rec.HashValue,
		"hash_ref":   rec.HashRef,
	})
	if err != nil {
		return fmt.Errorf("insert log record %s: %w", rec.ID, wrapQueryError(err))
	}
	return nil
}

// InsertClick creates a clicked_log row for a conversation.
func (c *Client) InsertClick(ctx context.Context, convID, userID string, clicked bool) error {
	mark := "x"
	if clicked {
		mark = "o"
	}
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE clicked_log SET conv_id = $conv_id, clicked = $clicked, user_id = $user_id
	`, map[string]any{"conv_id": convID, "clicked": mark, "user_id": userID})
	if err != nil {
		return fmt.Errorf("insert click %s: %w", convID, wrapQueryError(err))
	}
	return nil
}

// InsertStockCls creates a stock classification row for a conversation.
func (c *Client) InsertStockCls(ctx context.Context, convID, ensemble, gptRes, encRes string) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE stock_cls SET
			conv_id = $conv_id,
			ensemble = $ensemble,
			gpt_res = $gpt_res,
			enc_res = $enc_res
	`, map[string]any{
		"conv_id":  convID,
		"ensemble": ensemble,
		"gpt_res":  gptRes,
		"enc_res":  encRes,
	})
	if err != nil {
		return fmt.Errorf("insert stock cls %s: %w", convID, wrapQueryError(err))
	}
	return nil
}
