package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/models"
)

func TestClientQuery(t *testing.T) {
	ctx := context.Background()

	result, err := testDB.Query(ctx, "RETURN 1", nil)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}
}

func TestInitSchemaIdempotent(t *testing.T) {
	ctx := context.Background()

	// IF NOT EXISTS makes re-initialization safe on an existing database.
	if err := testDB.InitSchema(ctx); err != nil {
		t.Fatalf("second InitSchema failed: %v", err)
	}
}

func TestInsertLogRecordDuplicate(t *testing.T) {
	ctx := context.Background()
	wipe(t, ctx)

	ts := time.Date(2025, 9, 16, 9, 0, 0, 0, time.UTC)
	seedRecord(t, ctx, "dup_00001", "u1", models.RoleQuestion, "q", ts, "", "")

	err := testDB.InsertLogRecord(ctx, models.LogRecord{
		ID: "dup_00001", Timestamp: ts, Role: models.RoleQuestion,
		UserID: "u1", Content: "q",
	})
	if err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestWrapQueryErrorPassthrough(t *testing.T) {
	if wrapQueryError(nil) != nil {
		t.Error("nil should stay nil")
	}

	plain := errors.New("connection reset")
	if !errors.Is(wrapQueryError(plain), plain) {
		t.Error("unrecognised errors should pass through unchanged")
	}
}
