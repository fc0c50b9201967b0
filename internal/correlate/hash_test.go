package correlate

import (
	"testing"
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func answer(id, user, content string, ts time.Time, hashRef string) models.LogRecord {
	rec := models.LogRecord{
		ID:        id,
		Timestamp: ts,
		Role:      models.RoleAnswer,
		UserID:    user,
		Content:   content,
	}
	if hashRef != "" {
		rec.HashRef = strPtr(hashRef)
	}
	return rec
}

func question(id, user, content string, ts time.Time, hashValue string) models.LogRecord {
	rec := models.LogRecord{
		ID:        id,
		Timestamp: ts,
		Role:      models.RoleQuestion,
		UserID:    user,
		Content:   content,
	}
	if hashValue != "" {
		rec.HashValue = strPtr(hashValue)
	}
	return rec
}

func TestHashIndexLookup(t *testing.T) {
	ts := time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC)
	idx := BuildHashIndex([]models.LogRecord{
		answer("2025-09-17_00002", "u1", "answer one", ts, "H1"),
		answer("2025-09-17_00004", "u2", "answer two", ts.Add(time.Minute), "H2"),
	})

	require.Equal(t, 2, idx.Len())

	content, ok := idx.Lookup("H1")
	require.True(t, ok)
	assert.Equal(t, "answer one", content)

	content, ok = idx.Lookup("H2")
	require.True(t, ok)
	assert.Equal(t, "answer two", content)

	_, ok = idx.Lookup("H3")
	assert.False(t, ok)
}

func TestHashIndexDuplicateRefLastWins(t *testing.T) {
	ts := time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC)
	idx := BuildHashIndex([]models.LogRecord{
		answer("2025-09-17_00002", "u1", "first insert", ts, "H1"),
		answer("2025-09-17_00004", "u1", "second insert", ts.Add(time.Minute), "H1"),
	})

	content, ok := idx.Lookup("H1")
	require.True(t, ok)
	assert.Equal(t, "second insert", content, "most recently inserted answer should win")
}

func TestHashIndexSkipsNonAnswers(t *testing.T) {
	ts := time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC)
	q := question("2025-09-17_00001", "u1", "a question", ts, "H1")
	q.HashRef = strPtr("H1") // malformed row: ref on a question

	idx := BuildHashIndex([]models.LogRecord{
		q,
		answer("2025-09-17_00002", "u1", "no ref", ts, ""),
	})

	assert.Equal(t, 0, idx.Len())
	_, ok := idx.Lookup("H1")
	assert.False(t, ok)
}

func TestHashIndexEmptyLookup(t *testing.T) {
	idx := BuildHashIndex(nil)
	_, ok := idx.Lookup("")
	assert.False(t, ok)
}
