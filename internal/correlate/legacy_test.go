package correlate

import (
	"testing"
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceDecrementMatch(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	m := NewLegacyMatcher([]models.LogRecord{
		answer("2024-01-01_00006", "u1", "the preceding answer", ts, ""),
		answer("2024-01-01_00008", "u1", "a later answer", ts.Add(time.Hour), ""),
	}, 0)

	q := question("2024-01-01_00007", "u1", "q", ts.Add(time.Minute), "")
	content, ok := m.Match(q)
	require.True(t, ok)
	assert.Equal(t, "the preceding answer", content,
		"sequence-decrement match should be selected over later answers")
}

func TestSequenceDecrementRequiresSameUser(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	m := NewLegacyMatcher([]models.LogRecord{
		answer("2024-01-01_00006", "u2", "someone else's answer", ts, ""),
	}, 0)

	q := question("2024-01-01_00007", "u1", "q", ts.Add(time.Minute), "")
	_, ok := m.Match(q)
	assert.False(t, ok, "sequence rule must not cross users")
}

func TestSequenceDecrementPreservesPadding(t *testing.T) {
	seq, err := models.ParseSequenceID("2024-01-01_00007")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01_00006", seq.Prev())

	seq, err = models.ParseSequenceID("2024-01-01_010")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01_009", seq.Prev())
}

func TestNearestSubsequentMatch(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	m := NewLegacyMatcher([]models.LogRecord{
		answer("2024-01-01_00010", "u1", "distant", base.Add(3*time.Hour), ""),
		answer("2024-01-01_00004", "u1", "nearest", base.Add(10*time.Minute), ""),
		answer("2024-01-01_00002", "u1", "before the question", base.Add(-time.Hour), ""),
		answer("2024-01-01_00005", "u2", "other user", base.Add(time.Minute), ""),
	}, 0)

	q := question("no-legacy-id", "u1", "q", base, "")
	content, ok := m.Match(q)
	require.True(t, ok)
	assert.Equal(t, "nearest", content,
		"the minimal strictly-greater timestamp for the same user should win")
}

func TestNearestSubsequentIsStrictlyAfter(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	m := NewLegacyMatcher([]models.LogRecord{
		answer("2024-01-01_00002", "u1", "same instant", base, ""),
	}, 0)

	q := question("no-legacy-id", "u1", "q", base, "")
	_, ok := m.Match(q)
	assert.False(t, ok, "an answer at the exact question timestamp is not a forward match")
}

func TestNearestSubsequentRespectsBound(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	answers := []models.LogRecord{
		answer("2024-01-02_00002", "u1", "next day plus", base.Add(25*time.Hour), ""),
	}

	m := NewLegacyMatcher(answers, 0)
	q := question("no-legacy-id", "u1", "q", base, "")
	_, ok := m.Match(q)
	assert.False(t, ok, "candidates beyond the 24h bound are spurious")

	// A wider bound admits the same candidate.
	m = NewLegacyMatcher(answers, 48*time.Hour)
	content, ok := m.Match(q)
	require.True(t, ok)
	assert.Equal(t, "next day plus", content)
}

func TestMatchOrderSequenceBeforeNearest(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	m := NewLegacyMatcher([]models.LogRecord{
		answer("2024-01-01_00006", "u1", "by sequence", base.Add(2*time.Hour), ""),
		answer("2024-01-01_00009", "u1", "by proximity", base.Add(time.Minute), ""),
	}, 0)

	q := question("2024-01-01_00007", "u1", "q", base, "")
	content, ok := m.Match(q)
	require.True(t, ok)
	assert.Equal(t, "by sequence", content,
		"sequence-decrement rule runs before the temporal rule")
}

func TestMatchUnanswered(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	m := NewLegacyMatcher(nil, 0)

	_, ok := m.Match(question("2024-01-01_00007", "u1", "q", base, ""))
	assert.False(t, ok)
}
