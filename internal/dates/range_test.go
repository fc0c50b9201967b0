package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Wednesday.
var now = time.Date(2025, 9, 17, 15, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2025-09-01", "2025-09-17")
	require.NoError(t, err)
	assert.Equal(t, day(2025, 9, 1), r.Start)
	assert.Equal(t, day(2025, 9, 17), r.End)
}

func TestParseRangeRejectsInvertedBounds(t *testing.T) {
	_, err := ParseRange("2025-09-18", "2025-09-17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than or equal")
}

func TestParseRangeRejectsMalformedDates(t *testing.T) {
	_, err := ParseRange("2025/09/01", "2025-09-17")
	assert.Error(t, err)

	_, err = ParseRange("2025-09-01", "not-a-date")
	assert.Error(t, err)
}

func TestParseRangeAllowsSingleDay(t *testing.T) {
	r, err := ParseRange("2025-09-17", "2025-09-17")
	require.NoError(t, err)
	assert.Equal(t, r.Start, r.End)
	assert.Equal(t, day(2025, 9, 18), r.NextDay())
}

func TestForType(t *testing.T) {
	tests := []struct {
		dateType   string
		start, end time.Time
	}{
		{"today", day(2025, 9, 17), day(2025, 9, 17)},
		{"yesterday", day(2025, 9, 16), day(2025, 9, 16)},
		{"thisWeek", day(2025, 9, 15), day(2025, 9, 17)},
		{"thisMonth", day(2025, 9, 1), day(2025, 9, 17)},
	}
	for _, tt := range tests {
		t.Run(tt.dateType, func(t *testing.T) {
			r, err := ForType(tt.dateType, "", "", now)
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}
}

func TestForTypeWeekStartsMondayOnSunday(t *testing.T) {
	sunday := time.Date(2025, 9, 21, 8, 0, 0, 0, time.UTC)
	r, err := ForType("thisWeek", "", "", sunday)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 9, 15), r.Start)
}

func TestForTypeCustom(t *testing.T) {
	r, err := ForType("custom", "2025-09-01", "2025-09-10", now)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 9, 1), r.Start)
	assert.Equal(t, day(2025, 9, 10), r.End)

	_, err = ForType("custom", "", "2025-09-10", now)
	assert.Error(t, err, "custom range requires both bounds")
}

func TestForTypeUnknown(t *testing.T) {
	_, err := ForType("lastYear", "", "", now)
	assert.Error(t, err)
}

func TestForPeriod(t *testing.T) {
	r, err := ForPeriod("daily", now)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 9, 17), r.Start)

	r, err = ForPeriod("weekly", now)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 9, 10), r.Start)
	assert.Equal(t, day(2025, 9, 17), r.End)

	r, err = ForPeriod("monthly", now)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 9, 1), r.Start)

	_, err = ForPeriod("yearly", now)
	assert.Error(t, err)
}
