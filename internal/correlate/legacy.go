package correlate

import (
	"sort"
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/models"
)

// DefaultProximityBound caps how far forward in time the nearest-subsequent
// rule may reach. Matches beyond the bound are treated as spurious.
const DefaultProximityBound = 24 * time.Hour

type answerKey struct {
	id     string
	userID string
}

// LegacyMatcher resolves pre-cutover questions using two ordered fallback
// rules: an exact sequence-decrement id match, then the temporally nearest
// same-user answer after the question. It never matches across users.
type LegacyMatcher struct {
	byID   map[answerKey]string
	byUser map[string][]models.LogRecord
	bound  time.Duration
}

// NewLegacyMatcher builds a matcher over the answer records of a window.
// A non-positive bound falls back to DefaultProximityBound.
func NewLegacyMatcher(answers []models.LogRecord, bound time.Duration) *LegacyMatcher {
	if bound <= 0 {
		bound = DefaultProximityBound
	}
	m := &LegacyMatcher{
		byID:   make(map[answerKey]string, len(answers)),
		byUser: make(map[string][]models.LogRecord),
		bound:  bound,
	}
	for _, a := range answers {
		if !a.IsAnswer() {
			continue
		}
		m.byID[answerKey{id: a.ID, userID: a.UserID}] = a.Content
		m.byUser[a.UserID] = append(m.byUser[a.UserID], a)
	}
	// Ascending timestamps per user so the nearest forward match is the
	// first one at or after the search point.
	for _, recs := range m.byUser {
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].Timestamp.Before(recs[j].Timestamp)
		})
	}
	return m
}

// Match resolves a question to an answer, or returns false when neither
// rule yields one. An unanswered question is expected, not an error.
func (m *LegacyMatcher) Match(q models.LogRecord) (string, bool) {
	if content, ok := m.matchSequence(q); ok {
		return content, true
	}
	return m.matchNearest(q)
}

// matchSequence applies the sequence-decrement rule: a question with legacy
// id "{date}_{n}" is answered by the record "{date}_{n-1}" when that exact
// id exists for the same user.
func (m *LegacyMatcher) matchSequence(q models.LogRecord) (string, bool) {
	seq, err := models.ParseSequenceID(q.ID)
	if err != nil {
		return "", false
	}
	content, ok := m.byID[answerKey{id: seq.Prev(), userID: q.UserID}]
	return content, ok
}

// matchNearest applies the nearest-subsequent rule: among same-user answers
// strictly after the question's timestamp, the one with the smallest
// timestamp wins, provided it falls within the proximity bound.
func (m *LegacyMatcher) matchNearest(q models.LogRecord) (string, bool) {
	candidates := m.byUser[q.UserID]
	i := sort.Search(len(candidates), func(i int) bool {
		return candidates[i].Timestamp.After(q.Timestamp)
	})
	if i == len(candidates) {
		return "", false
	}
	nearest := candidates[i]
	if nearest.Timestamp.Sub(q.Timestamp) > m.bound {
		return "", false
	}
	return nearest.Content, true
}
