package correlate

import (
	"time"

	"github.com/raphaelgruber/chatstats-go/internal/models"
)

// Outcome labels how a question was resolved. Used for metrics and tests.
type Outcome string

const (
	OutcomeHash       Outcome = "hash"
	OutcomeSequence   Outcome = "sequence"
	OutcomeNearest    Outcome = "nearest"
	OutcomeUnanswered Outcome = "unanswered"
)

// Resolver merges the hash index and the legacy matcher into a single
// question-to-answer mapping for one window. It is built per request from
// the current state of the log and holds no shared state.
type Resolver struct {
	hash   *HashIndex
	legacy *LegacyMatcher
}

// NewResolver builds both correlators from the answer records of a window.
func NewResolver(answers []models.LogRecord, bound time.Duration) *Resolver {
	return &Resolver{
		hash:   BuildHashIndex(answers),
		legacy: NewLegacyMatcher(answers, bound),
	}
}

// Resolve maps a question to its answer content. The hash path takes
// precedence: a question carrying a hash_value that is indexed resolves
// there even when a legacy rule would also match. On a hash miss or an
// absent hash the legacy rules apply in order. A nil answer means the
// question is unanswered.
func (r *Resolver) Resolve(q models.LogRecord) (*string, Outcome) {
	if q.HashValue != nil {
		if content, ok := r.hash.Lookup(*q.HashValue); ok {
			return &content, OutcomeHash
		}
	}
	if content, ok := r.legacy.matchSequence(q); ok {
		return &content, OutcomeSequence
	}
	if content, ok := r.legacy.matchNearest(q); ok {
		return &content, OutcomeNearest
	}
	return nil, OutcomeUnanswered
}
