// Package models defines data structures for the chatstats analytics backend.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record roles in the conversational log.
const (
	RoleQuestion = "Q"
	RoleAnswer   = "A"
)

// LogRecord is one immutable entry in the conversational log.
// Legacy ids follow the pattern "{date}_{sequence}" where the sequence is a
// zero-padded integer unique within that date-and-user partition. Records
// created after the hash cutover additionally carry HashValue (questions)
// and HashRef (answers).
type LogRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"date"`
	Role      string    `json:"qa"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	HashValue *string   `json:"hash_value,omitempty"`
	HashRef   *string   `json:"hash_ref,omitempty"`
}

// IsQuestion reports whether the record is tagged as a question.
func (r LogRecord) IsQuestion() bool { return r.Role == RoleQuestion }

// IsAnswer reports whether the record is tagged as an answer.
func (r LogRecord) IsAnswer() bool { return r.Role == RoleAnswer }

// SequenceID holds the parsed form of a legacy "{date}_{sequence}" id.
type SequenceID struct {
	Date     string
	Sequence int
	Width    int
}

// ParseSequenceID splits a legacy record id into its date and sequence
// parts. Returns an error for ids that do not follow the legacy pattern,
// which is the expected case for post-cutover records.
func ParseSequenceID(id string) (SequenceID, error) {
	date, seq, ok := strings.Cut(id, "_")
	if !ok || date == "" || seq == "" {
		return SequenceID{}, fmt.Errorf("id %q is not a legacy sequence id", id)
	}
	n, err := strconv.Atoi(seq)
	if err != nil {
		return SequenceID{}, fmt.Errorf("id %q has non-numeric sequence: %w", id, err)
	}
	return SequenceID{Date: date, Sequence: n, Width: len(seq)}, nil
}

// Prev returns the id of the preceding record in the same date partition,
// preserving the zero-padding width of the original sequence.
func (s SequenceID) Prev() string {
	return fmt.Sprintf("%s_%0*d", s.Date, s.Width, s.Sequence-1)
}
