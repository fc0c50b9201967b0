// Package correlate reconstructs question-answer pairs from a flat window
// of conversational log records. Two record-linkage schemes coexist in the
// log: an explicit hash-reference scheme introduced at the schema cutover,
// and a legacy heuristic scheme based on sequential ids and temporal
// proximity. The hash path always wins when it resolves.
package correlate

import "github.com/raphaelgruber/chatstats-go/internal/models"

// HashIndex maps an answer's hash_ref to the answer content. Build cost is
// O(answers), lookups are O(1).
type HashIndex struct {
	byRef map[string]string
}

// BuildHashIndex indexes the answer records of a window by hash_ref.
// Records without a ref are skipped. When a ref appears more than once the
// trailing occurrence in the slice order the window was loaded in wins;
// callers pass the window as loaded, date descending.
func BuildHashIndex(answers []models.LogRecord) *HashIndex {
	idx := &HashIndex{byRef: make(map[string]string, len(answers))}
	for _, a := range answers {
		if !a.IsAnswer() || a.HashRef == nil || *a.HashRef == "" {
			continue
		}
		idx.byRef[*a.HashRef] = a.Content
	}
	return idx
}

// Lookup resolves a question's hash_value to the content of the answer
// referencing it. The second return is false on a miss.
func (idx *HashIndex) Lookup(hashValue string) (string, bool) {
	if hashValue == "" {
		return "", false
	}
	content, ok := idx.byRef[hashValue]
	return content, ok
}

// Len returns the number of indexed refs.
func (idx *HashIndex) Len() int { return len(idx.byRef) }
