package models

import "time"

// Conversation is a question enriched with its resolved answer and stock
// classification. Answer is nil for unanswered questions; that is a normal
// terminal state, not an error.
type Conversation struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	Question  string    `json:"question"`
	Answer    *string   `json:"answer"`
	IsStock   bool      `json:"isStock"`
}

// ConversationPage is one page of filtered conversations plus pagination
// metadata. Total counts all records surviving filtering, not just the
// returned slice.
type ConversationPage struct {
	Items      []Conversation `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// StockFilter values accepted by the conversation search.
const (
	StockAll      = "all"
	StockOnly     = "stock"
	StockExcluded = "non-stock"
)

// ValidStockFilter reports whether s is one of the accepted stock filter
// values.
func ValidStockFilter(s string) bool {
	return s == StockAll || s == StockOnly || s == StockExcluded
}
