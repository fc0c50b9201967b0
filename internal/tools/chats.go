package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/chatstats-go/internal/service"
)

// FindChatsInput defines the input schema for the find_chats tool.
type FindChatsInput struct {
	StartDate string `json:"startDate" jsonschema:"required,Start date YYYY-MM-DD (inclusive)"`
	EndDate   string `json:"endDate" jsonschema:"required,End date YYYY-MM-DD (inclusive)"`
	UserID    string `json:"userId,omitempty" jsonschema:"Case-insensitive user id substring filter"`
	Keyword   string `json:"keyword,omitempty" jsonschema:"Case-insensitive question keyword filter"`
	IsStock   string `json:"isStock,omitempty" jsonschema:"Stock filter: all, stock or non-stock"`
	Page      int    `json:"page,omitempty" jsonschema:"Zero-based page number, default 0"`
	PageSize  int    `json:"pageSize,omitempty" jsonschema:"Page size, default 10, max 100"`
}

// NewFindChatsHandler creates the find_chats tool handler. It runs the same
// correlated conversation search the HTTP API serves.
func NewFindChatsHandler(deps *Dependencies) mcp.ToolHandlerFor[FindChatsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FindChatsInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.StartDate == "" || input.EndDate == "" {
			return ErrorResult("startDate and endDate are required", "Provide both dates as YYYY-MM-DD"), nil, nil
		}

		page, err := deps.Chats.FindConversations(ctx, service.ChatQuery{
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
			User:      input.UserID,
			Keyword:   input.Keyword,
			Stock:     input.IsStock,
			Page:      input.Page,
			PageSize:  input.PageSize,
		})
		if err != nil {
			if service.IsValidationError(err) {
				return ErrorResult(err.Error(), "Check the date range and filters"), nil, nil
			}
			deps.Logger.Error("find_chats failed", "error", err)
			return ErrorResult("Failed to load conversations", "Database may be unavailable"), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(page, "", "  ")
		deps.Logger.Info("find_chats completed", "total", page.Total, "page", page.Page)
		return TextResult(string(jsonBytes)), nil, nil
	}
}
