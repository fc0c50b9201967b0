package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/chatstats-go/internal/service"
)

// ClickRatioInput defines the input schema for the click_ratio tool.
type ClickRatioInput struct {
	StartDate string `json:"startDate" jsonschema:"required,Range start YYYY-MM-DD"`
	EndDate   string `json:"endDate" jsonschema:"required,Range end YYYY-MM-DD, inclusive"`
}

// NewClickRatioHandler creates the click_ratio tool handler.
func NewClickRatioHandler(deps *Dependencies) mcp.ToolHandlerFor[ClickRatioInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ClickRatioInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.StartDate == "" || input.EndDate == "" {
			return ErrorResult("startDate and endDate are required",
				"Provide both dates as YYYY-MM-DD"), nil, nil
		}

		ratio, err := deps.Clicks.ClickRatio(ctx, input.StartDate, input.EndDate)
		if err != nil {
			if service.IsValidationError(err) {
				return ErrorResult(err.Error(), "Check the date format and order"), nil, nil
			}
			deps.Logger.Error("click_ratio failed", "error", err)
			return ErrorResult("Failed to load click ratio", "Database may be unavailable"), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(ratio, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}
