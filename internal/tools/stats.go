package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/chatstats-go/internal/service"
)

// DailyStatsInput defines the input schema for the daily_stats tool.
type DailyStatsInput struct {
	StartDate string `json:"startDate" jsonschema:"required,Range start YYYY-MM-DD"`
	EndDate   string `json:"endDate" jsonschema:"required,Range end YYYY-MM-DD, inclusive"`
}

// NewDailyStatsHandler creates the daily_stats tool handler.
func NewDailyStatsHandler(deps *Dependencies) mcp.ToolHandlerFor[DailyStatsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DailyStatsInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.StartDate == "" || input.EndDate == "" {
			return ErrorResult("startDate and endDate are required",
				"Provide both dates as YYYY-MM-DD"), nil, nil
		}

		counts, err := deps.Analytics.DailyStats(ctx, input.StartDate, input.EndDate)
		if err != nil {
			if service.IsValidationError(err) {
				return ErrorResult(err.Error(), "Check the date format and order"), nil, nil
			}
			deps.Logger.Error("daily_stats failed", "error", err)
			return ErrorResult("Failed to load daily stats", "Database may be unavailable"), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(counts, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}

// UserRankingInput defines the input schema for the user_ranking tool.
type UserRankingInput struct {
	Period    string `json:"period,omitempty" jsonschema:"Reporting period: daily, weekly or monthly (default weekly)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Max rows, default 10"`
	StartDate string `json:"startDate,omitempty" jsonschema:"Custom range start YYYY-MM-DD, overrides period"`
	EndDate   string `json:"endDate,omitempty" jsonschema:"Custom range end YYYY-MM-DD, overrides period"`
}

// NewUserRankingHandler creates the user_ranking tool handler.
func NewUserRankingHandler(deps *Dependencies) mcp.ToolHandlerFor[UserRankingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UserRankingInput) (
		*mcp.CallToolResult, any, error,
	) {
		period := input.Period
		if period == "" {
			period = "weekly"
		}

		ranks, err := deps.Analytics.UserRanking(ctx, period, input.Limit, true,
			input.StartDate, input.EndDate)
		if err != nil {
			if service.IsValidationError(err) {
				return ErrorResult(err.Error(), "Use daily, weekly or monthly"), nil, nil
			}
			deps.Logger.Error("user_ranking failed", "error", err)
			return ErrorResult("Failed to load user ranking", "Database may be unavailable"), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(ranks, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}
