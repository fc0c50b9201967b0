package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	// Ping tool - test/placeholder
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Test tool - responds with pong or echoes input",
	}, NewPingHandler(deps))

	// Conversation search with question-answer correlation
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_chats",
		Description: "Search conversations in a date range with user, keyword and stock filters",
	}, NewFindChatsHandler(deps))

	// Per-day chat volume
	mcp.AddTool(server, &mcp.Tool{
		Name:        "daily_stats",
		Description: "Chat and user counts per day for a date range",
	}, NewDailyStatsHandler(deps))

	// Top users by question count
	mcp.AddTool(server, &mcp.Tool{
		Name:        "user_ranking",
		Description: "Top users by chat count over a reporting period",
	}, NewUserRankingHandler(deps))

	// Clicked vs not-clicked split
	mcp.AddTool(server, &mcp.Tool{
		Name:        "click_ratio",
		Description: "Clicked vs not-clicked answer split over a date range",
	}, NewClickRatioHandler(deps))
}
