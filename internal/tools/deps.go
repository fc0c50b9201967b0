// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/raphaelgruber/chatstats-go/internal/service"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Chats     *service.ChatService
	Analytics *service.AnalyticsService
	Clicks    *service.ClickService
	Reports   *service.ReportService
	Logger    *slog.Logger
}
