package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raphaelgruber/chatstats-go/internal/service"
)

// Services bundles everything the router serves.
type Services struct {
	Chats     *service.ChatService
	Analytics *service.AnalyticsService
	Clicks    *service.ClickService
	Reports   *service.ReportService
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(svcs Services, logger *slog.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	engine.GET("/health", Health())
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/chats", FindChats(svcs.Chats))

		chat := apiGroup.Group("/chat-analytics")
		{
			chat.GET("/daily", DailyStats(svcs.Analytics))
			chat.GET("/hourly", HourlyStats(svcs.Analytics))
			chat.GET("/weekday", WeekdayStats(svcs.Analytics))
			chat.GET("/ranking", UserRanking(svcs.Analytics))
		}

		click := apiGroup.Group("/click-analytics")
		{
			click.GET("/user-ranking", UserClickRanking(svcs.Clicks))
			click.GET("/ratio", ClickRatio(svcs.Clicks))
		}

		apiGroup.GET("/home/daily-stats", DailyReport(svcs.Reports))
	}

	return engine
}
