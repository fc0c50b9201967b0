// Package api exposes the analytics backend over HTTP.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/raphaelgruber/chatstats-go/internal/service"
)

// FindChats serves the paginated conversation search.
func FindChats(chats *service.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := service.ChatQuery{
			StartDate: c.Query("startDate"),
			EndDate:   c.Query("endDate"),
			User:      c.Query("userId"),
			Keyword:   c.Query("keyword"),
			Stock:     c.DefaultQuery("isStock", "all"),
			Page:      intQuery(c, "page", 0),
			PageSize:  intQuery(c, "pageSize", 10),
		}

		page, err := chats.FindConversations(c.Request.Context(), q)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// DailyStats serves per-day chat volume for a date range.
func DailyStats(analytics *service.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := analytics.DailyStats(c.Request.Context(),
			c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": counts})
	}
}

// HourlyStats serves chat volume by hour of day.
func HourlyStats(analytics *service.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := analytics.HourlyStats(c.Request.Context(),
			c.DefaultQuery("dateType", "thisWeek"),
			c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": counts})
	}
}

// WeekdayStats serves chat volume by weekday for one calendar month.
func WeekdayStats(analytics *service.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := analytics.WeekdayStats(c.Request.Context(),
			intQuery(c, "year", 0), intQuery(c, "month", 0))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": counts})
	}
}

// UserRanking serves the top users by question count.
func UserRanking(analytics *service.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sortOrder := c.DefaultQuery("sortOrder", "desc")
		if sortOrder != "asc" && sortOrder != "desc" {
			abortWithError(c, service.NewValidationError(
				fmt.Sprintf("invalid sortOrder %q, must be asc or desc", sortOrder)))
			return
		}
		ranks, err := analytics.UserRanking(c.Request.Context(),
			c.DefaultQuery("period", "weekly"),
			intQuery(c, "limit", 10),
			sortOrder == "desc",
			c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": ranks})
	}
}

// UserClickRanking serves the top users by clicked answers.
func UserClickRanking(clicks *service.ClickService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ranks, err := clicks.UserClickRanking(c.Request.Context(),
			c.Query("startDate"), c.Query("endDate"),
			intQuery(c, "limit", 10))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": ranks})
	}
}

// ClickRatio serves the clicked vs not-clicked split.
func ClickRatio(clicks *service.ClickService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ratio, err := clicks.ClickRatio(c.Request.Context(),
			c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": ratio})
	}
}

// DailyReport serves the home-dashboard summary for one day.
func DailyReport(reports *service.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "date is required"})
			return
		}
		report, err := reports.DailyReport(c.Request.Context(), date)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
	}
}

// Health reports liveness.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func abortWithError(c *gin.Context, err error) {
	if service.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	// The service layer already logged the underlying failure; the body
	// stays generic so query details never reach clients.
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
