package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/chatstats-go/internal/dates"
)

var (
	statsDateType string
	statsStart    string
	statsEnd      string
	statsYear     int
	statsMonth    int
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"daily"},
	Short:   "Chat volume statistics",
	Long: `Show chat volume aggregates.

Subcommands:
  daily    Chats and users per day (default)
  hourly   Chats per hour of day
  weekday  Chats and users per weekday of one month

Examples:
  chatstats stats
  chatstats stats daily --range thisMonth
  chatstats stats hourly --range custom --start 2024-05-01 --end 2024-05-07
  chatstats stats weekday --year 2024 --month 5`,
	RunE: runStatsDaily,
}

var statsDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Chats and users per day",
	RunE:  runStatsDaily,
}

var statsHourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Chats per hour of day",
	RunE:  runStatsHourly,
}

var statsWeekdayCmd = &cobra.Command{
	Use:   "weekday",
	Short: "Chats and users per weekday",
	RunE:  runStatsWeekday,
}

func init() {
	for _, cmd := range []*cobra.Command{statsCmd, statsDailyCmd, statsHourlyCmd} {
		cmd.Flags().StringVarP(&statsDateType, "range", "r", "thisWeek",
			"date range: today, yesterday, thisWeek, thisMonth or custom")
		cmd.Flags().StringVar(&statsStart, "start", "", "custom range start YYYY-MM-DD")
		cmd.Flags().StringVar(&statsEnd, "end", "", "custom range end YYYY-MM-DD")
	}
	now := time.Now()
	statsWeekdayCmd.Flags().IntVar(&statsYear, "year", now.Year(), "calendar year")
	statsWeekdayCmd.Flags().IntVar(&statsMonth, "month", int(now.Month()), "calendar month 1..12")

	statsCmd.AddCommand(statsDailyCmd)
	statsCmd.AddCommand(statsHourlyCmd)
	statsCmd.AddCommand(statsWeekdayCmd)
}

func runStatsDaily(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rng, err := dates.ForType(statsDateType, statsStart, statsEnd, time.Now())
	if err != nil {
		return fmt.Errorf("daily stats: %w", err)
	}
	counts, err := analyticsSvc.DailyStats(ctx,
		rng.Start.Format(dates.Layout), rng.End.Format(dates.Layout))
	if err != nil {
		return fmt.Errorf("daily stats: %w", err)
	}

	fmt.Println(defaultTheme.headerStyle().Render("Chats per day"))
	maxChats := 0
	for _, c := range counts {
		if c.Chats > maxChats {
			maxChats = c.Chats
		}
	}
	for _, c := range counts {
		fmt.Printf("%s  %5d chats  %4d users  %s\n",
			c.Date, c.Chats, c.Users, bar(c.Chats, maxChats, 30))
	}
	return nil
}

func runStatsHourly(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	counts, err := analyticsSvc.HourlyStats(ctx, statsDateType, statsStart, statsEnd)
	if err != nil {
		return fmt.Errorf("hourly stats: %w", err)
	}

	fmt.Println(defaultTheme.headerStyle().Render("Chats per hour"))
	maxChats := 0
	for _, c := range counts {
		if c.Chats > maxChats {
			maxChats = c.Chats
		}
	}
	for _, c := range counts {
		fmt.Printf("%s:00  %5d  %s\n", c.Hour, c.Chats, bar(c.Chats, maxChats, 30))
	}
	return nil
}

func runStatsWeekday(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	counts, err := analyticsSvc.WeekdayStats(ctx, statsYear, statsMonth)
	if err != nil {
		return fmt.Errorf("weekday stats: %w", err)
	}

	fmt.Println(defaultTheme.headerStyle().Render("Chats per weekday"))
	maxChats := 0
	for _, c := range counts {
		if c.Chats > maxChats {
			maxChats = c.Chats
		}
	}
	for _, c := range counts {
		fmt.Printf("%s  %5d chats  %4d users  %s\n",
			c.Day, c.Chats, c.Users, bar(c.Chats, maxChats, 30))
	}
	return nil
}
