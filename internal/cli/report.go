package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var reportDate string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Daily summary report",
	Long: `Show the daily summary: chat and user counts with day-over-day
diffs, click ratio and prediction accuracy.

Examples:
  chatstats report
  chatstats report --date 2024-05-02`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportDate, "date", "d", "", "report date YYYY-MM-DD (default today)")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	date := reportDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	report, err := reportSvc.DailyReport(ctx, date)
	if err != nil {
		return fmt.Errorf("daily report: %w", err)
	}

	fmt.Println(defaultTheme.headerStyle().Render("Daily report " + date))
	fmt.Println()
	fmt.Printf("Chats:  %6d  (%+.1f%% vs previous day)\n", report.ChatCount, report.ChatCountDiff)
	fmt.Printf("Users:  %6d  (%+.1f%% vs previous day)\n", report.UserCount, report.UserCountDiff)
	fmt.Println()
	fmt.Printf("Clicked:      %5d  (%.1f%%)\n", report.ClickRatio.Click.Count, report.ClickRatio.Click.Ratio)
	fmt.Printf("Not clicked:  %5d  (%.1f%%)\n", report.ClickRatio.NonClick.Count, report.ClickRatio.NonClick.Ratio)
	fmt.Println()

	p := report.Predictions
	if p.Correct+p.Incorrect == 0 {
		fmt.Println(defaultTheme.hintStyle().Render("No stock predictions for this day."))
		return nil
	}
	accuracy := fmt.Sprintf("Prediction accuracy: %.1f%% (%d/%d)",
		p.Accuracy, p.Correct, p.Correct+p.Incorrect)
	if p.Accuracy >= 50 {
		fmt.Println(defaultTheme.successStyle().Render(accuracy))
	} else {
		fmt.Println(defaultTheme.errorStyle().Render(accuracy))
	}
	return nil
}
