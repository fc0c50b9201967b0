package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/chatstats-go/internal/dates"
)

var (
	rankingPeriod string
	rankingStart  string
	rankingEnd    string
	rankingLimit  int
	rankingClicks bool
	rankingAsc    bool
)

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Top users by chats or clicks",
	Long: `Rank users by question count, or by clicked answers with --clicks.

Examples:
  chatstats ranking
  chatstats ranking --period monthly --limit 20
  chatstats ranking --clicks`,
	RunE: runRanking,
}

func init() {
	rankingCmd.Flags().StringVar(&rankingPeriod, "period", "weekly", "period: daily, weekly or monthly")
	rankingCmd.Flags().StringVar(&rankingStart, "start", "", "custom range start YYYY-MM-DD, overrides --period")
	rankingCmd.Flags().StringVar(&rankingEnd, "end", "", "custom range end YYYY-MM-DD, overrides --period")
	rankingCmd.Flags().IntVarP(&rankingLimit, "limit", "n", 10, "max rows")
	rankingCmd.Flags().BoolVar(&rankingClicks, "clicks", false, "rank by clicked answers instead of chats")
	rankingCmd.Flags().BoolVar(&rankingAsc, "asc", false, "ascending order (chat ranking only)")
}

func runRanking(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if rankingClicks {
		start, end := rankingStart, rankingEnd
		if start == "" || end == "" {
			rng, err := dates.ForPeriod(rankingPeriod, time.Now())
			if err != nil {
				return fmt.Errorf("click ranking: %w", err)
			}
			start = rng.Start.Format(dates.Layout)
			end = rng.End.Format(dates.Layout)
		}
		ranks, err := clickSvc.UserClickRanking(ctx, start, end, rankingLimit)
		if err != nil {
			return fmt.Errorf("click ranking: %w", err)
		}
		if len(ranks) == 0 {
			fmt.Println("No clicks recorded.")
			return nil
		}
		fmt.Println(defaultTheme.headerStyle().Render("Top users by clicked answers"))
		for i, r := range ranks {
			fmt.Printf("%2d. %-20s %5d clicks  %5d chats\n", i+1, r.UserName, r.Clicks, r.Chats)
		}
		return nil
	}

	ranks, err := analyticsSvc.UserRanking(ctx, rankingPeriod, rankingLimit, !rankingAsc,
		rankingStart, rankingEnd)
	if err != nil {
		return fmt.Errorf("user ranking: %w", err)
	}
	if len(ranks) == 0 {
		fmt.Println("No chats recorded.")
		return nil
	}
	fmt.Println(defaultTheme.headerStyle().Render("Top users by chats"))
	for i, r := range ranks {
		fmt.Printf("%2d. %-20s %5d chats\n", i+1, r.UserName, r.Chats)
	}
	return nil
}
