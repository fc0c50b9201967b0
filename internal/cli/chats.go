package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/chatstats-go/internal/service"
)

var (
	chatsStart    string
	chatsEnd      string
	chatsUser     string
	chatsKeyword  string
	chatsStock    string
	chatsPage     int
	chatsPageSize int
)

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "Search conversations in a date range",
	Long: `Search conversations with question-answer pairing, filtered by user,
keyword and stock classification.

Examples:
  chatstats chats --start 2024-05-01 --end 2024-05-07
  chatstats chats --start 2024-05-01 --end 2024-05-07 --user alice@corp.com
  chatstats chats --start 2024-05-01 --end 2024-05-07 --keyword samsung --stock stock`,
	RunE: runChats,
}

func init() {
	chatsCmd.Flags().StringVar(&chatsStart, "start", "", "start date YYYY-MM-DD (required)")
	chatsCmd.Flags().StringVar(&chatsEnd, "end", "", "end date YYYY-MM-DD (required)")
	chatsCmd.Flags().StringVarP(&chatsUser, "user", "u", "", "filter by user id substring")
	chatsCmd.Flags().StringVarP(&chatsKeyword, "keyword", "k", "", "question keyword filter")
	chatsCmd.Flags().StringVar(&chatsStock, "stock", "all", "stock filter: all, stock or non-stock")
	chatsCmd.Flags().IntVarP(&chatsPage, "page", "p", 0, "zero-based page number")
	chatsCmd.Flags().IntVarP(&chatsPageSize, "page-size", "n", 10, "page size")
	_ = chatsCmd.MarkFlagRequired("start")
	_ = chatsCmd.MarkFlagRequired("end")
}

func runChats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	page, err := chatSvc.FindConversations(ctx, service.ChatQuery{
		StartDate: chatsStart,
		EndDate:   chatsEnd,
		User:      chatsUser,
		Keyword:   chatsKeyword,
		Stock:     chatsStock,
		Page:      chatsPage,
		PageSize:  chatsPageSize,
	})
	if err != nil {
		return fmt.Errorf("find conversations: %w", err)
	}

	if page.Total == 0 {
		fmt.Println("No conversations found.")
		return nil
	}

	header := fmt.Sprintf("Conversations (%d total, page %d/%d)",
		page.Total, page.Page+1, page.TotalPages)
	fmt.Println(defaultTheme.headerStyle().Render(header))
	fmt.Println()

	for _, c := range page.Items {
		stockMark := ""
		if c.IsStock {
			stockMark = " [stock]"
		}
		fmt.Printf("- %s  %s%s\n", c.Timestamp.Format("2006-01-02 15:04"), c.UserID, stockMark)
		fmt.Printf("  Q: %s\n", c.Question)
		if c.Answer != nil {
			answer := *c.Answer
			if !verbose && len(answer) > 120 {
				answer = answer[:120] + "..."
			}
			fmt.Printf("  A: %s\n", answer)
		} else {
			fmt.Println(defaultTheme.hintStyle().Render("  A: (unanswered)"))
		}
		fmt.Println()
	}

	return nil
}
