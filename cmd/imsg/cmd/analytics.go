package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	analyticsContact string
	analyticsDays    int
	analyticsJSON    bool
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show conversation statistics",
	Long: `Show message statistics over the last --days days: volumes, busiest
hour and weekday, attachments, reactions, and (without --contact) the
most active correspondents.

Examples:
  imsg analytics
  imsg analytics --contact alice --days 90`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var address string
		if analyticsContact != "" {
			address, _ = resolveAddress(analyticsContact)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		stats, err := s.Analytics(cmd.Context(), address, analyticsDays)
		if err != nil {
			return fmt.Errorf("compute analytics: %w", err)
		}

		if analyticsJSON {
			return outputJSON(stats)
		}

		if address != "" {
			fmt.Printf("Stats for %s, last %d days\n", address, analyticsDays)
		} else {
			fmt.Printf("Stats for all conversations, last %d days\n", analyticsDays)
		}
		fmt.Printf("  Messages:    %d (%d sent, %d received)\n", stats.TotalMessages, stats.SentCount, stats.ReceivedCount)
		fmt.Printf("  Avg per day: %.1f\n", stats.AvgDailyMessages)
		if stats.BusiestHour != nil {
			fmt.Printf("  Busiest hour: %02d:00\n", *stats.BusiestHour)
		}
		if stats.BusiestDay != "" {
			fmt.Printf("  Busiest day:  %s\n", stats.BusiestDay)
		}
		fmt.Printf("  Attachments: %d\n", stats.AttachmentCount)
		fmt.Printf("  Reactions:   %d\n", stats.ReactionCount)

		if len(stats.TopCorrespondents) > 0 {
			book, err := loadBook()
			if err != nil {
				return err
			}
			fmt.Println("\nTop correspondents:")
			for _, cc := range stats.TopCorrespondents {
				label := cc.Address
				if c, ok := book.ByAddress(cc.Address); ok {
					label = fmt.Sprintf("%s (%s)", c.Name, cc.Address)
				}
				fmt.Printf("  %5d  %s\n", cc.Count, label)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.Flags().StringVar(&analyticsContact, "contact", "", "Restrict to one contact or address")
	analyticsCmd.Flags().IntVar(&analyticsDays, "days", 30, "Window size in days")
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "Output as JSON")
}
