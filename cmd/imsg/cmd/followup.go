package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	followupDays  int
	followupStale int
	followupLimit int
	followupJSON  bool
)

var followupCmd = &cobra.Command{
	Use:   "followup",
	Short: "Find conversations that need a reply",
	Long: `Scan the last --days days for conversations that likely need attention:
threads where the other person spoke last more than --stale days ago,
and questions that never got an answer.

Examples:
  imsg followup
  imsg followup --days 14 --stale 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		items, err := s.FollowUps(cmd.Context(), followupDays, followupStale, followupLimit)
		if err != nil {
			return fmt.Errorf("detect follow-ups: %w", err)
		}

		if followupJSON {
			return outputJSON(items)
		}
		if len(items) == 0 {
			fmt.Println("Nothing needs a follow-up.")
			return nil
		}

		book, err := loadBook()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHO\tWHY\tWHEN\tMESSAGE")
		fmt.Fprintln(w, "───\t───\t────\t───────")
		for _, item := range items {
			who := item.Phone
			if c, ok := book.ByAddress(item.Phone); ok {
				who = c.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", truncate(who, 24), item.Reason, item.Date, truncate(item.Text, 50))
		}
		w.Flush()
		fmt.Printf("\n%d conversations flagged\n", len(items))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(followupCmd)
	followupCmd.Flags().IntVar(&followupDays, "days", 7, "Window size in days")
	followupCmd.Flags().IntVar(&followupStale, "stale", 3, "Days of silence before a thread is stale")
	followupCmd.Flags().IntVarP(&followupLimit, "limit", "n", 50, "Maximum items to report")
	followupCmd.Flags().BoolVar(&followupJSON, "json", false, "Output as JSON")
}
