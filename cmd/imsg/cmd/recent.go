package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	recentLimit int
	recentJSON  bool
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the newest messages across all conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		messages, err := s.RecentMessages(cmd.Context(), recentLimit)
		if err != nil {
			return fmt.Errorf("load recent messages: %w", err)
		}

		if recentJSON {
			return outputJSON(messages)
		}
		if len(messages) == 0 {
			fmt.Println("No messages found.")
			return nil
		}
		outputMessagesTable(messages)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 10, "Maximum number of messages")
	recentCmd.Flags().BoolVar(&recentJSON, "json", false, "Output as JSON")
}
