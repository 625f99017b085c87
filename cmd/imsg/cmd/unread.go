package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	unreadLimit int
	unreadJSON  bool
)

var unreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Show received messages not yet marked read",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		messages, err := s.UnreadMessages(cmd.Context(), unreadLimit)
		if err != nil {
			return fmt.Errorf("load unread messages: %w", err)
		}

		if unreadJSON {
			return outputJSON(messages)
		}
		if len(messages) == 0 {
			fmt.Println("No unread messages.")
			return nil
		}
		outputMessagesTable(messages)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unreadCmd)
	unreadCmd.Flags().IntVarP(&unreadLimit, "limit", "n", 20, "Maximum number of messages")
	unreadCmd.Flags().BoolVar(&unreadJSON, "json", false, "Output as JSON")
}
