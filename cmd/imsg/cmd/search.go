package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchFrom  string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search recent messages for a phrase",
	Long: `Search for a phrase in recent messages, case-insensitively.

Only the newest messages are scanned (the --limit window, optionally
restricted to one contact with --from), so older matches require a
larger limit.

Examples:
  imsg search dinner plans
  imsg search "running late" --from alice -n 100`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")

		var address string
		if searchFrom != "" {
			address, _ = resolveAddress(searchFrom)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		messages, err := s.SearchMessages(cmd.Context(), term, address, searchLimit)
		if err != nil {
			return fmt.Errorf("search messages: %w", err)
		}

		if searchJSON {
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
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "Restrict to one contact or address")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 30, "Newest messages to scan")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
}
