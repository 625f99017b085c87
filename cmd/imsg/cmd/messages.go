package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	messagesLimit int
	messagesJSON  bool
)

var messagesCmd = &cobra.Command{
	Use:   "messages <contact-or-address>",
	Short: "Show the conversation with one contact",
	Long: `Show the newest messages exchanged with a contact.

The argument is resolved against the contact book (exact, partial, and
fuzzy name matching); anything that doesn't resolve is used directly as
a phone number or Apple ID.

Examples:
  imsg messages "Alice Smith"
  imsg messages alice
  imsg messages +15551234567 -n 50`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, name := resolveAddress(args[0])

		s, err := openStore()
		if err != nil {
			return err
		}
		messages, err := s.MessagesByAddress(cmd.Context(), address, messagesLimit)
		if err != nil {
			return fmt.Errorf("load messages: %w", err)
		}

		if messagesJSON {
			return outputJSON(messages)
		}
		if name != "" {
			fmt.Printf("Conversation with %s (%s)\n\n", name, address)
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
	rootCmd.AddCommand(messagesCmd)
	messagesCmd.Flags().IntVarP(&messagesLimit, "limit", "n", 20, "Maximum number of messages")
	messagesCmd.Flags().BoolVar(&messagesJSON, "json", false, "Output as JSON")
}
