package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imsgtools/imsg/internal/applescript"
)

var sendCmd = &cobra.Command{
	Use:   "send <contact-or-address> <message>...",
	Short: "Send a message through the Messages app",
	Long: `Send an iMessage via the Messages app (macOS only).

The recipient is resolved against the contact book first.

Examples:
  imsg send alice "running 10 min late"
  imsg send +15551234567 on my way`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, name := resolveAddress(args[0])
		text := strings.Join(args[1:], " ")

		if err := applescript.Send(cmd.Context(), address, text); err != nil {
			return err
		}

		target := address
		if name != "" {
			target = fmt.Sprintf("%s (%s)", name, address)
		}
		fmt.Printf("Sent to %s\n", target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
