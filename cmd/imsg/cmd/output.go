package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"

	"github.com/imsgtools/imsg/internal/msgstore"
)

// outputMessagesTable prints messages newest-first in a fixed-width table.
func outputMessagesTable(messages []msgstore.MessageRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tFROM\tMESSAGE")
	fmt.Fprintln(w, "────\t────\t───────")

	for _, m := range messages {
		from := m.Handle
		if m.IsFromMe {
			from = "me"
		}
		if m.IsGroup {
			from += " (group)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Timestamp, truncate(from, 28), truncate(m.Text, 60))
	}

	w.Flush()
	fmt.Printf("\nShowing %d messages\n", len(messages))
}

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate trims s to maxWidth terminal cells, flattening whitespace that
// would break the table layout.
func truncate(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")

	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
