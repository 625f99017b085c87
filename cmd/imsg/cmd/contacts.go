package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var contactsJSON bool

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List the contact book",
	Long: `List the contacts imsg can resolve by name.

The book is a JSON file (default: ~/.imsg/contacts.json) of the form
  {"contacts": [{"name": "...", "phone": "...", "relationship_type": "...", "notes": "..."}]}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := loadBook()
		if err != nil {
			return err
		}

		if contactsJSON {
			return outputJSON(book)
		}
		if len(book.Contacts) == 0 {
			fmt.Printf("No contacts. Create %s to enable name resolution.\n", cfg.Contacts.Path)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPHONE\tRELATIONSHIP\tNOTES")
		fmt.Fprintln(w, "────\t─────\t────────────\t─────")
		for _, c := range book.Contacts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Phone, c.Relationship, truncate(c.Notes, 40))
		}
		w.Flush()
		fmt.Printf("\n%d contacts\n", len(book.Contacts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.Flags().BoolVar(&contactsJSON, "json", false, "Output as JSON")
}
