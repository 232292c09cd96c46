// Package add implements the arkiv add command.
package add

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahvenlahti/arkiv/internal/conf"
	"github.com/ahvenlahti/arkiv/internal/datastore"
)

// Command creates the add command.
func Command(settings *conf.Settings) *cobra.Command {
	var source, kind, title string

	cmd := &cobra.Command{
		Use:   "add [payload...]",
		Short: "Store a record in the archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := datastore.New(settings)
			if err := store.Open(); err != nil {
				return fmt.Errorf("failed to open datastore: %w", err)
			}
			defer store.Close()

			record := datastore.Record{
				Source:  source,
				Kind:    kind,
				Title:   title,
				Payload: strings.Join(args, " "),
			}
			if err := store.Save(&record, nil); err != nil {
				return fmt.Errorf("failed to store record: %w", err)
			}

			fmt.Printf("Stored record %d (%s)\n", record.ID, record.UUID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "cli", "Source to tag the record with")
	cmd.Flags().StringVarP(&kind, "kind", "k", "note", "Kind of the record")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Title of the record")

	return cmd
}
