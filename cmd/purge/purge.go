// Package purge implements the arkiv purge command, the only removal path.
//
// Purging is deliberately separate from the guarded delete operations: it is
// never exposed through the HTTP API, must be enabled in the configuration,
// and every purge leaves an audit row behind.
package purge

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahvenlahti/arkiv/internal/conf"
	"github.com/ahvenlahti/arkiv/internal/datastore"
)

// Command creates the purge command.
func Command(settings *conf.Settings) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "purge [record id]",
		Short: "Permanently remove a single record (requires retention.allowpurge)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !settings.Retention.AllowPurge {
				return fmt.Errorf("purging is disabled: set retention.allowpurge to true to enable it")
			}
			if reason == "" {
				return fmt.Errorf("a reason is required when purging a record")
			}

			store := datastore.New(settings)
			if err := store.Open(); err != nil {
				return fmt.Errorf("failed to open datastore: %w", err)
			}
			defer store.Close()

			if err := store.ForceDelete(args[0], reason); err != nil {
				return fmt.Errorf("failed to purge record: %w", err)
			}

			fmt.Printf("Purged record %s (reason: %s)\n", args[0], reason)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Reason for the purge, written to the audit trail")

	return cmd
}
