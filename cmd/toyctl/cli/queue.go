package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramatoys/storefront/jobs"
)

func newJobsCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect the background job queue",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "pending",
		Short: "Print the number of tasks waiting on the default queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, open, func(rt *Runtime) error {
				queue, release := rt.queue()
				defer release()
				pending, err := queue.Pending()
				if err != nil {
					return fmt.Errorf("inspect queue %s: %w", jobs.QueueDefault, err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pending\n", jobs.QueueDefault, pending)
				return err
			})
		},
	})
	return cmd
}
