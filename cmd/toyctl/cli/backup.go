package cli

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/ramatoys/storefront/jobs"
)

const (
	reasonFlag = "reason"
	modeFlag   = "mode"

	modeQueue  = "queue"
	modeInline = "inline"
)

func newBackupCommand(open Opener) *cobra.Command {
	flags := map[string]cobraflags.Flag{
		reasonFlag: &cobraflags.StringFlag{
			Name:  reasonFlag,
			Value: "manual",
			Usage: "Reason recorded in the backup log",
		},
		modeFlag: &cobraflags.StringFlag{
			Name:  modeFlag,
			Value: modeQueue,
			Usage: "queue enqueues a catalog:backup task, inline copies the slot now",
		},
	}
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up the product slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reason := flags[reasonFlag].GetString()
			mode := flags[modeFlag].GetString()
			return withRuntime(cmd, open, func(rt *Runtime) error {
				switch mode {
				case modeInline:
					job := jobs.NewCatalogBackupJob(rt.Store, rt.BackupRetention, rt.Logger, nil)
					key, err := job.Run(cmd.Context(), reason)
					if err != nil {
						return err
					}
					if key == "" {
						_, err = fmt.Fprintln(cmd.OutOrStdout(), "product slot empty, nothing to back up")
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", key)
					return err
				case modeQueue:
					queue, release := rt.queue()
					defer release()
					info, err := queue.Trigger(cmd.Context(), jobs.TaskCatalogBackup, reason)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "enqueued %s as %s\n", info.Type, info.ID)
					return err
				default:
					return fmt.Errorf("unknown backup mode %q", mode)
				}
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
