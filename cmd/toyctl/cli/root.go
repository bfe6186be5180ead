// Package cli implements the toyctl operations commands.
package cli

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/ramatoys/storefront/internal/store"
)

// Runtime is what a command needs from the environment.
type Runtime struct {
	Store           store.Store
	RedisAddr       string
	BackupRetention int
	Logger          *slog.Logger
	// Queue is optional; commands dial RedisAddr when it is nil.
	Queue JobQueue
	Close func()
}

// JobQueue is the asynq surface the queue-facing commands use.
type JobQueue interface {
	Trigger(ctx context.Context, name, reason string) (*asynq.TaskInfo, error)
	Pending() (int, error)
}

func (rt *Runtime) queue() (JobQueue, func()) {
	if rt.Queue != nil {
		return rt.Queue, func() {}
	}
	client := NewJobsCLI(rt.RedisAddr)
	return client, func() {
		if err := client.Close(); err != nil {
			rt.Logger.Warn("jobs client close", slog.Any("error", err))
		}
	}
}

// Opener connects the Runtime for commands that touch the store.
type Opener func(ctx context.Context) (*Runtime, error)

// NewRootCommand builds the toyctl command tree.
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "toyctl",
		Short:         "Operations helpers for the Rama Toys storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSeedCommand(open),
		newExportCommand(open),
		newBackupCommand(open),
		newJobsCommand(open),
		newHashPasswordCommand(),
	)
	return root
}

func withRuntime(cmd *cobra.Command, open Opener, fn func(*Runtime) error) error {
	rt, err := open(cmd.Context())
	if err != nil {
		return err
	}
	if rt.Close != nil {
		defer rt.Close()
	}
	if rt.Logger == nil {
		rt.Logger = slog.Default()
	}
	return fn(rt)
}
