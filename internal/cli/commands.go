package cli

import (
	"context"

	"github.com/BloggingApp/community-service/internal/deploy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewSetupCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the deploy directories, shared tree and database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withTasks(cmd.Context(), func(ctx context.Context, tasks *deploy.Tasks) error {
				return tasks.Setup(ctx)
			})
		},
	}
}

func NewReleaseCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "release",
		Short: "Check out a new release and make it current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withTasks(cmd.Context(), func(ctx context.Context, tasks *deploy.Tasks) error {
				release, err := tasks.Deploy(ctx)
				if err != nil {
					return err
				}
				opts.logger.Info("release is live", zap.String("release", release))
				return nil
			})
		},
	}
}

func NewCreateDatabaseCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create-database",
		Short: "Create the MySQL database and upload database.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withTasks(cmd.Context(), func(ctx context.Context, tasks *deploy.Tasks) error {
				return tasks.CreateDatabaseOnly(ctx)
			})
		},
	}
}

func NewCopySSHKeyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "copy-ssh-key",
		Short: "Authorize the local public key for the deploy user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withTasks(cmd.Context(), func(ctx context.Context, tasks *deploy.Tasks) error {
				return tasks.CopySSHKey(ctx)
			})
		},
	}
}
