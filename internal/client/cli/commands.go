package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophqueue/internal/client/api"
	"github.com/iudanet/gophqueue/internal/client/auth"
	"github.com/iudanet/gophqueue/internal/client/iocli"
	"github.com/iudanet/gophqueue/internal/client/queue"
	"github.com/iudanet/gophqueue/internal/client/storage/boltdb"
	"github.com/iudanet/gophqueue/internal/client/sync"
	"github.com/iudanet/gophqueue/internal/config"
	"github.com/iudanet/gophqueue/internal/logging"
)

// BuildInfo информация о сборке для команды version
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

type runFunc func(ctx context.Context, c *Cli, args []string) error

// NewRootCommand создает корневую команду клиента
func NewRootCommand(build BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gophqueue",
		Short: "Offline-first client for GophQueue collections",
		Long: `Every change is written to the local database before it is sent.
If the server is unreachable the change stays queued and is sent by 'replay'.

Settings come from flags, GOPHQUEUE_* environment variables or --config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.ClientDefaults(cmd.PersistentFlags())

	cmd.AddCommand(
		newLoginCommand(),
		newLogoutCommand(),
		newCreateCommand(),
		newUpdateCommand(),
		newDeleteCommand(),
		newReplayCommand(),
		newStatusCommand(),
		newVersionCommand(build),
	)

	return cmd
}

// withCli открывает локальное хранилище, собирает Cli и закрывает
// хранилище после выполнения команды
func withCli(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadClient(cmd.Flags())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)

		store, err := boltdb.New(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}()

		apiClient := api.NewClient(cfg.ServerURL)
		syncService := sync.NewService(apiClient, store, store, logger,
			queue.WithKeyPrefix(cfg.KeyPrefix),
			queue.WithTimeout(cfg.Timeout),
			queue.WithConcurrency(cfg.Concurrency),
		)

		c := New(
			iocli.NewStreams(cmd.InOrStdin(), cmd.OutOrStdout()),
			auth.NewService(store),
			syncService,
			apiClient.SetAccessToken,
			cfg.ServerURL,
		)

		return fn(ctx, c, args)
	}
}

func newLoginCommand() *cobra.Command {
	var tokenFile string

	cmd := &cobra.Command{
		Use:   "login [token]",
		Short: "Save the access token issued by 'gophqueue-server token'",
		Long: `Token priority (highest to lowest):
  1. GOPHQUEUE_TOKEN environment variable
  2. --token-file
  3. token argument
  4. interactive prompt`,
		Args: cobra.MaximumNArgs(1),
		RunE: withCli(func(ctx context.Context, c *Cli, args []string) error {
			sources := TokenSources{FromFile: tokenFile}
			if len(args) == 1 {
				sources.FromArgs = args[0]
			}
			return c.runLogin(ctx, sources)
		}),
	}

	cmd.Flags().StringVar(&tokenFile, "token-file", "", "path to file containing the access token")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved access token",
		Args:  cobra.NoArgs,
		RunE: withCli(func(ctx context.Context, c *Cli, args []string) error {
			return c.runLogout(ctx)
		}),
	}
}

func newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "create <collection> [key=value...]",
		Short:   "Create a record",
		Example: `  gophqueue create notes title=hello pinned=true priority=3`,
		Args:    cobra.MinimumNArgs(1),
		RunE: withCli(func(ctx context.Context, c *Cli, args []string) error {
			return c.runCreate(ctx, args[0], args[1:])
		}),
	}
}

func newUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "update <collection> <id> key=value...",
		Short:   "Change fields of a record",
		Example: `  gophqueue update notes 6f1c... title='"quoted string"' tags='["a","b"]'`,
		Args:    cobra.MinimumNArgs(3),
		RunE: withCli(func(ctx context.Context, c *Cli, args []string) error {
			return c.runUpdate(ctx, args[0], args[1], args[2:])
		}),
	}
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: withCli(func(ctx context.Context, c *Cli, args []string) error {
			return c.runDelete(ctx, args[0], args[1])
		}),
	}
}

func newReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <collection>...",
		Short: "Send queued changes: creations, then updates, then deletions",
		Args:  cobra.MinimumNArgs(1),
		RunE: withCli(func(ctx context.Context, c *Cli, args []string) error {
			return c.runReplay(ctx, args)
		}),
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [collection...]",
		Short: "Show authentication and queued changes",
		RunE: withCli(func(ctx context.Context, c *Cli, args []string) error {
			return c.runStatus(ctx, args)
		}),
	}
}

func newVersionCommand(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "GophQueue Client\n")
			fmt.Fprintf(out, "Version:    %s\n", build.Version)
			fmt.Fprintf(out, "Build Date: %s\n", build.BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", build.GitCommit)
		},
	}
}
