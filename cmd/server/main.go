package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/gophqueue/internal/config"
	"github.com/iudanet/gophqueue/internal/logging"
	"github.com/iudanet/gophqueue/internal/server"
	"github.com/iudanet/gophqueue/internal/server/handlers"
	"github.com/iudanet/gophqueue/internal/server/storage/sqlite"
	"github.com/iudanet/gophqueue/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gophqueue-server",
		Short:         "GophQueue records server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.ServerDefaults(cmd.PersistentFlags())

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newTokenCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer(cmd.Flags())
			if err != nil {
				return err
			}

			logger, closer := logging.New(cfg.LogLevel, cfg.LogFile)
			defer func() {
				_ = closer.Close()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := sqlite.New(ctx, cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Error("failed to close database", "error", err)
				}
			}()

			logger.Info("GophQueue server starting",
				"version", Version,
				"db", cfg.DBPath,
				"rate_limit", cfg.RateLimit,
				"rate_window", cfg.RateWindow)

			srv := server.New(server.Options{
				Addr:       cfg.Addr,
				JWT:        jwtConfig(cfg),
				RateLimit:  cfg.RateLimit,
				RateWindow: cfg.RateWindow,
			}, store, logger)

			return srv.Run(ctx)
		},
	}
}

func newTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token <username>",
		Short: "Issue an access token, creating the user if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			if err := validation.ValidateUsername(username); err != nil {
				return fmt.Errorf("invalid username: %w", err)
			}

			cfg, err := config.LoadServer(cmd.Flags())
			if err != nil {
				return err
			}

			ctx := context.Background()

			store, err := sqlite.New(ctx, cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				_ = store.Close()
			}()

			token, user, err := handlers.IssueToken(ctx, store, jwtConfig(cfg), username)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Token for %s (user id %s), valid for %s:\n", user.Username, user.ID, cfg.TokenTTL)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "GophQueue Server\n")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func jwtConfig(cfg *config.ServerConfig) handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:         []byte(cfg.JWTSecret),
		AccessTokenTTL: cfg.TokenTTL,
	}
}
