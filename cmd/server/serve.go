package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/passkeeper/internal/config"
	"github.com/iudanet/passkeeper/internal/server"
	"github.com/iudanet/passkeeper/internal/server/credentials"
	"github.com/iudanet/passkeeper/internal/server/identity"
)

func newServeCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cmd, cfg)
		},
	}

	cmd.Flags().String("addr", ":3000", "HTTP listen address")
	cmd.Flags().Bool("skip-verify", false, "accept bearer tokens without signature verification (development only)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	resolver, err := identity.NewResolver(identity.Config{
		Secret:     []byte(cfg.Auth.JWTSecret),
		Issuer:     cfg.Auth.Issuer,
		SkipVerify: cfg.Auth.SkipVerify,
	})
	if err != nil {
		return fmt.Errorf("failed to create token resolver: %w", err)
	}
	if resolver.SkipVerify() {
		logger.Warn("token signature verification is DISABLED; any caller can claim any identity")
	}

	c, err := buildComponents(ctx, logger, cfg, config.TerminalPrompter())
	if err != nil {
		return err
	}
	defer func() {
		if err := c.storage.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	logger.Info("storage opened", "driver", cfg.Storage.Driver)

	srv := server.New(logger, server.Config{
		Addr:            cfg.Server.Addr,
		Version:         Version,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		RateWindow:      cfg.Server.RateWindow,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		RateLimit:       cfg.Server.RateLimit,
		TrustProxy:      cfg.Server.TrustProxy,
	}, server.Deps{
		Service:  credentials.NewService(logger, c.store),
		Store:    c.storage,
		Resolver: resolver,
		Metrics:  c.metrics,
		Gatherer: c.gatherer,
	})

	return srv.Run(ctx)
}
