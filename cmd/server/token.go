package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/passkeeper/internal/server/identity"
)

// newTokenCmd выпускает токен для разработки и интеграционных тестов
func newTokenCmd(cfgFile *string) *cobra.Command {
	var (
		subject string
		email   string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token for the given subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret is required to sign tokens")
			}

			resolver, err := identity.NewResolver(identity.Config{
				Secret: []byte(cfg.Auth.JWTSecret),
				Issuer: cfg.Auth.Issuer,
			})
			if err != nil {
				return err
			}

			token, err := resolver.Issue(subject, email, ttl)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "user identifier (token subject)")
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}
