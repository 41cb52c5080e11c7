package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/passkeeper/internal/config"
)

func newEncryptLegacyCmd(cfgFile *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "encrypt-legacy",
		Short: "Encrypt secrets stored in plaintext by older versions",
		Long: `Walks every stored record and rewrites plaintext secrets in encrypted form.
Records that are already encrypted are skipped, so the command is safe to re-run.
Use the same cipher secret as the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return err
			}

			c, err := buildComponents(cmd.Context(), logger, cfg, config.TerminalPrompter())
			if err != nil {
				return err
			}
			defer func() {
				if err := c.storage.Close(); err != nil {
					logger.Error("failed to close storage", "error", err)
				}
			}()

			summary, err := c.store.EncryptLegacy(cmd.Context(), dryRun)

			// Итоги печатаются и при прерванном обходе
			out, mErr := yaml.Marshal(summary)
			if mErr != nil {
				return errors.Join(err, fmt.Errorf("failed to marshal summary: %w", mErr))
			}
			if _, wErr := cmd.OutOrStdout().Write(out); wErr != nil {
				return errors.Join(err, wErr)
			}

			if err != nil {
				return fmt.Errorf("legacy encryption aborted: %w", err)
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d record(s) could not be encrypted", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report records that would be encrypted")

	return cmd
}
