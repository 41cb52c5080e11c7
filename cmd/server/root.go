package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/passkeeper/internal/config"
)

// newRootCmd создает корневую команду. Отдельная функция позволяет
// получать чистые экземпляры в тестах.
func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "passkeeper-server",
		Short:        "Passkeeper password manager server",
		Version:      fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit),
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/passkeeper/passkeeper.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	cmd.PersistentFlags().String("driver", "sqlite", "storage driver (sqlite, postgres, mysql, bolt, mongo)")
	cmd.PersistentFlags().String("dsn", "./passkeeper.db", "storage DSN: file path for sqlite and bolt, URI otherwise")

	cmd.AddCommand(
		newServeCmd(&cfgFile),
		newEncryptLegacyCmd(&cfgFile),
		newTokenCmd(&cfgFile),
		newConfigCmd(&cfgFile),
		newVersionCmd(),
	)

	return cmd
}

func loadConfig(cmd *cobra.Command, cfgFile string) (config.Config, error) {
	cfg, err := config.Load(cmd, cfgFile)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger создает slog логгер по настройкам
func newLogger(w io.Writer, c config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", c.Format)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Passkeeper Server\n")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}
