package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/passkeeper/internal/client/api"
	"github.com/iudanet/passkeeper/internal/client/cli"
	"github.com/iudanet/passkeeper/internal/client/iocli"
)

const defaultServerURL = "http://localhost:3000"

// app создает Cli после разбора флагов
type app struct {
	v   *viper.Viper
	io  iocli.IO
	cli *cli.Cli
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:     "passkeeper",
		Short:   "Passkeeper password manager client",
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit),
		Long: `Passkeeper client talks to a Passkeeper server.

Server URL and bearer token are taken from flags or from the
PASSKEEPER_SERVER and PASSKEEPER_TOKEN environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().String("server", defaultServerURL, "server URL")
	cmd.PersistentFlags().String("token", "", "bearer token (prefer PASSKEEPER_TOKEN)")

	a.v.SetEnvPrefix("passkeeper")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlag("server", cmd.PersistentFlags().Lookup("server"))
	_ = a.v.BindPFlag("token", cmd.PersistentFlags().Lookup("token"))

	cmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newStatusCmd(a),
		newVersionCmd(),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	if a.io == nil {
		a.io = iocli.NewStdioWith(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	a.cli = cli.New(a.io, api.NewClient(a.serverURL(), a.v.GetString("token")))
	return nil
}

func (a *app) serverURL() string {
	return a.v.GetString("server")
}

// requireToken проверяет наличие токена для защищенных команд
func (a *app) requireToken(_ *cobra.Command, _ []string) error {
	if a.v.GetString("token") == "" {
		return errors.New("bearer token is required: set --token or PASSKEEPER_TOKEN")
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Passkeeper Client\n")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}
