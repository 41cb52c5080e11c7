package main

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/passkeeper/internal/client/cli"
)

func newListCmd(a *app) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List saved credentials",
		Args:    cobra.NoArgs,
		PreRunE: a.requireToken,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cli.RunList(cmd.Context(), show)
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "show passwords")

	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Short:   "Show a credential including its password",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.requireToken,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.RunShow(cmd.Context(), args[0])
		},
	}
}

func inputFlags(cmd *cobra.Command, in *cli.Input) {
	cmd.Flags().StringVar(&in.Website, "website", "", "website (prompted if empty)")
	cmd.Flags().StringVar(&in.Username, "username", "", "username (prompted if empty)")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (not recommended, prompted if empty)")
}

func newAddCmd(a *app) *cobra.Command {
	var in cli.Input

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a credential",
		Args:    cobra.NoArgs,
		PreRunE: a.requireToken,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cli.RunAdd(cmd.Context(), in)
		},
	}
	inputFlags(cmd, &in)

	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var in cli.Input

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Replace website, username and password of a credential",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.requireToken,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.RunUpdate(cmd.Context(), args[0], in)
		},
	}
	inputFlags(cmd, &in)

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a credential",
		Args:    cobra.ExactArgs(1),
		PreRunE: a.requireToken,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.RunDelete(cmd.Context(), args[0], force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "do not ask for confirmation")

	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cli.RunStatus(cmd.Context(), a.serverURL())
		},
	}
}
