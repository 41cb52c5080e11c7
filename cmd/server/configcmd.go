package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/passkeeper/internal/config"
)

func newConfigCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var (
		path  string
		force bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}

			if path == "" {
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}

			if err := config.WriteFile(path, cfg, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "output file (default is the per-user config path)")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
