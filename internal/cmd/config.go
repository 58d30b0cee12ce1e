package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/advisor/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or reset the saved pipeline input defaults",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigResetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current input defaults as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			path := config.UserConfigPath(a.cfg.OutputDir)
			user, fromFile := config.LoadUserConfig(path)
			if fromFile {
				a.log.Infof("defaults loaded from %s", path)
			} else {
				a.log.Infof("using built-in defaults (no saved configuration at %s)", path)
			}

			data, err := json.MarshalIndent(user, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete saved defaults and return to the built-in values",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			path := config.UserConfigPath(a.cfg.OutputDir)
			if err := config.ResetUserConfig(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to built-in defaults.")
			return nil
		},
	}
}
