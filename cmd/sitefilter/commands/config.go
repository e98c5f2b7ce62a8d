package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// config set <key> <value>: change a setting in config.yaml.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Change settings stored in config.yaml",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a key such as engine.base_url or store.backend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Config.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "set %s to %s\n", args[0], args[1])
			return nil
		},
	})
	return cmd
}
