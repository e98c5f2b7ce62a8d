package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// chrome-path add|remove <os> <path>: manage where Chrome is looked for.
func chromePathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chrome-path",
		Short: "Manage custom Chrome locations used to open searches",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <os> <path>",
		Short: "Add a Chrome executable for darwin, linux or windows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Config.AddChromePath(args[1], args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s path %s\n", args[0], args[1])
			return nil
		},
	}, &cobra.Command{
		Use:   "remove <os> <path>",
		Short: "Remove a custom Chrome executable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Config.DeleteChromePath(args[1], args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s path %s\n", args[0], args[1])
			return nil
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "Print the custom Chrome executables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range appCtx.Config.ChromeDirs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.OS, p.Path)
			}
			return nil
		},
	})
	return cmd
}
