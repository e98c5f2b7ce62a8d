package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// search <keyword...>: compose the filtered search and open it in the browser.
func searchCmd() *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "search <keyword...>",
		Short: "Search without results from excluded domains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if printOnly {
				target, err := appCtx.SearchURL(cmd.Context(), keyword)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, target)
				return nil
			}

			target, err := appCtx.Search(cmd.Context(), keyword)
			if target != "" {
				fmt.Fprintln(out, target)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the URL instead of opening it")
	return cmd
}
