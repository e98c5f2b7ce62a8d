package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tfkr-ae/sitefilter"
)

// add [domain]: exclude a domain, or the active tab with --current.
func addCmd() *cobra.Command {
	var current, normalize bool
	cmd := &cobra.Command{
		Use:   "add [domain]",
		Short: "Exclude a domain from searches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var d string
			switch {
			case current:
				resolved, err := appCtx.CurrentDomain(cmd.Context())
				if err != nil {
					return err
				}
				d = resolved.String()
			case len(args) == 1:
				d = args[0]
				if normalize {
					normalized, err := normalizeArg(d)
					if err != nil {
						return err
					}
					d = normalized
				}
			default:
				return errors.New("a domain or --current is required")
			}

			list, err := appCtx.Exclude(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "excluded %s (%d total)\n", list[len(list)-1], len(list))
			return nil
		},
	}
	cmd.Flags().BoolVar(&current, "current", false, "exclude the domain of the active browser tab")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "reduce the argument to its bare domain first")
	return cmd
}

// normalizeArg accepts either a URL or a bare host such as "WWW.Example.com".
func normalizeArg(raw string) (string, error) {
	if d, err := sitefilter.Normalize(raw); err == nil {
		return d.String(), nil
	}
	d, err := sitefilter.Normalize("http://" + raw)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// remove <domain>: stop excluding a domain.
func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <domain>",
		Aliases: []string{"rm"},
		Short:   "Stop excluding a domain",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := appCtx.Include(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s (%d left)\n", args[0], len(list))
			return nil
		},
	}
}

// list: print one excluded domain per line.
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the excluded domains",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := appCtx.Exclusions(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "no excluded sites")
				return nil
			}
			for _, d := range list {
				fmt.Fprintln(out, d)
			}
			return nil
		},
	}
}

// current: print the domain of the active tab.
func currentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the domain of the active browser tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := appCtx.CurrentDomain(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}
