package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// history: print the activity log, oldest first.
func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := appCtx.History()
			if err != nil {
				return err
			}
			if limit > 0 && len(logs) > limit {
				logs = logs[len(logs)-limit:]
			}
			for _, log := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-5s  %s\n",
					log.Timestamp.Local().Format(time.DateTime), log.Level, log.Message)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "only print the last n entries")
	return cmd
}
