package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatusCmd(newClient func() *client) *cobra.Command {
	return &cobra.Command{
		Use:   "status <session_id>",
		Short: "Show whether a session is still active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := newClient().status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(status)
		},
	}
}

func newHistoryCmd(newClient func() *client) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent lookups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lookups, err := newClient().history(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SESSION\tTYPE\tSTATUS\tRESULTS\tFAILURES\tQUERY")
			for _, l := range lookups {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", l.SessionID, l.QueryType, l.Status, l.Results, l.Failures, l.Query)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of lookups to show")
	return cmd
}
