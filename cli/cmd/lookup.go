package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imcoder44/FootprintX/internal/domain"
)

func newLookupCmd(newClient func() *client) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <query>",
		Short: "Run a lookup and print its events",
		Long:  "Submit a phone number, email address, IP address, or person name and print each event until the lookup completes.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			query := strings.Join(args, " ")

			resp, err := c.submit(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("submit lookup: %w", err)
			}

			out := cmd.OutOrStdout()
			return c.stream(cmd.Context(), resp.SessionID, func(ev domain.Event) error {
				return printEvent(out, ev)
			})
		},
	}
}

func printEvent(w io.Writer, ev domain.Event) error {
	if _, err := fmt.Fprintf(w, "[%s] %s\n", ev.Source, ev.Message); err != nil {
		return err
	}

	keys := make([]string, 0, len(ev.Data))
	for k := range ev.Data {
		if k == "demo_mode" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", k, formatValue(ev.Data[k])); err != nil {
			return err
		}
	}
	return nil
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
