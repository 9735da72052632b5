// Package cmd implements the footprintx terminal client commands.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServer = "http://localhost:8080"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg := viper.New()
	cfg.SetEnvPrefix("FOOTPRINTX")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:           "footprintx",
		Short:         "FootprintX OSINT lookup client",
		Long:          "footprintx submits a phone number, email, IP address, or person name to a FootprintX server and prints the lookup events as they stream in.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("server", defaultServer, "FootprintX server base URL")
	flags.String("user", "", "basic auth username for submitting lookups")
	flags.String("password", "", "basic auth password for submitting lookups")
	_ = cfg.BindPFlag("server", flags.Lookup("server"))
	_ = cfg.BindPFlag("user", flags.Lookup("user"))
	_ = cfg.BindPFlag("password", flags.Lookup("password"))

	newClient := func() *client {
		return newAPIClient(cfg.GetString("server"), cfg.GetString("user"), cfg.GetString("password"))
	}

	rootCmd.AddCommand(
		newLookupCmd(newClient),
		newStatusCmd(newClient),
		newHistoryCmd(newClient),
	)

	return rootCmd
}
