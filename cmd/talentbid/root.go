package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var configPath string

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "talentbid",
		Short:         "TalentBid reverse hiring marketplace service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing app.env")

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the service version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "talentbid", version)
		},
	}
}
