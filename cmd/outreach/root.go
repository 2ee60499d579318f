package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var sessionFlag string

	ctx := newCommandContext(&configFlag, &sessionFlag)

	rootCmd := &cobra.Command{
		Use:           "outreach",
		Short:         "Campaign workflow engine CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&sessionFlag, "session", "s", "", "Workflow session identifier (defaults to \"default\")")

	rootCmd.AddCommand(newIngestCommand(ctx))
	rootCmd.AddCommand(newRosterCommand(ctx))
	rootCmd.AddCommand(newLogisticsCommand(ctx))
	rootCmd.AddCommand(newContentCommand(ctx))
	rootCmd.AddCommand(newReportingCommand(ctx))
	rootCmd.AddCommand(newProgressCommand(ctx))
	rootCmd.AddCommand(newSessionsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
