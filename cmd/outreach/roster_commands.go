package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"outreach/internal/session"
	"outreach/internal/workflow"
)

func newRosterCommand(ctx *commandContext) *cobra.Command {
	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Inspect the ingested vendor roster",
	}

	rosterCmd.AddCommand(newRosterShowCommand(ctx))
	rosterCmd.AddCommand(newRosterDownloadCommand(ctx))

	return rosterCmd
}

func newRosterShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the persisted roster summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				info, err := svc.RosterSummary(runCtx, ctx.sessionID())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, info)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Artifact: %s\n", info.ArtifactName)
				fmt.Fprintf(out, "Rows:     %d\n", info.RowCount)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the summary as JSON")
	return cmd
}

func newRosterDownloadCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "download [kind]",
		Short: "Download a session artifact (roster by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := session.KindRoster
			if len(args) == 1 {
				parsed, ok := session.ParseArtifactKind(args[0])
				if !ok {
					return fmt.Errorf("unknown artifact kind %q (use roster or image)", args[0])
				}
				kind = parsed
			}
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				name, data, err := svc.DownloadArtifact(runCtx, ctx.sessionID(), kind)
				if err != nil {
					return err
				}
				target := strings.TrimSpace(outputPath)
				if target == "" {
					target = name
				}
				if err := os.WriteFile(target, data, 0o644); err != nil {
					return fmt.Errorf("write artifact to %s: %w", target, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", target, len(data))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination path (defaults to the stored artifact name)")
	return cmd
}
