package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"outreach/internal/workflow"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "ingest <roster.csv>",
		Short: "Ingest a vendor roster CSV into the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open roster: %w", err)
			}
			defer file.Close()

			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				summary, err := svc.IngestRoster(runCtx, ctx.sessionID(), file)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, summary)
				}
				printIngestSummary(cmd, summary)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the ingestion summary as JSON")
	return cmd
}

func printIngestSummary(cmd *cobra.Command, summary *workflow.IngestSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Ingested %d vendor rows into artifact %s\n", summary.RowCount, summary.ArtifactName)
	if len(summary.Issues) == 0 {
		fmt.Fprintln(out, "No validation issues")
		return
	}

	rows := make([][]string, 0, len(summary.Issues))
	for _, issue := range summary.Issues {
		rows = append(rows, []string{strconv.Itoa(issue.Row), issue.Field, issue.Value})
	}
	fmt.Fprintf(out, "%d validation issues (rows retained):\n", len(summary.Issues))
	fmt.Fprintln(out, renderTable([]string{"Row", "Field", "Value"}, rows))
}
