package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"outreach/internal/progress"
	"outreach/internal/stages"
	"outreach/internal/workflow"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func newProgressCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var stageFlag string

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the per-stage dashboard for the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				result, err := svc.Progress(runCtx, ctx.sessionID())
				if err != nil {
					return err
				}
				if stageFlag != "" {
					stage, ok := stages.ParseStage(stageFlag)
					if !ok {
						return fmt.Errorf("unknown stage %q", stageFlag)
					}
					fmt.Fprintln(cmd.OutOrStdout(), result[stage])
					return nil
				}
				if jsonOutput {
					view := make(map[string]string, len(result))
					for stage, status := range result {
						view[string(stage)] = string(status)
					}
					return writeJSON(cmd, view)
				}
				printProgress(cmd, result)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the dashboard as JSON")
	cmd.Flags().StringVar(&stageFlag, "stage", "", "Print only the named stage's status")
	return cmd
}

func printProgress(cmd *cobra.Command, result progress.Map) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(result))
	for _, stage := range stages.All() {
		rows = append(rows, []string{stage.DisplayName(), renderStatus(result[stage], colorize)})
	}
	fmt.Fprintln(out, renderTable([]string{"Stage", "Status"}, rows))
}

func renderStatus(status progress.Status, colorize bool) string {
	if !colorize {
		return string(status)
	}
	switch status {
	case progress.StatusCompleted:
		return ansiGreen + string(status) + ansiReset
	case progress.StatusUploaded:
		return ansiYellow + string(status) + ansiReset
	default:
		return string(status)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
