package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"outreach/internal/workflow"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage workflow sessions",
	}

	sessionsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every session with persisted state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				ids, err := svc.Sessions(runCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(ids) == 0 {
					fmt.Fprintln(out, "No sessions")
					return nil
				}
				for _, id := range ids {
					fmt.Fprintln(out, id)
				}
				return nil
			})
		},
	})

	sessionsCmd.AddCommand(&cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session's stage records and artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				removed, err := svc.DeleteSession(runCtx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if removed {
					fmt.Fprintf(out, "Session %s deleted\n", args[0])
				} else {
					fmt.Fprintf(out, "Session %s had no state\n", args[0])
				}
				return nil
			})
		},
	})

	return sessionsCmd
}
