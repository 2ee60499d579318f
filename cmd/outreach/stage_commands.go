package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"outreach/internal/stages"
	"outreach/internal/workflow"
)

func newLogisticsCommand(ctx *commandContext) *cobra.Command {
	logisticsCmd := &cobra.Command{
		Use:   "logistics",
		Short: "Edit and submit the webinar logistics stage",
	}

	logisticsCmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Print the editable logistics structure for the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				record, err := svc.EditLogistics(runCtx, ctx.sessionID())
				if err != nil {
					return err
				}
				return writeJSON(cmd, record)
			})
		},
	})

	logisticsCmd.AddCommand(&cobra.Command{
		Use:   "save <record.json>",
		Short: "Validate and submit a logistics record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record stages.LogisticsRecord
			if err := readRecordFile(args[0], &record); err != nil {
				return err
			}
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				if err := svc.SaveLogistics(runCtx, ctx.sessionID(), record); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d webinar events; logistics stage completed\n", len(record.Events))
				return nil
			})
		},
	})

	return logisticsCmd
}

func newContentCommand(ctx *commandContext) *cobra.Command {
	contentCmd := &cobra.Command{
		Use:   "content",
		Short: "Edit and submit the campaign content stage",
	}

	contentCmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Print the editable content structure for the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				record, err := svc.EditContent(runCtx, ctx.sessionID())
				if err != nil {
					return err
				}
				return writeJSON(cmd, record)
			})
		},
	})

	contentCmd.AddCommand(&cobra.Command{
		Use:   "save <record.json>",
		Short: "Validate and submit a content record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record stages.ContentRecord
			if err := readRecordFile(args[0], &record); err != nil {
				return err
			}
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				if err := svc.SaveContent(runCtx, ctx.sessionID(), record); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d messages; content stage completed\n", len(record.Messages))
				return nil
			})
		},
	})

	contentCmd.AddCommand(&cobra.Command{
		Use:   "attach <image>",
		Short: "Attach a campaign image to the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				stored, err := svc.AttachImage(runCtx, ctx.sessionID(), args[0], data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Attached image as %s\n", stored)
				return nil
			})
		},
	})

	return contentCmd
}

func newReportingCommand(ctx *commandContext) *cobra.Command {
	reportingCmd := &cobra.Command{
		Use:   "reporting",
		Short: "Submit and review campaign delivery reports",
	}

	reportingCmd.AddCommand(&cobra.Command{
		Use:   "save <record.json>",
		Short: "Validate and submit a reporting record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record stages.ReportingRecord
			if err := readRecordFile(args[0], &record); err != nil {
				return err
			}
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				if err := svc.SaveReporting(runCtx, ctx.sessionID(), record); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Report saved; numbers remain revisable")
				return nil
			})
		},
	})

	reportingCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved delivery report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(runCtx context.Context, svc *workflow.Service) error {
				record, err := svc.Report(runCtx, ctx.sessionID())
				if err != nil {
					return err
				}
				printReport(cmd, record)
				return nil
			})
		},
	})

	return reportingCmd
}

func printReport(cmd *cobra.Command, record *stages.ReportingRecord) {
	rows := [][]string{
		{"Email", "Count", fmt.Sprint(record.Email.EmailCount)},
		{"Email", "Sent", fmt.Sprint(record.Email.Sent)},
		{"Email", "Read", fmt.Sprint(record.Email.Read)},
		{"WhatsApp", "Dispatched", fmt.Sprint(record.WhatsApp.Dispatched)},
		{"WhatsApp", "Sent", fmt.Sprint(record.WhatsApp.Sent)},
		{"WhatsApp", "Read", fmt.Sprint(record.WhatsApp.Read)},
		{"WhatsApp", "Clicked", fmt.Sprint(record.WhatsApp.Clicked)},
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Channel", "Counter", "Value"}, rows))
}

func readRecordFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse record %s: %w", path, err)
	}
	return nil
}
