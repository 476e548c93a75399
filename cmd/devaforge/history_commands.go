package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"devaforge/internal/bank"
	"devaforge/internal/history"
)

func newBankHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		limit      int
		failedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "history [bank]",
		Short: "Show recorded builds, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("build history is disabled (set [history].enabled = true)")
			}
			defer store.Close()

			filter := history.Filter{Limit: limit}
			if failedOnly {
				filter.Status = history.StatusFailed
			}
			if len(args) == 1 {
				layout, err := ctx.layout()
				if err != nil {
					return err
				}
				dir, err := bank.Resolve(layout, args[0])
				if err != nil {
					return err
				}
				filter.BankID = filepath.Base(dir)
			}

			records, err := store.List(commandCtx(cmd), filter)
			if err != nil {
				return err
			}
			if jsonOutput {
				if records == nil {
					records = []history.Record{}
				}
				return writeJSON(cmd, records)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No builds recorded")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					humanize.Time(rec.StartedAt),
					rec.BankID,
					string(rec.Status),
					strconv.Itoa(rec.TriggerCount),
					formatBytes(rec.ArchiveBytes),
					rec.Duration().Round(time.Millisecond).String(),
					shortID(rec.BuildID),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{title: "Started"},
				{title: "Bank"},
				{title: "Status"},
				{title: "Triggers", align: alignRight},
				{title: "Size", align: alignRight},
				{title: "Duration", align: alignRight},
				{title: "Build"},
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of builds to show (0 for all)")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Show only failed builds")
	return cmd
}

func formatBytes(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(n))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
