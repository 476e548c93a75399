package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"devaforge/internal/bank"
	"devaforge/internal/faults"
)

func newBankCommand(ctx *commandContext) *cobra.Command {
	bankCmd := &cobra.Command{
		Use:   "bank",
		Short: "Build and manage sound banks",
	}

	bankCmd.AddCommand(newBankBuildCommand(ctx))
	bankCmd.AddCommand(newBankCreateCommand(ctx))
	bankCmd.AddCommand(newBankListCommand(ctx))
	bankCmd.AddCommand(newBankVersionCommand(ctx))
	bankCmd.AddCommand(newBankHistoryCommand(ctx))

	return bankCmd
}

func newBankBuildCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "build [bank]",
		Short: "Build one bank, or every bank when no reference is given",
		Long: `Build packages a bank directory into <author>.<name>.devabank.

The optional reference may be a bank directory, a path to its bank.toml,
an alias bank.<author>.<name>, or a short alias bank.<name> when only one
author publishes that name. Without a reference every bank under the banks
directory is built; a failing bank does not stop the others.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBuilder(cmd, func(builder *bank.Builder) error {
				if len(args) == 1 {
					return runSingleBuild(cmd, builder, args[0], jsonOutput)
				}
				return runBatchBuild(cmd, builder, jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runSingleBuild(cmd *cobra.Command, builder *bank.Builder, ref string, jsonOutput bool) error {
	dir, err := bank.Resolve(builder.Layout(), ref)
	if err != nil {
		return err
	}
	res, err := builder.Build(commandCtx(cmd), dir)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd, res)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderStatusLine(res.BankID, statusOK, buildDetail(res), shouldColorize(out)))
	return nil
}

type failureView struct {
	Dir   string `json:"dir"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type batchView struct {
	Total    int           `json:"total"`
	Built    []bank.Result `json:"built"`
	Failures []failureView `json:"failures"`
}

func runBatchBuild(cmd *cobra.Command, builder *bank.Builder, jsonOutput bool) error {
	summary, err := builder.BuildAll(commandCtx(cmd))
	var batchErr *bank.BatchError
	if err != nil && !errors.As(err, &batchErr) {
		return err
	}

	if jsonOutput {
		view := batchView{Total: summary.Total, Built: summary.Built, Failures: make([]failureView, 0, len(summary.Failures))}
		for _, f := range summary.Failures {
			view.Failures = append(view.Failures, failureView{Dir: f.Dir, Kind: faults.Kind(f.Err), Error: f.Err.Error()})
		}
		if writeErr := writeJSON(cmd, view); writeErr != nil {
			return writeErr
		}
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, res := range summary.Built {
		fmt.Fprintln(out, renderStatusLine(res.BankID, statusOK, buildDetail(res), colorize))
	}
	for _, f := range summary.Failures {
		fmt.Fprintln(out, renderStatusLine(shortBankName(f.Dir), statusError, faults.Kind(f.Err), colorize))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Build complete: %d bank(s) built\n", summary.Total)
	return nil
}

func newBankCreateCommand(ctx *commandContext) *cobra.Command {
	var scaffold bank.Scaffold

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Scaffold a new bank directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := ctx.layout()
			if err != nil {
				return err
			}
			dir, err := bank.Create(layout, scaffold)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created bank %s\n", shortBankName(dir))
			fmt.Fprintf(out, "Add audio files under %s/%s, then run `devaforge bank build`.\n", dir, bank.AudioDirName)
			return nil
		},
	}

	cmd.Flags().StringVar(&scaffold.Name, "name", "", "Bank name (kebab-cased)")
	cmd.Flags().StringVar(&scaffold.Author, "author", "", "Bank author (kebab-cased)")
	cmd.Flags().StringVar(&scaffold.Description, "description", "", "Short description")
	cmd.Flags().StringVar(&scaffold.Access, "access", bank.AccessLevels[0], "Access level: "+strings.Join(bank.AccessLevels, ", "))
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("author")
	return cmd
}

func newBankListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List banks under the banks directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := ctx.layout()
			if err != nil {
				return err
			}
			infos, err := bank.List(layout)
			if err != nil {
				return err
			}
			if jsonOutput {
				if infos == nil {
					infos = []bank.Info{}
				}
				return writeJSON(cmd, infos)
			}

			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintf(out, "No banks found under %s\n", layout.BanksRoot)
				return nil
			}
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				status := "ok"
				if info.Error != "" {
					status = "invalid"
				}
				rows = append(rows, []string{info.ID, info.Version, info.Access, strconv.Itoa(info.Triggers), status})
			}
			fmt.Fprintln(out, renderTable([]column{
				{title: "Bank"},
				{title: "Version"},
				{title: "Access"},
				{title: "Triggers", align: alignRight},
				{title: "Status"},
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newBankVersionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version <bank> <major|minor|patch>",
		Short: "Bump the semantic version of a bank",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := bank.ParseBump(args[1])
			if err != nil {
				return err
			}
			layout, err := ctx.layout()
			if err != nil {
				return err
			}
			oldVersion, newVersion, err := bank.BumpVersion(layout, args[0], kind)
			if err != nil {
				return err
			}
			if oldVersion == "" {
				oldVersion = "(none)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", args[0], oldVersion, newVersion)
			return nil
		},
	}
}

func buildDetail(res bank.Result) string {
	return fmt.Sprintf("%d trigger(s), %s -> %s", len(res.Triggers), formatBytes(res.ArchiveBytes), res.ArchivePath)
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
