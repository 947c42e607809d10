// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-assistant/internal/app"
	"github.com/pdiddy/doc-assistant/internal/journal"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent language model interactions",
	Long: `History reads the activity journal, a SQLite log of every ask, steps,
analyze, and polish call with its prompt size, response, and timing. The
journal is for review only and is never sent back to the model.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		entries, err := application.History(cmd.Context(), queryFromFlags(cmd))
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if ok, err := writeStructured(w, format, entries); ok || err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "No interactions recorded.")
			return nil
		}

		fmt.Fprintf(w, "%-19s  %-8s  %-20s  %-40s  %8s\n", "Started", "Task", "Document", "Input", "Elapsed")
		fmt.Fprintln(w, strings.Repeat("-", 105))
		for _, e := range entries {
			status := fmt.Sprintf("%.1fs", e.Elapsed.Seconds())
			if e.Error != "" {
				status = "failed"
			}
			fmt.Fprintf(w, "%-19s  %-8s  %-20s  %-40s  %8s\n",
				e.StartedAt.Local().Format("2006-01-02 15:04:05"),
				e.Task, abbreviate(e.Document, 20), abbreviate(e.Input, 40), status)
		}
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal to YAML, JSON, or XLSX in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := journal.ParseFormat(formatName)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")

		q := queryFromFlags(cmd)
		if !cmd.Flags().Changed("limit") {
			q.Limit = 0
		}
		res, err := application.ExportHistory(cmd.Context(), app.ExportRequest{
			Query:  q,
			Format: format,
			Output: out,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d interactions to %s\n", res.Entries, res.Name)
		return nil
	},
}

func queryFromFlags(cmd *cobra.Command) journal.Query {
	task, _ := cmd.Flags().GetString("task")
	doc, _ := cmd.Flags().GetString("doc")
	contains, _ := cmd.Flags().GetString("contains")
	failed, _ := cmd.Flags().GetBool("failed")
	limit, _ := cmd.Flags().GetInt("limit")
	return journal.Query{
		Task:       types.Task(task),
		Document:   doc,
		Contains:   contains,
		FailedOnly: failed,
		Limit:      limit,
	}
}

func init() {
	// Shared filters on the parent command, inherited by export.
	historyCmd.PersistentFlags().String("task", "", "filter by task: ask, steps, analyze, polish")
	historyCmd.PersistentFlags().String("doc", "", "filter by document name")
	historyCmd.PersistentFlags().String("contains", "", "filter by text in the input or response")
	historyCmd.PersistentFlags().Bool("failed", false, "only failed interactions")
	historyCmd.PersistentFlags().Int("limit", 20, "maximum entries (negative = all)")

	historyCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml, json, or xlsx")
	historyExportCmd.Flags().String("out", "", "store name of the export (default: history-<time>.<format>)")

	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
