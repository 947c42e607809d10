// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-assistant/internal/app"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Long: `List prints the entries of the document store sorted by name. Use
--suffix .txt for extracted and filled text, or --contains filled for
filled templates.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		suffix, _ := cmd.Flags().GetString("suffix")
		contains, _ := cmd.Flags().GetString("contains")
		format, _ := cmd.Flags().GetString("format")

		docs, err := application.List(app.ListRequest{Suffix: suffix, Contains: contains})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if ok, err := writeStructured(w, format, docs); ok || err != nil {
			return err
		}

		if len(docs) == 0 {
			fmt.Fprintln(w, "No documents found. Upload a PDF first.")
			return nil
		}
		fmt.Fprintf(w, "%-40s  %10s  %6s  %s\n", "Name", "Bytes", "Lines", "Modified")
		fmt.Fprintln(w, strings.Repeat("-", 80))
		for _, d := range docs {
			lines := "-"
			if d.Lines > 0 || strings.HasSuffix(d.Name, ".txt") {
				lines = fmt.Sprint(d.Lines)
			}
			fmt.Fprintf(w, "%-40s  %10d  %6s  %s\n",
				abbreviate(d.Name, 40), d.Size, lines, d.ModTime.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(w, "\n%d documents\n", len(docs))
		return nil
	},
}

func init() {
	listCmd.Flags().String("suffix", "", "only names ending in this suffix (e.g. .txt)")
	listCmd.Flags().String("contains", "", "only names containing this text")
	listCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(listCmd)
}
