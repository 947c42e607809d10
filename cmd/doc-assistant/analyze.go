// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-assistant/internal/app"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <situation>...",
	Short: "Analyze a situation and suggest a practical solution",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _ := cmd.Flags().GetString("doc")
		out, err := application.Analyze(cmd.Context(), app.AnalyzeRequest{
			Situation: joinArgs(args),
			Document:  doc,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("doc", "", "stored document to send as context")

	rootCmd.AddCommand(analyzeCmd)
}
