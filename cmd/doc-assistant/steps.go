// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-assistant/internal/app"
)

var stepsCmd = &cobra.Command{
	Use:   "steps <process>...",
	Short: "Explain a process step by step",
	Long: `Steps asks the language model for clear, practical, step-by-step
instructions to complete a named process. With --doc the stored document
is sent as context.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _ := cmd.Flags().GetString("doc")
		out, err := application.Steps(cmd.Context(), app.StepsRequest{
			Process:  joinArgs(args),
			Document: doc,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "### Procedures:")
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	stepsCmd.Flags().String("doc", "", "stored document to send as context")

	rootCmd.AddCommand(stepsCmd)
}
