// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-assistant/internal/app"
)

var askCmd = &cobra.Command{
	Use:   "ask <name> <question>...",
	Short: "Ask a question about a stored document",
	Long: `Ask sends the full text of a stored document and your question to the
language model, which is told to answer only from the document.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := application.TextDocuments(); err != nil {
			return err
		}
		answer, err := application.Ask(cmd.Context(), app.AskRequest{
			Document: args[0],
			Question: joinArgs(args[1:]),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
