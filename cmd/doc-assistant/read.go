// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-assistant/internal/app"
)

var readCmd = &cobra.Command{
	Use:   "read <name>",
	Short: "Print lines of a stored document",
	Long: `Read prints lines [start, end) of a stored document, counting from 0.
Without --end it reads to the end. A start past the last line prints
nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetInt("start")
		numbered, _ := cmd.Flags().GetBool("numbered")

		req := app.ReadRequest{Name: args[0], Start: start}
		if cmd.Flags().Changed("end") {
			end, _ := cmd.Flags().GetInt("end")
			req.End = &end
		}

		text, err := application.Read(req)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}

		w := cmd.OutOrStdout()
		if !numbered {
			fmt.Fprintln(w, text)
			return nil
		}
		for i, line := range strings.Split(text, "\n") {
			fmt.Fprintf(w, "%6d  %s\n", start+i, line)
		}
		return nil
	},
}

func init() {
	readCmd.Flags().Int("start", 0, "first line to print (0-based)")
	readCmd.Flags().Int("end", 0, "line to stop before (default: end of document)")
	readCmd.Flags().Bool("numbered", false, "prefix each line with its number")

	rootCmd.AddCommand(readCmd)
}
