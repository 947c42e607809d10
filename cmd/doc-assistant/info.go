// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <name.pdf>",
	Short: "Show the page count of a stored PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := application.Info(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages, %d bytes\n", res.Name, res.Pages, res.Size)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
