// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-assistant/internal/app"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <pdf|url>...",
	Short: "Upload PDFs and extract their text",
	Long: `Upload copies each PDF (a local path or an http(s) URL) into the store
and writes its extracted text next to it with a .txt suffix. The text
name is what ask, read, and fill-template take.

The native backend reads the PDF in process; markitdown runs the
markitdown container image with docker or podman.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		backend, _ := cmd.Flags().GetString("backend")

		w := cmd.OutOrStdout()
		results, err := application.Upload(cmd.Context(), app.UploadRequest{
			Sources: args,
			Name:    name,
			Backend: types.ExtractionBackend(backend),
		}, w)
		if len(args) == 1 {
			for _, r := range results {
				cmd.Printf("uploaded: %s -> %s (%d pages, %d lines)\n", r.PDFName, r.TextName, r.Pages, r.Lines)
			}
		}
		return err
	},
}

func init() {
	uploadCmd.Flags().String("name", "", "store name for a single upload (default: source base name)")
	uploadCmd.Flags().String("backend", "", "extraction backend: native or markitdown (default: extraction.backend)")

	rootCmd.AddCommand(uploadCmd)
}
