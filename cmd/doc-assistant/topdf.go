// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-assistant/internal/app"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

var toPDFCmd = &cobra.Command{
	Use:   "to-pdf <name>",
	Short: "Render a stored text document as a PDF",
	Long: `To-pdf lays the lines of a stored text document top to bottom on
fixed-size pages, one line per row with no wrapping, and writes
<out>.pdf into the store. Lines wider than the page overflow.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		req := app.ToPDFRequest{Name: args[0], Output: out}
		if g, ok := geometryFromFlags(cmd, application.Config().PDF.PageGeometry); ok {
			req.Geometry = &g
		}

		res, err := application.ToPDF(req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "PDF generated: %s (%d pages)\n", res.Path, res.Pages)
		return nil
	},
}

// geometryFromFlags overlays changed geometry flags on base. It reports
// false when no flag was given.
func geometryFromFlags(cmd *cobra.Command, base types.PageGeometry) (types.PageGeometry, bool) {
	changed := false
	set := func(flag string, dst *float64) {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetFloat64(flag)
			changed = true
		}
	}
	set("page-width", &base.Width)
	set("page-height", &base.Height)
	set("margin", &base.Margin)
	set("line-height", &base.LineHeight)
	set("left", &base.Left)
	return base, changed
}

func init() {
	toPDFCmd.Flags().String("out", "", "output base name (default: name without .txt)")
	toPDFCmd.Flags().Float64("page-width", 0, "page width in points")
	toPDFCmd.Flags().Float64("page-height", 0, "page height in points")
	toPDFCmd.Flags().Float64("margin", 0, "top and bottom margin in points")
	toPDFCmd.Flags().Float64("line-height", 0, "line height in points")
	toPDFCmd.Flags().Float64("left", 0, "left text offset in points")

	rootCmd.AddCommand(toPDFCmd)
}
