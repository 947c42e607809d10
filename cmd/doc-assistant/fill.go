// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-assistant/internal/app"
	"github.com/pdiddy/doc-assistant/internal/fill"
	"github.com/pdiddy/doc-assistant/pkg/types"
)

var fillCmd = &cobra.Command{
	Use:   "fill-template <template>",
	Short: "Fill the key: value lines of a stored template",
	Long: `Fill-template replaces every "key: ..." line of a stored template with
"key: value". Values come from --values (a YAML or JSON mapping of strings)
overlaid by --set key=value flags; missing keys are left empty. Text after
the first colon of a template line is discarded.

With --polish the merged text is rewritten by the language model and the
rewrite is saved instead. The rewrite is not guaranteed to keep every
value: fields whose values it dropped are reported, and --verify turns
that report into an error so nothing is written. Use the raw merge when
exact values matter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()

		if listOnly, _ := cmd.Flags().GetBool("fields"); listOnly {
			fields, err := application.Fields(args[0])
			if err != nil {
				return err
			}
			if len(fields) == 0 {
				fmt.Fprintln(w, "No fields detected in the template.")
				return nil
			}
			for _, f := range fields {
				fmt.Fprintf(w, "%4d  %s\n", f.Line, f.Key)
			}
			return nil
		}

		values, err := valuesFromFlags(cmd)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		polish, _ := cmd.Flags().GetBool("polish")
		verify, _ := cmd.Flags().GetBool("verify")

		res, err := application.FillTemplate(cmd.Context(), app.FillRequest{
			Template: args[0],
			Values:   values,
			Output:   out,
			Polish:   polish,
			Verify:   verify,
		})
		for _, m := range res.Missing {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: polished text does not contain the value of %q (line %d)\n", m.Key, m.Line)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(w, res.Text)
		fmt.Fprintf(w, "\nTemplate filled and saved as %s\n", res.Output)
		return nil
	},
}

func valuesFromFlags(cmd *cobra.Command) (types.Values, error) {
	values := types.Values{}
	if path, _ := cmd.Flags().GetString("values"); path != "" {
		v, err := fill.LoadValues(path)
		if err != nil {
			return nil, err
		}
		values = v
	}
	sets, _ := cmd.Flags().GetStringArray("set")
	overrides, err := fill.ParseAssignments(sets)
	if err != nil {
		return nil, err
	}
	return values.Merge(overrides), nil
}

func init() {
	fillCmd.Flags().StringArray("set", nil, "field value as key=value (repeatable)")
	fillCmd.Flags().String("values", "", "YAML or JSON file mapping keys to values")
	fillCmd.Flags().String("out", fill.DefaultOutput, "store name of the filled template")
	fillCmd.Flags().Bool("polish", false, "rewrite the merged text with the language model")
	fillCmd.Flags().Bool("verify", false, "fail when the polished text drops a value")
	fillCmd.Flags().Bool("fields", false, "list detected fields and exit")

	rootCmd.AddCommand(fillCmd)
}
