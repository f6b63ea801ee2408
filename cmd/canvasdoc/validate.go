package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/canvasdoc/internal/presentation/tui"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/values"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check documents for structural consistency",
	Long: `Decodes each document and checks ids, wire endpoints, group members,
parameter names and every encoded value. Use "-" to read from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		status := tui.NewStatus(cmd.OutOrStdout())

		failed := 0
		for _, path := range args {
			doc, err := readDocument(cmd.InOrStdin(), path, format)
			if err != nil {
				status.Fail("%v", err)
				failed++
				continue
			}
			if err := document.Validate(doc, values.Default()); err != nil {
				problems := document.ValidationErrors(err)
				if len(problems) == 0 {
					problems = []error{err}
				}
				status.Fail("%s: %d problem(s)", path, len(problems))
				for _, p := range problems {
					fmt.Fprintf(cmd.OutOrStdout(), "    %v\n", p)
				}
				failed++
				continue
			}
			status.OK("%s is valid (%d components, %d connections)", path, len(doc.Components), len(doc.Connections))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d document(s) failed validation", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("format", "f", "", "Document format (json, yaml); inferred from the extension by default")
}
