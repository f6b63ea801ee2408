package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/canvasdoc/internal/presentation/report"
	"github.com/aretw0/canvasdoc/internal/presentation/tui"
	"github.com/aretw0/canvasdoc/pkg/document"
	"github.com/aretw0/canvasdoc/pkg/values"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a document as markdown",
	Long: `Prints metadata, a component table, diagnostics, validation problems and
a Mermaid graph of the wiring. Output is rendered for the terminal when stdout
is one; otherwise the raw markdown is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		raw, _ := cmd.Flags().GetBool("raw")
		noGraph, _ := cmd.Flags().GetBool("no-graph")

		doc, err := readDocument(cmd.InOrStdin(), args[0], format)
		if err != nil {
			return err
		}

		var opts []report.Option
		if noGraph {
			opts = append(opts, report.WithoutGraph())
		}
		if err := document.Validate(doc, values.Default()); err != nil {
			problems := document.ValidationErrors(err)
			if len(problems) == 0 {
				problems = []error{err}
			}
			opts = append(opts, report.WithValidation(problems))
		}
		md := report.Markdown(doc, opts...)

		fd := int(os.Stdout.Fd())
		if raw || cmd.OutOrStdout() != os.Stdout || !term.IsTerminal(fd) {
			_, err := fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		}

		width, _, err := term.GetSize(fd)
		if err != nil {
			width = 0
		}
		render, err := tui.NewRenderer(width)
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("format", "f", "", "Document format (json, yaml)")
	inspectCmd.Flags().Bool("raw", false, "Print markdown without terminal rendering")
	inspectCmd.Flags().Bool("no-graph", false, "Leave out the Mermaid graph")
}
