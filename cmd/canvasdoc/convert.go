package main

import (
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> [out]",
	Short: "Convert a document between JSON and YAML",
	Long: `Reads a document and writes it in another format. Without [out] the
result goes to stdout in the format named by --to.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		doc, err := readDocument(cmd.InOrStdin(), args[0], from)
		if err != nil {
			return err
		}
		doc.Refresh()

		out := ""
		if len(args) == 2 {
			out = args[1]
		}
		return writeDocument(cmd.OutOrStdout(), out, to, doc)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().String("from", "", "Input format (json, yaml)")
	convertCmd.Flags().String("to", "", "Output format (json, yaml); defaults to the output extension or json")
}
