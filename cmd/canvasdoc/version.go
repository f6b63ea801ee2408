package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/canvasdoc"
	"github.com/aretw0/canvasdoc/pkg/document"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of canvasdoc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "canvasdoc version %s (schema %s)\n", canvasdoc.Version, document.SchemaVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
