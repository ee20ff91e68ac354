package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pvalue"
	"github.com/aretw0/pvalue/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pvalue",
	Run: func(cmd *cobra.Command, args []string) {
		if styled(cmd) {
			tui.PrintBanner(cmd.OutOrStdout(), colorProfile(cmd))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pvalue version %s\n", pvalue.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
