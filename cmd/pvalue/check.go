package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pvalue/internal/cli"
	"github.com/aretw0/pvalue/internal/presentation/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check <type>",
	Short: "Check clone, equality, hashing and free on the default value of a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}

		report, err := cli.Check(rt, args[0])
		if err != nil {
			return err
		}

		render, err := tui.NewRenderer(styled(cmd), termWidth())
		if err != nil {
			return err
		}
		out, err := render(report.Markdown())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)

		if !report.OK() {
			return fmt.Errorf("check failed for %s", report.Type)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
