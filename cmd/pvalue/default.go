package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pvalue/internal/presentation/tui"
)

var defaultCmd = &cobra.Command{
	Use:   "default <type>",
	Short: "Print the default value of a type",
	Example: `  pvalue default "(x: int, tags: seq[event])"
  pvalue default "map[int, bool]"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}

		v, err := rt.Default(args[0])
		if err != nil {
			return err
		}
		defer rt.Heap.FreeValue(v)

		fmt.Fprintln(cmd.OutOrStdout(), tui.Colorize(v, colorProfile(cmd)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(defaultCmd)
}
