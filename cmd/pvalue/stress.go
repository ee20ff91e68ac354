package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/aretw0/pvalue/internal/cli"
)

var stressCmd = &cobra.Command{
	Use:   "stress <map-type>",
	Short: "Run an insert/remove workload on a map with int keys",
	Example: `  pvalue stress --keys 100000 "map[int, seq[bool]]"
  pvalue stress --metrics "map[int, int]"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, _ := cmd.Flags().GetInt("keys")
		rounds, _ := cmd.Flags().GetInt("rounds")
		metrics, _ := cmd.Flags().GetBool("metrics")

		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Stop()

		res, err := cli.Stress(sigCtx, rt, cli.StressOptions{Type: args[0], Keys: keys, Rounds: rounds})
		if err != nil {
			if sig := sigCtx.Signal(); sig != nil {
				return fmt.Errorf("interrupted by %s after %d rounds", sig, res.Rounds)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "rounds %d, inserts %d, removes %d in %s\n", res.Rounds, res.Inserts, res.Removes, res.Elapsed)
		fmt.Fprintf(out, "peak buckets %d, resizes %d, allocations %d, frees %d, live cells %d\n",
			res.Capacity, res.Stats.MapResizes, res.Stats.Allocations, res.Stats.Frees, res.Stats.LiveCells)

		if metrics {
			reg := prometheus.NewRegistry()
			if err := rt.RegisterMetrics(reg); err != nil {
				return err
			}
			return writeMetrics(out, reg)
		}
		return nil
	},
}

// writeMetrics prints every gathered family in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(stressCmd)

	stressCmd.Flags().Int("keys", 10000, "Number of keys inserted per round")
	stressCmd.Flags().Int("rounds", 1, "Number of fill/drain rounds")
	stressCmd.Flags().Bool("metrics", false, "Print heap metrics in Prometheus text format")
}
