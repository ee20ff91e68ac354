package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/pvalue"
	"github.com/aretw0/pvalue/internal/config"
	"github.com/aretw0/pvalue/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "pvalue",
	Short: "pvalue inspects typed state machine values",
	Long: `pvalue builds default values of types written in the type notation,
checks their core invariants and runs map workloads against a bounded heap.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (missing file means defaults)")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// newRuntime builds a Runtime from the persistent flags.
func newRuntime(cmd *cobra.Command) (*pvalue.Runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	opts := []pvalue.Option{pvalue.WithConfig(cfg)}
	if cmd.Flags().Changed("log-level") {
		name, _ := cmd.Flags().GetString("log-level")
		level, err := logging.LookupLevel(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pvalue.WithLogger(logging.New(level)))
	}
	return pvalue.New(opts...)
}

// styled reports whether stdout is a terminal that should get colors.
func styled(cmd *cobra.Command) bool {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func colorProfile(cmd *cobra.Command) termenv.Profile {
	if !styled(cmd) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// termWidth returns the terminal width, or 80 when it cannot be determined.
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
