package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crossbench/internal/builder"
	"crossbench/internal/config"
	"crossbench/internal/telemetry"
)

var exit = os.Exit
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "crossbench",
	Short: "Benchmark harness comparing implementations of the same CLI",
	Long: `crossbench builds several independent implementations of the same
command-line tool, runs each under perf stat with identical scenarios,
normalizes the counters into one bounded score and renders a ranked
bar chart per scenario.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and maps errors to process exit codes:
// a failing build exits with that build's own exit code, a deferred
// measurement failure exits 1 after all scenarios were attempted.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var buildErr *builder.ExitError
	if errors.As(err, &buildErr) && buildErr.Code != 0 {
		exit(buildErr.Code)
	}
	exit(1)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./crossbench.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Append JSON logs to this file")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	config.Load(cfgFile)
	telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
}
