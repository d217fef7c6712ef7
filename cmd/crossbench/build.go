package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crossbench/internal/config"
	"crossbench/internal/registry"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build all configured implementations without benchmarking",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Validate(); err != nil {
			return err
		}
		reg, err := registry.FromViper()
		if err != nil {
			return err
		}
		return buildFunc(cmd.Context(), reg, viper.GetString("build_root"))
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
