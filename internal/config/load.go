package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("crossbench")
	}

	viper.SetEnvPrefix("CROSSBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("build_root", "bench")
	viper.SetDefault("reports_dir", "results")
	viper.SetDefault("profiler", "perf")
	viper.SetDefault("repeat", 100)
	viper.SetDefault("bench_timeout", 0)
	viper.SetDefault("history_file", ".crossbench/history.json")
	viper.SetDefault("log_file", "")
	viper.SetDefault("verbose", false)

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine for commands that only need
		// defaults; registry loading reports its own absence of entries.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("Warning: could not read config file:", err)
		}
	}
}

// Validate checks the scalar configuration values and collects every
// problem into one error.
func Validate() error {
	var problems []string

	if repeat := viper.GetInt("repeat"); repeat <= 0 {
		problems = append(problems, fmt.Sprintf("repeat must be positive, got: %d", repeat))
	}
	if viper.IsSet("bench_timeout") {
		if d := viper.GetDuration("bench_timeout"); d < 0 {
			problems = append(problems, fmt.Sprintf("bench_timeout must not be negative, got: %v", d))
		}
	}
	if viper.GetString("build_root") == "" {
		problems = append(problems, "build_root must not be empty")
	}
	if viper.GetString("reports_dir") == "" {
		problems = append(problems, "reports_dir must not be empty")
	}
	if viper.GetString("profiler") == "" {
		problems = append(problems, "profiler must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// BenchTimeout returns the configured per-run timeout, zero when unset.
func BenchTimeout() time.Duration {
	return viper.GetDuration("bench_timeout")
}
