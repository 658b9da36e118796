package main

import (
	"chat-server/internal"
	"fmt"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// loadConfig reads an optional env file, then the environment.
// Variables already set in the environment win over the file.
func loadConfig(args []string) (internal.Config, error) {
	var envFile string
	flagSet := pflag.NewFlagSet("chat-server", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", "", "path to an env file (default: .env when present)")
	if err := flagSet.Parse(args); err != nil {
		return internal.Config{}, err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return internal.Config{}, fmt.Errorf("env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return internal.Config{}, fmt.Errorf("config error: %w", err)
	}
	if config.MetricInterval <= 0 {
		return internal.Config{}, fmt.Errorf("config error: METRIC_INTERVAL must be positive, got %s", config.MetricInterval)
	}
	return config, nil
}
