// Package cmd is the command line entry point: the web server plus the
// database and admin maintenance tasks.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kustommania/config"
	"kustommania/logger"
)

var rootCmd = &cobra.Command{
	Use:   "kustommania",
	Short: "Kustom Mania custom motorcycle marketplace",
	Long:  "Kustom Mania serves the public catalog and the admin panel. Without a subcommand it starts the web server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

// Execute runs the command selected on the command line
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// boot loads configuration and initializes the global logger
func boot() (*config.Config, error) {
	cfg := config.Load()
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: "kustommania",
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}
