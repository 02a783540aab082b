package main

import (
	"fmt"
	"os"

	"feriwala/config"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "feriwala",
		Short:         "Feriwala storefront and admin backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log, verbose)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./feriwala.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newAdminCmd(),
		newCatalogCmd(),
		newSeedCmd(),
	)
	return root
}

func newLogger(lc config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
