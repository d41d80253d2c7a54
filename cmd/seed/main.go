package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tripautostrade/area-directory/internal/config"
	"github.com/tripautostrade/area-directory/internal/pkg/logger"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load service areas from an OSM GeoJSON export",
	Long:  "Parses a GeoJSON FeatureCollection of aree di servizio, normalises brands and inserts the rows into the configured source table in chunks.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		l, err := logger.New(cfg.Log.Level, cfg.Server.Env)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
