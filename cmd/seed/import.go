package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tripautostrade/area-directory/internal/config"
	"github.com/tripautostrade/area-directory/internal/domain/repository"
	"github.com/tripautostrade/area-directory/internal/infrastructure/supabase"
	"github.com/tripautostrade/area-directory/internal/repository/postgres"
	"github.com/tripautostrade/area-directory/internal/usecase"
)

var (
	importFile      string
	importChunkSize int
	importDryRun    bool
	importMigrate   bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a GeoJSON file into the service areas table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open geojson: %w", err)
		}
		defer f.Close()

		parsed, err := usecase.ParseFeatures(f)
		if err != nil {
			return err
		}

		chunkSize := importChunkSize
		if chunkSize <= 0 {
			chunkSize = cfg.Import.ChunkSize
		}

		writer, closeWriter, err := openWriter(ctx, cfg, importDryRun, importMigrate)
		if err != nil {
			return err
		}
		defer closeWriter()

		report, err := usecase.NewImportUseCase(writer, log, chunkSize).Import(ctx, parsed, importDryRun)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		cmd.Printf("features: %d, valid: %d, skipped: %d\n", report.TotalFeatures, report.ValidRows, report.Skipped)
		for brand, n := range report.Brands {
			cmd.Printf("  %-14s %d\n", brand, n)
		}
		if report.DryRun {
			cmd.Println("dry run, nothing written")
			return nil
		}
		cmd.Printf("inserted: %d/%d, failed chunks: %d\n", report.Inserted, report.ValidRows, report.FailedChunks)

		if report.FailedChunks > 0 {
			return errors.New("some chunks failed")
		}
		return nil
	},
}

// openWriter picks the import target from AREA_SOURCE. Dry runs never connect.
func openWriter(ctx context.Context, cfg *config.Config, dryRun, migrate bool) (repository.AreaWriter, func(), error) {
	if dryRun {
		return nil, func() {}, nil
	}

	switch cfg.Directory.Source {
	case config.SourceSupabase:
		if migrate {
			log.Warn("--migrate is ignored for the supabase source")
		}
		return supabase.NewClient(&cfg.Supabase, cfg.Directory.Table, log), func() {}, nil

	default:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}

		if migrate {
			if err := db.Migrate(ctx, cfg.Directory.Table); err != nil {
				closeDB()
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return postgres.NewServiceAreaRepository(db, cfg.Directory.Table), closeDB, nil
	}
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "aree_servizio.geojson", "path to the GeoJSON file")
	importCmd.Flags().IntVar(&importChunkSize, "chunk-size", 0, "rows per insert (default IMPORT_CHUNK_SIZE)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and report without writing")
	importCmd.Flags().BoolVar(&importMigrate, "migrate", false, "create the table if it does not exist (postgres only)")
	rootCmd.AddCommand(importCmd)
}
