package main

// @title TripAutostrade Area Directory API
// @version 1.0.0
// @description Каталог aree di servizio на итальянских автострадах для мобильного приложения TripAutostrade.
// @description
// @description Основные возможности:
// @description - Список areas с поиском по названию и фильтром по бренду
// @description - Ближайшие areas и расстояние до точки
// @description - Мгновенный ответ из сохранённого снимка, обновление из источника в фоне

// @contact.name API Support
// @contact.email support@tripautostrade.it

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tripautostrade/area-directory/docs"
	"github.com/tripautostrade/area-directory/internal/config"
	httpDelivery "github.com/tripautostrade/area-directory/internal/delivery/http"
	"github.com/tripautostrade/area-directory/internal/delivery/http/handler"
	"github.com/tripautostrade/area-directory/internal/domain/repository"
	"github.com/tripautostrade/area-directory/internal/infrastructure/supabase"
	"github.com/tripautostrade/area-directory/internal/pkg/logger"
	"github.com/tripautostrade/area-directory/internal/repository/cache"
	"github.com/tripautostrade/area-directory/internal/repository/postgres"
	"github.com/tripautostrade/area-directory/internal/usecase"
	"github.com/tripautostrade/area-directory/internal/worker"
	"github.com/tripautostrade/area-directory/internal/worker/directory"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Area Directory")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("area_source", cfg.Directory.Source),
	)

	// 3. Connect to Redis (snapshot store). The directory works without it.
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, starting without a snapshot", zap.Error(err))
		redisClient = cache.NewRedisDeferred(&cfg.Redis, log)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Remote source
	var (
		source   repository.AreaSource
		dbHealth handler.Pinger
	)
	switch cfg.Directory.Source {
	case config.SourceSupabase:
		source = supabase.NewClient(&cfg.Supabase, cfg.Directory.Table, log)
		log.Info("Using Supabase area source", zap.String("url", cfg.Supabase.URL))

	default:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		source = postgres.NewServiceAreaRepository(db, cfg.Directory.Table)
		dbHealth = db
		log.Info("Using PostgreSQL area source", zap.String("table", cfg.Directory.Table))
	}

	// 5. Area directory and use cases
	areaDirectory := usecase.NewAreaDirectory(
		source,
		cache.NewSnapshotStore(redisClient),
		log,
		cfg.Directory.CacheKey,
		cfg.Directory.RefreshTimeout,
	)
	areaUC := usecase.NewAreaUseCase(areaDirectory, log)

	// 6. Workers: snapshot load + initial refresh, optional periodic refresh
	workerManager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	workerManager.Register(directory.NewRefreshWorker(areaDirectory, cfg.Directory.RefreshInterval, log))

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 7. HTTP
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewAreaHandler(areaUC, log),
		handler.NewHealthHandler(areaUC, redisClient, dbHealth, log),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := workerManager.Stop(); err != nil {
		log.Error("Workers shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
