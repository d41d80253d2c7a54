package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/tripautostrade/area-directory/internal/config"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// DB - пул соединений к базе с таблицей service_areas
type DB struct {
	*sqlx.DB
	logger   *zap.Logger
	database string
}

// DSN собирает URL подключения для драйвера pgx
func DSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:   "/" + cfg.DBName,
	}
	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	q.Set("application_name", "area-directory")
	u.RawQuery = q.Encode()
	return u.String()
}

// New opens the pool and checks it with a ping, so a bad DSN fails at startup.
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	conn, err := sqlx.Open("pgx", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	db := &DB{DB: conn, logger: logger.Named("postgres"), database: cfg.DBName}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.Health(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db.logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
	)
	return db, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

// Health пингует базу; используется при старте и в /api/v1/health
func (db *DB) Health(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres %q: %w", db.database, err)
	}
	return nil
}

// NewDBForTest wraps an existing connection, used by testhelpers.
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{DB: sqlxDB, logger: logger, database: "test"}
}
