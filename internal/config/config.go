package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Источники списка areas di servizio
const (
	SourcePostgres = "postgres"
	SourceSupabase = "supabase"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Supabase  SupabaseConfig
	Directory DirectoryConfig
	Import    ImportConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type SupabaseConfig struct {
	URL            string
	Key            string
	RequestTimeout time.Duration
}

// DirectoryConfig настраивает кеш каталога
type DirectoryConfig struct {
	Source         string
	Table          string
	CacheKey       string
	RefreshTimeout time.Duration
	// RefreshInterval > 0 enables periodic refresh; zero keeps the refresh-on-start-only behaviour
	RefreshInterval time.Duration
}

type ImportConfig struct {
	ChunkSize int
}

type LogConfig struct {
	Level string
}

// Load reads .env (or CONFIG_FILE) and the process environment.
// A missing file is not an error: the environment alone is enough.
func Load() (*Config, error) {
	v := viper.New()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = ".env"
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Supabase: SupabaseConfig{
			URL:            strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
			Key:            v.GetString("SUPABASE_KEY"),
			RequestTimeout: time.Duration(v.GetInt("SUPABASE_TIMEOUT")) * time.Second,
		},
		Directory: DirectoryConfig{
			Source:          strings.ToLower(strings.TrimSpace(v.GetString("AREA_SOURCE"))),
			Table:           v.GetString("AREA_TABLE"),
			CacheKey:        v.GetString("CACHE_KEY"),
			RefreshTimeout:  time.Duration(v.GetInt("REFRESH_TIMEOUT")) * time.Second,
			RefreshInterval: time.Duration(v.GetInt("REFRESH_INTERVAL")) * time.Second,
		},
		Import: ImportConfig{
			ChunkSize: v.GetInt("IMPORT_CHUNK_SIZE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "*"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 10
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Supabase.RequestTimeout == 0 {
		c.Supabase.RequestTimeout = 15 * time.Second
	}
	if c.Directory.Source == "" {
		c.Directory.Source = SourcePostgres
	}
	if c.Directory.Table == "" {
		c.Directory.Table = "service_areas"
	}
	if c.Directory.CacheKey == "" {
		c.Directory.CacheKey = "@service_areas_cache"
	}
	if c.Directory.RefreshTimeout == 0 {
		c.Directory.RefreshTimeout = 30 * time.Second
	}
	if c.Import.ChunkSize <= 0 {
		c.Import.ChunkSize = 500
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	switch c.Directory.Source {
	case SourcePostgres:
	case SourceSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return fmt.Errorf("AREA_SOURCE=supabase requires SUPABASE_URL and SUPABASE_KEY")
		}
	default:
		return fmt.Errorf("unknown AREA_SOURCE %q", c.Directory.Source)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
