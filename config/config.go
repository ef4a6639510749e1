package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, populated from the environment.
type Config struct {
	ServerPort      int           `env:"SERVER_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	Log             LogConfig
	Database        DatabaseConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"eventlane"`
	Password string `env:"DB_PASSWORD" envDefault:"password"`
	DBName   string `env:"DB_NAME" envDefault:"eventlane_db"`
	UseSSL   bool   `env:"DB_USE_SSL"`

	// ConnectAttempts caps connection establishment retries.
	// Zero means retry indefinitely.
	ConnectAttempts   int           `env:"DB_CONNECT_ATTEMPTS" envDefault:"0"`
	ConnectRetryDelay time.Duration `env:"DB_CONNECT_RETRY_DELAY" envDefault:"5s"`
}

// LoadConfig reads configuration from the environment. In dev mode a .env
// file is loaded first.
func LoadConfig() (Config, error) {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
