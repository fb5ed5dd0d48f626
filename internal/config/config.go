// Package config loads service configuration from a yaml file with
// environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backend names accepted in Config.Storage
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPHost string `yaml:"http-host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`

	Storage           string `yaml:"storage" env:"STORAGE_TYPE" env-default:"memory"`
	RedisURL          string `yaml:"redis-url" env:"REDIS_URL" env-default:"redis://localhost:6379"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"pocketarcade.db"`

	Game        Game        `yaml:"game"`
	Leaderboard Leaderboard `yaml:"leaderboard"`
}

type Game struct {
	// AllowSelfPlay permits challenging yourself, useful in development
	AllowSelfPlay bool `yaml:"allow-self-play" env:"ALLOW_SELF_PLAY" env-default:"false"`
	// TurnPingAfter is how long a versus game sits idle before the
	// current player is reminded on the next interaction
	TurnPingAfter time.Duration `yaml:"turn-ping-after" env:"TURN_PING_AFTER" env-default:"30m"`
}

type Leaderboard struct {
	PageSize int `yaml:"page-size" env:"LEADERBOARD_PAGE_SIZE" env-default:"10"`
}

// Load reads configuration from the given yaml file, falling back to
// environment variables and defaults when path is empty
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	switch config.Storage {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage)
	}

	return config, nil
}

// MustLoad is Load for program startup paths that cannot continue
// without configuration
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

// Addr is the listen address built from host and port
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.HTTPHost, c.HTTPPort)
}
