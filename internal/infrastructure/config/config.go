package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Assignment AssignmentConfig
	Lockout    LockoutConfig
	Notify     NotifyConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dispatch_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AssignmentConfig struct {
	// SaturationThreshold is the open-assignment count at which a technician
	// flips from available to busy.
	SaturationThreshold int `env:"ASSIGN_SATURATION_THRESHOLD, default=3"`
}

type LockoutConfig struct {
	MaxFailures int           `env:"LOCKOUT_MAX_FAILURES, default=3"`
	Window      time.Duration `env:"LOCKOUT_WINDOW,       default=15m"`
}

type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
