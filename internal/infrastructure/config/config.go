package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	JWTSecret  string `env:"JWT_SECRET"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	CORSOrigin string `env:"CORS_ORIGIN, default=http://localhost:5173"`

	Shiprocket ShiprocketConfig
	Mongo      MongoConfig
	Redis      RedisConfig
}

type ShiprocketConfig struct {
	BaseURL        string `env:"SHIPROCKET_BASE_URL, default=https://apiv2.shiprocket.in/v1/external"`
	Email          string `env:"SHIPROCKET_EMAIL"`
	Password       string `env:"SHIPROCKET_PASSWORD"`
	PickupLocation string `env:"SHIPROCKET_PICKUP_LOCATION, default=Primary"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
