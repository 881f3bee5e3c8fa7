package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Storage Storage `mapstructure:"storage"`
	Logger  Logger  `mapstructure:"logger"`
	Server  Server  `mapstructure:"server"`
	Client  Client  `mapstructure:"client"`
}

// Storage selects and configures the ledger backend.
type Storage struct {
	Driver string `mapstructure:"driver"` // "json" or "sqlite"
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// Server holds the configuration for the HTTP API.
type Server struct {
	Port           int     `mapstructure:"port"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Client holds the configuration for talking to a running API server.
type Client struct {
	BaseURL        string  `mapstructure:"base_url"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; defaults apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("storage.driver", "json")
	v.SetDefault("storage.path", "investments.json")
	v.SetDefault("storage.dsn", "ledger.db")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 20) // requests per second
	v.SetDefault("server.rate_limit_burst", 5)
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.rate_limit", 10)
	v.SetDefault("client.rate_limit_burst", 1)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}
