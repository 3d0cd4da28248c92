package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingAPIKey is returned when no market data API key is configured.
var ErrMissingAPIKey = errors.New("API_KEY is not set")

// CoinMarketCap configuration
type CoinMarketCap struct {
	// APIHost is the base URL of the CoinMarketCap API
	APIHost string `envconfig:"CMC_API_HOST" default:"https://pro-api.coinmarketcap.com"`

	// APIKey is the CoinMarketCap API key
	APIKey string `envconfig:"API_KEY" default:""`
}

// Log configuration
type Log struct {
	// LogFormat Customize the log format. Can be "text" or "json".
	Format string `envconfig:"LOG_FORMAT" default:"text"`

	// LogLevel The log level used in coin-prices.
	Level string `envconfig:"LOG_LEVEL" default:"INFO"`
}

// Config is the configuration for the application
type Config struct {
	CoinMarketCap CoinMarketCap
	Log           Log
}

// New loads envFile, if it exists, into the process environment and builds
// the configuration from it. Variables already present in the environment
// are not overridden by the file.
func New(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{}

	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, err
	}

	if cfg.CoinMarketCap.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return cfg, nil
}
