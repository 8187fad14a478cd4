package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Retry  RetryConfig
	Demo   DemoConfig
	Logger LoggerConfig
}

type RetryConfig struct {
	MaxAttempts       int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
	InitialDelay      time.Duration `env:"RETRY_INITIAL_DELAY" envDefault:"1s"`
	BackoffMultiplier float64       `env:"RETRY_BACKOFF_MULTIPLIER" envDefault:"2.0"`
	LogEnabled        bool          `env:"RETRY_LOG_ENABLED" envDefault:"true"`
}

type DemoConfig struct {
	FailureRate float64       `env:"DEMO_FAILURE_RATE" envDefault:"0.7"`
	Latency     time.Duration `env:"DEMO_LATENCY" envDefault:"100ms"`
	StableCalls int           `env:"DEMO_STABLE_CALLS" envDefault:"5"`
	FlakyCalls  int           `env:"DEMO_FLAKY_CALLS" envDefault:"3"`
}

type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"true"`
	JSON   bool   `env:"LOG_JSON" envDefault:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Retry: RetryConfig{
			MaxAttempts:       3,
			InitialDelay:      time.Second,
			BackoffMultiplier: 2.0,
			LogEnabled:        true,
		},
		Demo: DemoConfig{
			FailureRate: 0.7,
			Latency:     100 * time.Millisecond,
			StableCalls: 5,
			FlakyCalls:  3,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Pretty: true,
			JSON:   false,
		},
	}
}
