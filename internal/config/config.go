package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/quoter/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Catalog    CatalogConfig    `validate:"required"`
	Cache      CacheConfig
	Sentry     SentryConfig
	Metrics    MetricsConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
	// RateLimit is the sustained requests per second accepted on /v1, 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst int     `mapstructure:"rate_burst" validate:"gte=0"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// CatalogConfig selects where the price catalog is loaded from and how
// strictly its metadata is parsed.
type CatalogConfig struct {
	Source          types.CatalogSource `mapstructure:"source" validate:"required"`
	FilePath        string              `mapstructure:"file_path"`
	StrictMetadata  bool                `mapstructure:"strict_metadata"`
	RefreshInterval time.Duration       `mapstructure:"refresh_interval"`
	HTTP            CatalogHTTPConfig   `mapstructure:"http"`
	Stripe          StripeConfig        `mapstructure:"stripe"`
}

type CatalogHTTPConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0"`
}

// StripeConfig maps each module (cf, ci) to the Stripe product holding its prices
type StripeConfig struct {
	SecretKey string            `mapstructure:"secret_key"`
	Products  map[string]string `mapstructure:"products"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/quoter")

	v.SetEnvPrefix("QUOTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.rate_limit", 50)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("catalog.source", types.CatalogSourceFile)
	v.SetDefault("catalog.file_path", "./internal/config/catalog.yaml")
	v.SetDefault("catalog.refresh_interval", 15*time.Minute)
	v.SetDefault("catalog.http.timeout", 10*time.Second)
	v.SetDefault("catalog.http.max_retries", 3)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 15*time.Minute)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "quoter")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return c.Catalog.Validate()
}

// Validate checks the settings required by the selected catalog source
func (c CatalogConfig) Validate() error {
	if err := c.Source.Validate(); err != nil {
		return err
	}

	switch c.Source {
	case types.CatalogSourceFile:
		if c.FilePath == "" {
			return fmt.Errorf("catalog.file_path is required when catalog.source is %s", c.Source)
		}
	case types.CatalogSourceHTTP:
		if c.HTTP.BaseURL == "" {
			return fmt.Errorf("catalog.http.base_url is required when catalog.source is %s", c.Source)
		}
	case types.CatalogSourceStripe:
		if c.Stripe.SecretKey == "" {
			return fmt.Errorf("catalog.stripe.secret_key is required when catalog.source is %s", c.Source)
		}
		for module := range c.Stripe.Products {
			if err := types.ModuleType(module).Validate(); err != nil {
				return fmt.Errorf("catalog.stripe.products has unknown module %q", module)
			}
		}
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Catalog: CatalogConfig{
			Source:          types.CatalogSourceFile,
			FilePath:        "./internal/config/catalog.yaml",
			RefreshInterval: 15 * time.Minute,
		},
		Cache:   CacheConfig{Enabled: true, TTL: 15 * time.Minute},
		Metrics: MetricsConfig{Enabled: true, Namespace: "quoter"},
	}
}
