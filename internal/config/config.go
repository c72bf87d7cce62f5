// Package config loads service settings from an optional TOML file, a .env
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Env string `toml:"env"`

	Shopify ShopifyConfig `toml:"shopify"`

	GRPCAddr string `toml:"grpc_addr"`
	HTTPAddr string `toml:"http_addr"`

	// SpannerDatabase enables the run journal when set.
	SpannerDatabase string `toml:"spanner_database"`

	ImageConcurrency int      `toml:"image_concurrency"`
	RequestTimeout   Duration `toml:"request_timeout"`
}

type ShopifyConfig struct {
	Shop        string  `toml:"shop"`
	AccessToken string  `toml:"access_token"`
	APIVersion  string  `toml:"api_version"`
	RateLimit   float64 `toml:"rate_limit"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() Config {
	return Config{
		Env: "development",
		Shopify: ShopifyConfig{
			APIVersion: "2024-01",
			RateLimit:  2,
		},
		GRPCAddr:         ":50051",
		HTTPAddr:         ":8080",
		ImageConcurrency: 1,
		RequestTimeout:   Duration{30 * time.Second},
	}
}

// Load builds the configuration. A missing .env file is not an error; a
// CONFIG_FILE that cannot be read or parsed is.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func loadToml(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Env = env("APP_ENV", c.Env)
	c.Shopify.Shop = env("SHOPIFY_SHOP", c.Shopify.Shop)
	c.Shopify.AccessToken = env("SHOPIFY_ACCESS_TOKEN", c.Shopify.AccessToken)
	c.Shopify.APIVersion = env("SHOPIFY_API_VERSION", c.Shopify.APIVersion)
	c.GRPCAddr = env("GRPC_ADDR", c.GRPCAddr)
	c.HTTPAddr = env("HTTP_ADDR", c.HTTPAddr)
	c.SpannerDatabase = env("SPANNER_DATABASE", c.SpannerDatabase)

	if v := os.Getenv("SHOPIFY_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SHOPIFY_RATE_LIMIT: %w", err)
		}
		c.Shopify.RateLimit = f
	}
	if v := os.Getenv("IMAGE_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("IMAGE_CONCURRENCY: %w", err)
		}
		c.ImageConcurrency = n
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		c.RequestTimeout = Duration{d}
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Shopify.Shop) == "" {
		errs = append(errs, errors.New("shopify shop is required"))
	}
	if strings.TrimSpace(c.Shopify.AccessToken) == "" {
		errs = append(errs, errors.New("shopify access token is required"))
	}
	if c.Shopify.RateLimit < 0 {
		errs = append(errs, errors.New("shopify rate limit cannot be negative"))
	}
	if c.ImageConcurrency < 1 {
		errs = append(errs, fmt.Errorf("image concurrency must be at least 1, got %d", c.ImageConcurrency))
	}
	if c.RequestTimeout.Duration <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	return errors.Join(errs...)
}

// JournalEnabled reports whether runs are persisted to Spanner.
func (c Config) JournalEnabled() bool {
	return c.SpannerDatabase != ""
}

func env(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
