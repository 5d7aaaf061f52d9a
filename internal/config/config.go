// Package config loads server configuration from defaults, an optional YAML
// file, and environment overrides, in that order.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// CatalogSourceStatic serves the catalog embedded in the binary.
	CatalogSourceStatic = "static"
	// CatalogSourceMySQL loads the catalog from MySQL once at startup.
	CatalogSourceMySQL = "mysql"
)

// Config holds all storefront server configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Redis   RedisConfig   `yaml:"redis"`
	Catalog CatalogConfig `yaml:"catalog"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
	// CartKey is the fixed key the cart is persisted under.
	CartKey string `yaml:"cart_key"`
}

type CatalogConfig struct {
	Source   string `yaml:"source"` // static or mysql
	MySQLDSN string `yaml:"mysql_dsn"`
}

// Default returns the configuration used when no file or env overrides are
// present.
func Default() Config {
	return Config{
		HTTP:  HTTPConfig{Addr: ":8080"},
		Redis: RedisConfig{Addr: "localhost:6379", CartKey: "marketplace:cart"},
		Catalog: CatalogConfig{
			Source:   CatalogSourceStatic,
			MySQLDSN: "root:root@tcp(localhost:3306)/marketplace?parseTime=true",
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment overrides apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	overlay := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	overlay(&c.HTTP.Addr, "MARKETPLACE_HTTP_ADDR")
	overlay(&c.Redis.Addr, "MARKETPLACE_REDIS_ADDR")
	overlay(&c.Redis.CartKey, "MARKETPLACE_CART_KEY")
	overlay(&c.Catalog.Source, "MARKETPLACE_CATALOG_SOURCE")
	overlay(&c.Catalog.MySQLDSN, "MARKETPLACE_MYSQL_DSN")
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogSourceStatic:
	case CatalogSourceMySQL:
		if c.Catalog.MySQLDSN == "" {
			return fmt.Errorf("catalog source %q requires mysql_dsn", c.Catalog.Source)
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}
	if c.Redis.CartKey == "" {
		return fmt.Errorf("redis cart_key must not be empty")
	}
	return nil
}
