// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Every field can also be overridden by its env:"..." variable, which is
// how deployments point the service at a different backend.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
//
// env-required:"true" means the app refuses to start if that value is
// missing; env-default supplies the value used when neither the file nor
// the environment sets one.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	HTTPServer   `yaml:"http_server"`
	Backend      Upstream     `yaml:"backend"       env-prefix:"BACKEND_"`
	ViaCEP       Upstream     `yaml:"viacep"        env-prefix:"VIACEP_"`
	Geocoding    Upstream     `yaml:"geocoding"     env-prefix:"GEOCODING_"`
	AddressCache AddressCache `yaml:"address_cache"`
	Session      Session      `yaml:"session"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// Upstream is an external HTTP service. An empty BaseURL selects the
// client package's public default.
type Upstream struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
}

// AddressCache configures the sqlite postal-code cache.
type AddressCache struct {
	// Path is the sqlite file. Empty disables the cache.
	Path string `yaml:"path" env:"ADDRESS_CACHE_PATH"`
}

// Session configures the cookie that carries the backend user id.
type Session struct {
	CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"userId"`
	// MaxAge is in seconds; the default is 30 days.
	MaxAge int  `yaml:"max_age" env:"SESSION_MAX_AGE" env-default:"2592000"`
	Secure bool `yaml:"secure"  env:"SESSION_SECURE"  env-default:"false"`
}

// Load reads the YAML file at path, applies environment overrides and
// checks required values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH or --config and
// loads it. It exits the process on any failure, so if it returns the
// config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}
	return cfg
}
