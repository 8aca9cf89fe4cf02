package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Session store backends
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	GraphQL struct {
		URL     string `yaml:"url" env:"GRAPHQL_URL"`
		Timeout string `yaml:"timeout" env:"GRAPHQL_TIMEOUT"`
	} `yaml:"graphql"`

	Session struct {
		Store      string `yaml:"store" env:"SESSION_STORE"`
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		TTL        string `yaml:"ttl" env:"SESSION_TTL"`
		Secure     bool   `yaml:"secure" env:"SESSION_SECURE"`
	} `yaml:"session"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	CORS struct {
		AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// legacyGraphQLURLEnv is the variable the browser client used for the endpoint.
const legacyGraphQLURLEnv = "NEXT_PUBLIC_GRAPHQL_URL"

// LoadConfig loads configuration from a file, a .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Values already present in the environment win over .env
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if config.GraphQL.URL == "" {
		config.GraphQL.URL = GetEnv(legacyGraphQLURLEnv, "")
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.GraphQL.Timeout = "15s"

	config.Session.Store = SessionStoreMemory
	config.Session.CookieName = "sa_session"
	config.Session.TTL = "24h"

	config.Redis.Addr = "localhost:6379"

	config.CORS.AllowedOrigins = "http://localhost:3000"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.GraphQL.URL == "" {
		return fmt.Errorf("graphql url is required (set GRAPHQL_URL)")
	}

	u, err := url.Parse(config.GraphQL.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("graphql url %q is not an absolute URL", config.GraphQL.URL)
	}

	if _, err := time.ParseDuration(config.GraphQL.Timeout); err != nil {
		return fmt.Errorf("invalid graphql timeout format: %w", err)
	}

	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session ttl format: %w", err)
	}

	switch config.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis session store")
		}
	default:
		return fmt.Errorf("unknown session store %q", config.Session.Store)
	}

	if config.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	return nil
}

// AllowedOrigins splits the comma separated CORS origin list
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORS.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
