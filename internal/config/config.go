package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"carrental-client/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	API         APIConfig         `yaml:"api"`
	Session     SessionConfig     `yaml:"session"`
	Cache       CacheConfig       `yaml:"cache"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Log         LogConfig         `yaml:"log"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// ServerConfig contains the local front-end listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// APIConfig points at the car rental backend
type APIConfig struct {
	BaseURL         string `yaml:"base_url"`
	DefaultCurrency string `yaml:"default_currency"`
}

// SessionConfig holds the tokens issued by the identity provider.
// TokenSecret is only set for a local HMAC identity provider; when empty the
// tokens are decoded without signature verification.
type SessionConfig struct {
	AccessToken string `yaml:"access_token"`
	IDToken     string `yaml:"id_token"`
	TokenSecret string `yaml:"token_secret"`
}

// CacheConfig controls query cache freshness
type CacheConfig struct {
	StaleTimeSeconds int `yaml:"stale_time_seconds"`
	GCTimeSeconds    int `yaml:"gc_time_seconds"`
}

// PreferencesConfig selects where the theme preference is persisted
type PreferencesConfig struct {
	Type          string `yaml:"type"` // "file" or "redis"
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	PrefersDark   bool   `yaml:"prefers_dark"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	CollectGarbage     string `yaml:"collect_garbage"`
	CheckSessionExpiry string `yaml:"check_session_expiry"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Server.Port = port
		}
	}

	if val := os.Getenv("API_BASE_URL"); val != "" {
		c.API.BaseURL = val
	}
	if val := os.Getenv("DEFAULT_CURRENCY"); val != "" {
		c.API.DefaultCurrency = val
	}

	if val := os.Getenv("ACCESS_TOKEN"); val != "" {
		c.Session.AccessToken = val
	}
	if val := os.Getenv("ID_TOKEN"); val != "" {
		c.Session.IDToken = val
	}
	if val := os.Getenv("TOKEN_SECRET"); val != "" {
		c.Session.TokenSecret = val
	}

	if val := os.Getenv("PREFERENCES_TYPE"); val != "" {
		c.Preferences.Type = val
	}
	if val := os.Getenv("PREFERENCES_PATH"); val != "" {
		c.Preferences.Path = val
	}
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Preferences.RedisAddr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Preferences.RedisPassword = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5173
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8000"
	}
	if c.API.DefaultCurrency == "" {
		c.API.DefaultCurrency = string(domain.CurrencyUSD)
	}
	if c.Cache.GCTimeSeconds == 0 {
		c.Cache.GCTimeSeconds = 300
	}
	if c.Preferences.Type == "" {
		c.Preferences.Type = "file"
	}
	if c.Preferences.Path == "" {
		c.Preferences.Path = "preferences.json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Scheduler.CollectGarbage == "" {
		c.Scheduler.CollectGarbage = "0 * * * * *" // every minute
	}
	if c.Scheduler.CheckSessionExpiry == "" {
		c.Scheduler.CheckSessionExpiry = "30 */5 * * * *"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if !domain.Currency(c.API.DefaultCurrency).Valid() {
		return fmt.Errorf("unsupported default currency: %s", c.API.DefaultCurrency)
	}
	if c.Cache.StaleTimeSeconds < 0 || c.Cache.GCTimeSeconds < 0 {
		return fmt.Errorf("cache durations must not be negative")
	}
	switch c.Preferences.Type {
	case "file":
	case "redis":
		if c.Preferences.RedisAddr == "" {
			return fmt.Errorf("redis address is required for redis preferences")
		}
	default:
		return fmt.Errorf("unsupported preferences type: %s", c.Preferences.Type)
	}
	return nil
}

// GetServerAddress returns the local front-end listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// StaleTime is how long a fetched value counts as fresh
func (c *Config) StaleTime() time.Duration {
	return time.Duration(c.Cache.StaleTimeSeconds) * time.Second
}

// GCTime is how long an unobserved entry is kept
func (c *Config) GCTime() time.Duration {
	return time.Duration(c.Cache.GCTimeSeconds) * time.Second
}
