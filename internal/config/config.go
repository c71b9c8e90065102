package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/chefleads/")
	v.AddConfigPath("$HOME/.chefleads")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("CHEFLEADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.ingest_type", "webhook")
	v.SetDefault("server.listen_address", "0.0.0.0:3005")
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("server.rate_window", "1m")
	v.SetDefault("server.max_body_size", 4096)

	// SMTP ingest defaults
	v.SetDefault("smtp.listen_address", "0.0.0.0:10025")
	v.SetDefault("smtp.domain", "localhost")

	// Scoring defaults
	v.SetDefault("scoring.thresholds.low", 0.2)
	v.SetDefault("scoring.thresholds.medium", 0.4)
	v.SetDefault("scoring.thresholds.high", 0.65)
	v.SetDefault("scoring.forward_threshold", 0.4)
	v.SetDefault("scoring.length_bonus_weight", 0.1)
	v.SetDefault("scoring.blocked_senders", []string{})

	// Dedup defaults
	v.SetDefault("dedup.capacity", 1000)

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.max_leads", 200)
	v.SetDefault("store.sqlite_path", "/data/leads.db")
	v.SetDefault("store.mysql_dsn", "user:password@tcp(localhost:3306)/chefleads")

	// Discord defaults
	v.SetDefault("discord.enabled", false)
	v.SetDefault("discord.webhook_url", "")
	v.SetDefault("discord.timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
