package config

import (
	"fmt"

	"github.com/davidferra13/chefleads/internal/core"
)

// ServerConfig represents the configuration for the ingest server
type ServerConfig struct {
	IngestType    string
	ListenAddress string
	RateLimit     int
	MaxBodySize   int
}

// SMTPConfig represents the configuration for the SMTP ingest adapter
type SMTPConfig struct {
	ListenAddress string
	Domain        string
}

// StoreConfig represents the configuration for the lead store
type StoreConfig struct {
	Type       string
	MaxLeads   int
	SQLitePath string
	MySQLDSN   string
}

// DiscordConfig represents the configuration for the Discord notifier
type DiscordConfig struct {
	Enabled    bool
	WebhookURL string
}

// GetServer returns the ingest server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		IngestType:    c.GetString("server.ingest_type"),
		ListenAddress: c.GetString("server.listen_address"),
		RateLimit:     c.GetInt("server.rate_limit"),
		MaxBodySize:   c.GetInt("server.max_body_size"),
	}
}

// GetSMTP returns the SMTP ingest configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		ListenAddress: c.GetString("smtp.listen_address"),
		Domain:        c.GetString("smtp.domain"),
	}
}

// GetStore returns the lead store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		MaxLeads:   c.GetInt("store.max_leads"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}

// GetDiscord returns the Discord notifier configuration
func (c *Config) GetDiscord() DiscordConfig {
	return DiscordConfig{
		Enabled:    c.GetBool("discord.enabled"),
		WebhookURL: c.GetString("discord.webhook_url"),
	}
}

// categorySpec mirrors the YAML shape of a keyword category override
type categorySpec struct {
	Name   string   `mapstructure:"name"`
	Terms  []string `mapstructure:"terms"`
	Weight float64  `mapstructure:"weight"`
}

// bonusSpec mirrors the YAML shape of a co-occurrence bonus override
type bonusSpec struct {
	Categories []string `mapstructure:"categories"`
	Bonus      float64  `mapstructure:"bonus"`
}

// GetScoring assembles the scoring configuration. The built-in keyword
// categories, spam phrases and bonus rules apply unless the config file
// overrides them; thresholds and bonus weights always come from viper so
// they can be tuned via environment variables.
func (c *Config) GetScoring() (*core.ScoringConfig, error) {
	cfg := core.DefaultScoringConfig()

	cfg.Thresholds = core.Thresholds{
		Low:    c.GetFloat64("scoring.thresholds.low"),
		Medium: c.GetFloat64("scoring.thresholds.medium"),
		High:   c.GetFloat64("scoring.thresholds.high"),
	}
	cfg.ForwardThreshold = c.GetFloat64("scoring.forward_threshold")
	cfg.LengthBonusWeight = c.GetFloat64("scoring.length_bonus_weight")

	if c.v.IsSet("scoring.categories") {
		var specs []categorySpec
		if err := c.v.UnmarshalKey("scoring.categories", &specs); err != nil {
			return nil, fmt.Errorf("invalid scoring.categories: %w", err)
		}
		categories := make([]core.KeywordCategory, len(specs))
		for i, spec := range specs {
			categories[i] = core.KeywordCategory{
				Name:   spec.Name,
				Terms:  spec.Terms,
				Weight: spec.Weight,
			}
		}
		cfg.Categories = categories
	}

	if c.v.IsSet("scoring.spam_terms") {
		cfg.SpamTerms = c.GetStringSlice("scoring.spam_terms")
	}

	if c.v.IsSet("scoring.bonus_rules") {
		var specs []bonusSpec
		if err := c.v.UnmarshalKey("scoring.bonus_rules", &specs); err != nil {
			return nil, fmt.Errorf("invalid scoring.bonus_rules: %w", err)
		}
		rules := make([]core.BonusRule, len(specs))
		for i, spec := range specs {
			rules[i] = core.BonusRule{
				RequiredCategories: spec.Categories,
				Bonus:              spec.Bonus,
			}
		}
		cfg.BonusRules = rules
	}

	return cfg, nil
}
