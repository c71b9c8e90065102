package factory

import (
	"fmt"
	"time"

	"github.com/davidferra13/chefleads/internal/adapters/notify"
	"github.com/davidferra13/chefleads/internal/config"
	"github.com/davidferra13/chefleads/internal/core"
	"go.uber.org/zap"
)

// NotifierFactory creates lead notifiers based on configuration
type NotifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewNotifierFactory creates a new notifier factory
func NewNotifierFactory(cfg *config.Config, logger *zap.Logger) *NotifierFactory {
	return &NotifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateLeadNotifier creates a lead notifier based on the configuration.
// Returns nil when notifications are disabled; the service treats a nil
// notifier as "log only".
func (f *NotifierFactory) CreateLeadNotifier() (core.LeadNotifier, error) {
	discord := f.cfg.GetDiscord()
	if !discord.Enabled {
		f.logger.Info("Lead notifications disabled")
		return nil, nil
	}

	timeout, err := f.cfg.GetDuration("discord.timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid discord timeout: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return notify.NewDiscordNotifier(discord.WebhookURL, timeout, f.logger)
}
