package blocklist

import (
	"strings"

	"go.uber.org/zap"
)

// DefaultFragments are sender fragments that never represent a real
// inquiry: automated mailers, notification addresses and known noise.
var DefaultFragments = []string{
	"realtor.com",
	"applets",
	"tiktok",
	"no-reply",
	"noreply",
	"notifications",
	"mailer-daemon",
	"auto-confirm",
	"auto-reply",
}

// Checker provides functionality to check senders against a blocklist
type Checker struct {
	fragments []string
	logger    *zap.Logger
}

// NewChecker creates a new blocklist checker
func NewChecker(fragments []string, logger *zap.Logger) *Checker {
	normalized := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.ToLower(strings.TrimSpace(fragment))
		if fragment != "" {
			normalized = append(normalized, fragment)
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized sender blocklist", zap.Strings("fragments", normalized))
	}

	return &Checker{
		fragments: normalized,
		logger:    logger,
	}
}

// IsBlocked checks whether the sender matches any blocked fragment
func (c *Checker) IsBlocked(sender string) bool {
	lower := strings.ToLower(sender)
	for _, fragment := range c.fragments {
		if strings.Contains(lower, fragment) {
			if c.logger != nil {
				c.logger.Debug("Sender is blocked",
					zap.String("sender", sender),
					zap.String("fragment", fragment))
			}
			return true
		}
	}
	return false
}

// Fragments returns the normalized blocklist fragments
func (c *Checker) Fragments() []string {
	return c.fragments
}
