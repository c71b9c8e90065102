package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/davidferra13/chefleads/internal/core"
	"go.uber.org/zap"
)

// Embed accent colors matching the dashboard's confidence coloring
const (
	colorHigh   = 0x2ecc71
	colorMedium = 0xf39c12
	colorLow    = 0x95a5a6
)

// DiscordNotifier posts detected leads to a Discord webhook
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
}

// NewDiscordNotifier creates a new Discord webhook notifier
func NewDiscordNotifier(webhookURL string, timeout time.Duration, logger *zap.Logger) (*DiscordNotifier, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("discord webhook URL is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields"`
	Timestamp   string       `json:"timestamp"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Notify announces a newly detected lead
func (n *DiscordNotifier) Notify(ctx context.Context, lead *core.Lead) error {
	keywords := strings.Join(lead.MatchedKeywords, ", ")
	if keywords == "" {
		keywords = "none"
	}

	payload := webhookPayload{
		Embeds: []embed{
			{
				Title:       "New Chef Lead",
				Description: lead.Content,
				Color:       embedColor(lead.Classification),
				Fields: []embedField{
					{Name: "From", Value: lead.Sender, Inline: true},
					{Name: "Confidence", Value: fmt.Sprintf("%d%% (%s)", int(lead.Score*100), lead.Classification), Inline: true},
					{Name: "Keywords", Value: keywords},
				},
				Timestamp: lead.ReceivedAt.UTC().Format(time.RFC3339),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to Discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	n.logger.Debug("Posted lead to Discord", zap.String("lead_id", lead.ID))
	return nil
}

// embedColor maps a classification onto the embed accent color
func embedColor(c core.Classification) int {
	switch c {
	case core.ClassificationHigh:
		return colorHigh
	case core.ClassificationMedium:
		return colorMedium
	default:
		return colorLow
	}
}
