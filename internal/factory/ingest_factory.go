package factory

import (
	"fmt"

	"github.com/davidferra13/chefleads/internal/adapters/ingest"
	"github.com/davidferra13/chefleads/internal/config"
	"github.com/davidferra13/chefleads/internal/core"
	"github.com/davidferra13/chefleads/internal/ports"
	"github.com/davidferra13/chefleads/internal/utils"
	"go.uber.org/zap"
)

// IngestFactory creates message ingest adapters based on configuration
type IngestFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	leadService   *core.LeadService
	repo          core.LeadRepository
	textProcessor *utils.TextProcessor
}

// NewIngestFactory creates a new ingest factory
func NewIngestFactory(
	cfg *config.Config,
	logger *zap.Logger,
	leadService *core.LeadService,
	repo core.LeadRepository,
	textProcessor *utils.TextProcessor,
) *IngestFactory {
	return &IngestFactory{
		cfg:           cfg,
		logger:        logger,
		leadService:   leadService,
		repo:          repo,
		textProcessor: textProcessor,
	}
}

// CreateMessageIngest creates a message ingest adapter based on the configuration
func (f *IngestFactory) CreateMessageIngest() (ports.MessageIngest, error) {
	serverCfg := f.cfg.GetServer()

	switch serverCfg.IngestType {
	case "webhook":
		rateWindow, err := f.cfg.GetDuration("server.rate_window")
		if err != nil {
			return nil, fmt.Errorf("invalid rate window: %w", err)
		}
		return ingest.NewWebhookIngest(
			f.leadService,
			f.repo,
			f.logger,
			serverCfg.ListenAddress,
			serverCfg.RateLimit,
			rateWindow,
			f.cfg.GetInt("dedup.capacity"),
			f.textProcessor,
			serverCfg.MaxBodySize,
		), nil
	case "smtp":
		smtpCfg := f.cfg.GetSMTP()
		return ingest.NewSMTPIngest(
			f.leadService,
			f.logger,
			smtpCfg.ListenAddress,
			smtpCfg.Domain,
			f.textProcessor,
			serverCfg.MaxBodySize,
		), nil
	case "cli":
		return ingest.NewCLIIngest(
			f.leadService,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
			f.textProcessor,
			serverCfg.MaxBodySize,
		)
	default:
		return nil, fmt.Errorf("unsupported ingest type: %s", serverCfg.IngestType)
	}
}
