package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidferra13/chefleads/internal/blocklist"
	"github.com/davidferra13/chefleads/internal/config"
	"github.com/davidferra13/chefleads/internal/core"
	"github.com/davidferra13/chefleads/internal/factory"
	"github.com/davidferra13/chefleads/internal/logging"
	"github.com/davidferra13/chefleads/internal/ports"
	"github.com/davidferra13/chefleads/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewEngineFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewNotifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewIngestFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register scoring engine
	if err := container.Provide(func(f *factory.EngineFactory) (*core.Engine, error) {
		return f.CreateEngine()
	}); err != nil {
		return nil, err
	}

	// Register lead repository
	if err := container.Provide(func(f *factory.StoreFactory) (core.LeadRepository, error) {
		return f.CreateLeadRepository()
	}); err != nil {
		return nil, err
	}

	// Register lead notifier
	if err := container.Provide(func(f *factory.NotifierFactory) (core.LeadNotifier, error) {
		return f.CreateLeadNotifier()
	}); err != nil {
		return nil, err
	}

	// Register sender blocklist
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.SenderBlocklist {
		fragments := cfg.GetStringSlice("scoring.blocked_senders")
		if len(fragments) == 0 {
			fragments = blocklist.DefaultFragments
		}
		return blocklist.NewChecker(fragments, logger)
	}); err != nil {
		return nil, err
	}

	// Register lead service
	if err := container.Provide(core.NewLeadService); err != nil {
		return nil, err
	}

	// Register message ingest
	if err := container.Provide(func(f *factory.IngestFactory) (ports.MessageIngest, error) {
		return f.CreateMessageIngest()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
