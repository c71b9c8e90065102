package factory

import (
	"fmt"

	"github.com/davidferra13/chefleads/internal/config"
	"github.com/davidferra13/chefleads/internal/core"
	"go.uber.org/zap"
)

// EngineFactory creates scoring engines from configuration
type EngineFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEngineFactory creates a new engine factory
func NewEngineFactory(cfg *config.Config, logger *zap.Logger) *EngineFactory {
	return &EngineFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEngine assembles and validates the scoring engine. Configuration
// problems are fatal here, before any message is accepted.
func (f *EngineFactory) CreateEngine() (*core.Engine, error) {
	scoring, err := f.cfg.GetScoring()
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring configuration: %w", err)
	}

	engine, err := core.NewEngine(scoring)
	if err != nil {
		return nil, fmt.Errorf("invalid scoring configuration: %w", err)
	}

	f.logger.Info("Scoring engine ready",
		zap.Int("categories", len(scoring.Categories)),
		zap.Int("bonus_rules", len(scoring.BonusRules)),
		zap.Float64("forward_threshold", scoring.ForwardThreshold))

	return engine, nil
}
