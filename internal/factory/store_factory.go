package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/davidferra13/chefleads/internal/adapters/store"
	"github.com/davidferra13/chefleads/internal/config"
	"github.com/davidferra13/chefleads/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates lead repositories based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateLeadRepository creates a lead repository based on the configuration
func (f *StoreFactory) CreateLeadRepository() (core.LeadRepository, error) {
	storeCfg := f.cfg.GetStore()

	switch storeCfg.Type {
	case "memory":
		return store.NewMemoryStore(storeCfg.MaxLeads, f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeCfg.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(storeCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
}
