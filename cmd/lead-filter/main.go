package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/davidferra13/chefleads/internal/core"
	"github.com/davidferra13/chefleads/internal/di"
	"github.com/davidferra13/chefleads/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	messageIngest ports.MessageIngest,
	repo core.LeadRepository,
) error {
	defer logger.Sync()

	// Start the ingest front-end
	if err := messageIngest.Start(); err != nil {
		logger.Fatal("Failed to start message ingest", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := messageIngest.Stop(); err != nil {
		logger.Error("Failed to stop message ingest", zap.Error(err))
	}

	// Close the lead store if it holds resources
	if closer, ok := repo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close lead store", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
