package ports

import (
	"context"

	"github.com/davidferra13/chefleads/internal/core"
)

// MessageIngest defines the interface for message ingestion front-ends
type MessageIngest interface {
	// ProcessMessage scores a single message and returns the evaluation
	ProcessMessage(ctx context.Context, msg core.InboundMessage) (*core.EvaluationResult, error)

	// Start starts the ingestion service
	Start() error

	// Stop stops the ingestion service
	Stop() error
}
