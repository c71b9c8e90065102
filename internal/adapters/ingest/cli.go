package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/davidferra13/chefleads/internal/core"
	"github.com/davidferra13/chefleads/internal/utils"
)

// CLIIngest scores a single message and prints the evaluation
type CLIIngest struct {
	service     *core.LeadService
	logger      *zap.Logger
	verbose     bool
	textProc    *utils.TextProcessor
	maxBodySize int
}

// NewCLIIngest creates a new CLI ingest adapter
func NewCLIIngest(
	service *core.LeadService,
	logger *zap.Logger,
	verbose bool,
	textProc *utils.TextProcessor,
	maxBodySize int,
) (*CLIIngest, error) {
	return &CLIIngest{
		service:     service,
		logger:      logger,
		verbose:     verbose,
		textProc:    textProc,
		maxBodySize: maxBodySize,
	}, nil
}

// ProcessMessage scores a message and displays the results
func (c *CLIIngest) ProcessMessage(ctx context.Context, msg core.InboundMessage) (*core.EvaluationResult, error) {
	msg.RawText = c.textProc.PrepareBody(msg.RawText, c.maxBodySize)

	if c.verbose {
		preview := msg.RawText
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\n=== Message ===\n%s\n", preview)
	}

	result, err := c.service.ProcessMessage(ctx, msg)
	if err != nil {
		c.logger.Error("Failed to process message", zap.Error(err))
		return nil, err
	}

	fmt.Printf("\n=== Evaluation ===\n")
	fmt.Printf("Sender:         %s\n", result.Sender)
	fmt.Printf("Score:          %.2f\n", result.Score)
	fmt.Printf("Classification: %s\n", result.Classification)
	fmt.Printf("Lead:           %t\n", result.ShouldForward)
	if result.FilterReason != "" {
		fmt.Printf("Filter reason:  %s\n", result.FilterReason)
	}
	if len(result.MatchedKeywords) > 0 {
		fmt.Printf("Keywords:       %s\n", strings.Join(result.MatchedKeywords, ", "))
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode evaluation: %w", err)
	}
	fmt.Printf("\n%s\n", encoded)

	return result, nil
}

// Start is a no-op for the CLI adapter
func (c *CLIIngest) Start() error {
	return nil
}

// Stop is a no-op for the CLI adapter
func (c *CLIIngest) Stop() error {
	return nil
}
