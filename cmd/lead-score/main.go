package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davidferra13/chefleads/internal/core"
	"github.com/davidferra13/chefleads/internal/di"
	"github.com/davidferra13/chefleads/internal/ports"
	"go.uber.org/zap"
)

// errFiltered signals that the message scored below the lead threshold
var errFiltered = errors.New("message filtered")

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		if errors.Is(err, errFiltered) {
			// Non-zero exit lets shell pipelines distinguish filtered
			// messages from detected leads
			os.Exit(1)
		}
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run reads one message and prints its evaluation
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	messageIngest ports.MessageIngest,
) error {
	defer logger.Sync()

	var reader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file %s: %w", flags.InputFile, err)
		}
		defer file.Close()
		reader = file
		logger.Info("Reading message from file", zap.String("file", flags.InputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := messageIngest.ProcessMessage(ctx, core.InboundMessage{
		RawText: string(raw),
	})
	if err != nil {
		return fmt.Errorf("failed to score message: %w", err)
	}

	if !result.ShouldForward {
		return errFiltered
	}
	return nil
}
