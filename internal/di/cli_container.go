package di

import (
	"flag"
	"strings"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidferra13/chefleads/internal/adapters/ingest"
	"github.com/davidferra13/chefleads/internal/blocklist"
	"github.com/davidferra13/chefleads/internal/config"
	"github.com/davidferra13/chefleads/internal/core"
	"github.com/davidferra13/chefleads/internal/factory"
	"github.com/davidferra13/chefleads/internal/logging"
	"github.com/davidferra13/chefleads/internal/ports"
	"github.com/davidferra13/chefleads/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Scoring flags
	LowThreshold     float64
	MediumThreshold  float64
	HighThreshold    float64
	ForwardThreshold float64
	LengthBonus      float64
	BlockedSenders   string

	// Input flags
	InputFile   string
	MaxBodySize int
	Verbose     bool
	JSONLog     bool
	ConfigFile  string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Scoring flags
	flag.Float64Var(&flags.LowThreshold, "low", 0.2, "Low confidence threshold")
	flag.Float64Var(&flags.MediumThreshold, "medium", 0.4, "Medium confidence threshold")
	flag.Float64Var(&flags.HighThreshold, "high", 0.65, "High confidence threshold")
	flag.Float64Var(&flags.ForwardThreshold, "threshold", 0.4, "Minimum score for a message to count as a lead")
	flag.Float64Var(&flags.LengthBonus, "length-bonus", 0.1, "Weight of the message length bonus")
	flag.StringVar(&flags.BlockedSenders, "blocked", "", "Comma-separated list of blocked sender fragments")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input message file (use stdin if not specified)")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 4096, "Maximum message body size to score")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewEngineFactory); err != nil {
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

	// Register sender blocklist
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) core.SenderBlocklist {
		if flags.BlockedSenders == "" {
			return blocklist.NewChecker(blocklist.DefaultFragments, logger)
		}
		return blocklist.NewChecker(strings.Split(flags.BlockedSenders, ","), logger)
	}); err != nil {
		return nil, err
	}

	// Register lead service with no store and no notifier
	if err := container.Provide(func(
		engine *core.Engine,
		logger *zap.Logger,
		senderBlocklist core.SenderBlocklist,
	) *core.LeadService {
		return core.NewLeadService(
			engine,
			nil, // No store for CLI
			nil, // No notifier for CLI
			logger,
			senderBlocklist,
		)
	}); err != nil {
		return nil, err
	}

	// Register message ingest
	if err := container.Provide(func(
		service *core.LeadService,
		logger *zap.Logger,
		flags *CLIFlags,
		textProcessor *utils.TextProcessor,
	) (ports.MessageIngest, error) {
		return ingest.NewCLIIngest(service, logger, flags.Verbose, textProcessor, flags.MaxBodySize)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("server.ingest_type", "cli")
	v.Set("server.max_body_size", flags.MaxBodySize)
	v.Set("cli.verbose", flags.Verbose)

	// Set scoring thresholds
	v.Set("scoring.thresholds.low", flags.LowThreshold)
	v.Set("scoring.thresholds.medium", flags.MediumThreshold)
	v.Set("scoring.thresholds.high", flags.HighThreshold)
	v.Set("scoring.forward_threshold", flags.ForwardThreshold)
	v.Set("scoring.length_bonus_weight", flags.LengthBonus)

	return config.NewFromViper(v)
}
