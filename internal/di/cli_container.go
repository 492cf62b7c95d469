package di

import (
	"flag"
	"strings"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/config"
	"github.com/baitblock/baitblock/internal/extractor"
	"github.com/baitblock/baitblock/internal/factory"
	"github.com/baitblock/baitblock/internal/intel"
	"github.com/baitblock/baitblock/internal/logging"
	"github.com/baitblock/baitblock/internal/ports"
	"github.com/baitblock/baitblock/internal/profile"
	"github.com/baitblock/baitblock/internal/scan"
	"github.com/baitblock/baitblock/internal/scancache"
	"github.com/baitblock/baitblock/internal/utils"
	"github.com/baitblock/baitblock/internal/whitelist"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Classifier provider flags
	Provider    string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int

	// HTTP scorer flags
	HTTPEndpoint string
	HTTPAPIKey   string
	HTTPTimeout  string

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Scan flags
	UserID         string
	ShareThreshold float64
	Whitelist      string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Classifier provider flags
	flag.StringVar(&flags.Provider, "provider", "http", "Classifier provider (http, bedrock, gemini, openai)")
	flag.IntVar(&flags.MaxTokens, "max-tokens", 1000, "Maximum tokens for model response")
	flag.Float64Var(&flags.Temperature, "temperature", 0.1, "Temperature for model generation")
	flag.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for model generation")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 4096, "Maximum message body size to send to the classifier")

	// HTTP scorer flags
	flag.StringVar(&flags.HTTPEndpoint, "endpoint", "", "Remote scorer endpoint URL")
	flag.StringVar(&flags.HTTPAPIKey, "api-key", "", "API key for the remote scorer")
	flag.StringVar(&flags.HTTPTimeout, "timeout", "15s", "Request timeout for the remote scorer")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4", "OpenAI model name")

	// Scan flags
	flag.StringVar(&flags.UserID, "user", "cli", "User ID whose profile adjusts the score")
	flag.Float64Var(&flags.ShareThreshold, "share-threshold", 70.0, "Personalized score at which threats are shared with the organization")
	flag.StringVar(&flags.Whitelist, "whitelist", "", "Comma-separated list of whitelisted sender domains")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input mail file (use stdin if not specified)")
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
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (ports.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register persistent store (flag-built configs pin this to memory)
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.StoreFactory) (ports.KVStore, error) {
		return f.CreateStore()
	}); err != nil {
		return nil, err
	}

	// Register profile manager
	if err := container.Provide(profile.NewManager); err != nil {
		return nil, err
	}

	// Register organization intel hub
	if err := container.Provide(intel.NewHub); err != nil {
		return nil, err
	}

	// Register whitelist checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		return whitelist.NewChecker(cfg.GetScan().WhitelistedDomains, logger)
	}); err != nil {
		return nil, err
	}

	// Register mail extractor
	if err := container.Provide(func(logger *zap.Logger) ports.Extractor {
		return extractor.NewMailExtractor(logger)
	}); err != nil {
		return nil, err
	}

	// Register scan service
	if err := container.Provide(func(
		classifier ports.Classifier,
		profiles *profile.Manager,
		hub *intel.Hub,
		checker *whitelist.Checker,
		logger *zap.Logger,
		cfg *config.Config,
	) *scan.Service {
		cache := scancache.New(cfg.GetScan().CacheSize)
		return scan.NewService(classifier, profiles, hub, cache, checker, logger, cfg.GetScan().ShareThreshold)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("classifier.provider", flags.Provider)

	switch flags.Provider {
	case "http":
		v.Set("http.endpoint", flags.HTTPEndpoint)
		v.Set("http.api_key", flags.HTTPAPIKey)
		v.Set("http.timeout", flags.HTTPTimeout)
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
		v.Set("bedrock.top_p", flags.TopP)
		v.Set("bedrock.max_body_size", flags.MaxBodySize)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
		v.Set("gemini.top_p", flags.TopP)
		v.Set("gemini.max_body_size", flags.MaxBodySize)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
		v.Set("openai.max_body_size", flags.MaxBodySize)
	}

	v.Set("store.type", "memory")
	v.Set("scan.cache_size", 50)
	v.Set("scan.share_threshold", flags.ShareThreshold)

	if flags.Whitelist != "" {
		v.Set("scan.whitelisted_domains", splitDomains(flags.Whitelist))
	} else {
		v.Set("scan.whitelisted_domains", []string{})
	}

	return config.NewFromViper(v)
}

func splitDomains(raw string) []string {
	parts := strings.Split(raw, ",")
	domains := make([]string, 0, len(parts))
	for _, d := range parts {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}
