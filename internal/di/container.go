package di

import (
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
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
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

	// Register persistent store
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

	// Register scan result cache
	if err := container.Provide(func(cfg *config.Config) *scancache.Cache {
		return scancache.New(cfg.GetScan().CacheSize)
	}); err != nil {
		return nil, err
	}

	// Register whitelist checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		whitelistedDomains := cfg.GetScan().WhitelistedDomains
		if len(whitelistedDomains) > 0 {
			logger.Info("Loaded whitelisted domains", zap.Strings("domains", whitelistedDomains))
		}
		return whitelist.NewChecker(whitelistedDomains, logger)
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
		cache *scancache.Cache,
		checker *whitelist.Checker,
		logger *zap.Logger,
		cfg *config.Config,
	) *scan.Service {
		return scan.NewService(classifier, profiles, hub, cache, checker, logger, cfg.GetScan().ShareThreshold)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
