package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/adapters/bedrock"
	"github.com/baitblock/baitblock/internal/adapters/gemini"
	"github.com/baitblock/baitblock/internal/adapters/openai"
	"github.com/baitblock/baitblock/internal/adapters/remote"
	"github.com/baitblock/baitblock/internal/config"
	"github.com/baitblock/baitblock/internal/ports"
	"github.com/baitblock/baitblock/internal/utils"
)

// ClassifierFactory creates classifiers
type ClassifierFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a new classifier based on the configuration
func (f *ClassifierFactory) CreateClassifier() (ports.Classifier, error) {
	classifierCfg := f.cfg.GetClassifier()

	switch classifierCfg.Provider {
	case "http":
		factory := remote.NewFactory(f.cfg, f.logger)
		return factory.CreateClassifier()
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateClassifier()
	case "gemini":
		factory := gemini.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateClassifier()
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateClassifier()
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", classifierCfg.Provider)
	}
}
