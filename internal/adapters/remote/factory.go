package remote

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/config"
)

// Factory creates remote classifier instances
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for remote classifiers
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates a new remote classifier
func (f *Factory) CreateClassifier() (*Classifier, error) {
	httpCfg := f.cfg.GetHTTP()

	timeout, err := time.ParseDuration(httpCfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid http timeout: %w", err)
	}

	return NewClassifier(httpCfg.Endpoint, httpCfg.APIKey, timeout, f.logger), nil
}
