// Package whitelist short-circuits scans for senders whose domain the
// deployment trusts.
package whitelist

import (
	"strings"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/fingerprint"
)

// Checker tests sender addresses against a fixed set of trusted domains.
type Checker struct {
	domains []string
	logger  *zap.Logger
}

// NewChecker creates a new whitelist checker. Domains are normalized to
// lower case.
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	normalized := make([]string, len(domains))
	for i, domain := range domains {
		normalized[i] = strings.ToLower(strings.TrimSpace(domain))
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized whitelist checker", zap.Strings("domains", normalized))
	}

	return &Checker{
		domains: normalized,
		logger:  logger,
	}
}

// IsWhitelisted reports whether the sender's domain is trusted. Sender
// addresses may carry display names and angle brackets; domain
// extraction follows the same rules as signature matching.
func (c *Checker) IsWhitelisted(from string) bool {
	if len(c.domains) == 0 {
		return false
	}

	domain := fingerprint.ExtractDomain(from)
	if domain == "" {
		return false
	}

	for _, trusted := range c.domains {
		if trusted == domain {
			if c.logger != nil {
				c.logger.Debug("Sender domain is whitelisted",
					zap.String("domain", domain),
					zap.String("from", from))
			}
			return true
		}
	}

	return false
}
