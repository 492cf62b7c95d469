// Package scan wires the scoring pipeline together: cache lookup,
// remote classification, personalization, signature matching and
// collaborative sharing.
package scan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/core"
	"github.com/baitblock/baitblock/internal/department"
	"github.com/baitblock/baitblock/internal/intel"
	"github.com/baitblock/baitblock/internal/links"
	"github.com/baitblock/baitblock/internal/ports"
	"github.com/baitblock/baitblock/internal/profile"
	"github.com/baitblock/baitblock/internal/scancache"
	"github.com/baitblock/baitblock/internal/whitelist"
)

// Service scores messages for one session. All collaborators are
// explicit constructor arguments; nothing is reached through globals.
type Service struct {
	classifier     ports.Classifier
	profiles       *profile.Manager
	hub            *intel.Hub
	cache          *scancache.Cache
	whitelist      *whitelist.Checker
	logger         *zap.Logger
	shareThreshold float64
}

// NewService creates a scan service. shareThreshold is the
// personalized score at or above which a signature is shared with the
// user's organization.
func NewService(
	classifier ports.Classifier,
	profiles *profile.Manager,
	hub *intel.Hub,
	cache *scancache.Cache,
	whitelistChecker *whitelist.Checker,
	logger *zap.Logger,
	shareThreshold float64,
) *Service {
	return &Service{
		classifier:     classifier,
		profiles:       profiles,
		hub:            hub,
		cache:          cache,
		whitelist:      whitelistChecker,
		logger:         logger,
		shareThreshold: shareThreshold,
	}
}

// Scan runs the full scoring pipeline for a message. It never returns
// an error: classifier failures surface on ScanResult.Error and store
// failures degrade to defaults, so the caller always gets a usable
// result.
func (s *Service) Scan(ctx context.Context, msg *core.Message, userID string) *core.ScanResult {
	key := scancache.Key(msg)
	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("Scan cache hit", zap.String("key", key))
		return cached
	}

	userProfile := s.profiles.Load(ctx, userID)

	if s.whitelist != nil && s.whitelist.IsWhitelisted(msg.Headers.From) {
		s.logger.Info("Skipping scan for whitelisted sender",
			zap.String("from", msg.Headers.From))
		return &core.ScanResult{
			Label:      "safe",
			Reasons:    []string{"Sender domain is whitelisted"},
			AnalyzedAt: time.Now(),
			Source:     "whitelist",
		}
	}

	foundLinks := links.Extract(msg.HTML, msg.Text)

	classification, err := s.classifier.Classify(ctx, msg.Text)
	if err != nil {
		s.logger.Error("Classifier unreachable", zap.Error(err))
		return &core.ScanResult{
			Label:      "unknown",
			Links:      foundLinks,
			Error:      "classifier offline",
			AnalyzedAt: time.Now(),
			Source:     "error",
		}
	}

	reasons := append([]string{}, classification.Reasons...)
	reasons = append(reasons, links.Reasons(foundLinks)...)

	rawScore := classification.Confidence * 100

	personalized := userProfile.PersonalizedScore(rawScore)
	personalized *= department.Multiplier(userProfile.Department, reasons)
	if personalized > 100 {
		personalized = 100
	}

	match := s.hub.Check(ctx, msg, userProfile.OrganizationID)

	if personalized >= s.shareThreshold {
		sig := intel.Generate(msg, intel.Analysis{Reasons: reasons, Score: rawScore})
		s.hub.Share(ctx, sig, userProfile.OrganizationID)
	}

	result := &core.ScanResult{
		Label:             classification.Label,
		RawConfidence:     classification.Confidence,
		RawScore:          rawScore,
		PersonalizedScore: personalized,
		Reasons:           reasons,
		Links:             foundLinks,
		LedgerMatch:       match,
		AnalyzedAt:        time.Now(),
		Source:            "classifier",
	}

	s.cache.Put(key, result)

	s.logger.Debug("Scan complete",
		zap.String("label", result.Label),
		zap.Float64("raw_score", rawScore),
		zap.Float64("personalized_score", personalized),
		zap.Bool("ledger_match", match != nil))

	return result
}

// RecordFeedback registers a user verdict on a reported threat and
// returns the re-adapted sensitivity level.
func (s *Service) RecordFeedback(ctx context.Context, userID, threatID string, isActualThreat bool, userAction string) float64 {
	userProfile := s.profiles.Load(ctx, userID)
	return s.profiles.RecordFeedback(ctx, userProfile, threatID, isActualThreat, userAction)
}

// OrganizationStats reports the ledger statistics for an organization,
// or nil when there is no organization id or no data.
func (s *Service) OrganizationStats(ctx context.Context, orgID string) *intel.OrgStats {
	return s.hub.Stats(ctx, orgID)
}
