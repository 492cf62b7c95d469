package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/ports"
)

var highRiskRoles = []string{"ceo", "cfo", "finance", "hr", "it-admin", "executive"}
var highRiskDepartments = []string{"finance", "hr", "executive"}
var mediumRiskRoles = []string{"manager", "supervisor", "accountant"}

// Manager loads, adapts and persists user profiles. One instance is
// owned by the host process and handed to whatever needs it; profiles
// are never reached through ambient global state.
type Manager struct {
	store  ports.KVStore
	logger *zap.Logger
}

// NewManager creates a new profile manager backed by the given store.
func NewManager(store ports.KVStore, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
	}
}

func profileKey(userID string) string {
	return "user_profile_" + userID
}

// Load fetches the user's profile, falling back to defaults when the
// store fails or has no entry, and re-derives sensitivity before
// returning. Load never fails; a caller always gets a usable profile.
func (m *Manager) Load(ctx context.Context, userID string) *Profile {
	p := Default(userID)

	raw, err := m.store.Get(ctx, profileKey(userID))
	switch {
	case errors.Is(err, ports.ErrNotFound):
		// First load for this user, keep defaults.
	case err != nil:
		m.logger.Error("Failed to load profile, using defaults",
			zap.Error(err),
			zap.String("user_id", userID))
	default:
		if err := json.Unmarshal(raw, p); err != nil {
			m.logger.Error("Failed to decode stored profile, using defaults",
				zap.Error(err),
				zap.String("user_id", userID))
			p = Default(userID)
		}
	}

	m.AdaptSensitivity(ctx, p)
	return p
}

// Save persists the profile. Store failures are logged, not propagated.
func (m *Manager) Save(ctx context.Context, p *Profile) {
	raw, err := json.Marshal(p)
	if err != nil {
		m.logger.Error("Failed to encode profile", zap.Error(err))
		return
	}
	if err := m.store.Set(ctx, profileKey(p.UserID), raw); err != nil {
		m.logger.Error("Failed to save profile",
			zap.Error(err),
			zap.String("user_id", p.UserID))
	}
}

// Setup creates a profile from first-time setup data and persists it.
// The user id defaults to the submitted email address.
func (m *Manager) Setup(ctx context.Context, email, jobRole, department string, style AlertStyle, organizationID string) *Profile {
	p := Default(email)
	if jobRole != "" {
		p.JobRole = jobRole
	}
	if department != "" {
		p.Department = department
	}
	if style != "" {
		p.Preferences.AlertStyle = style
	}
	p.OrganizationID = organizationID

	m.Save(ctx, p)
	m.AdaptSensitivity(ctx, p)
	return p
}

// AdaptSensitivity re-derives the sensitivity level and risk level from
// the role, department and accumulated feedback, then persists the
// profile. Idempotent for a given learning state; it runs after every
// feedback event and on every load.
func (m *Manager) AdaptSensitivity(ctx context.Context, p *Profile) {
	base := 0.6
	role := strings.ToLower(p.JobRole)
	dept := strings.ToLower(p.Department)

	switch {
	case contains(highRiskRoles, role) || contains(highRiskDepartments, dept):
		base = 0.8
		p.RiskLevel = RiskHigh
	case contains(mediumRiskRoles, role):
		base = 0.7
		p.RiskLevel = RiskMedium
	default:
		p.RiskLevel = RiskLow
	}

	fp := p.LearningData.FalsePositives
	ct := p.LearningData.ConfirmedThreats
	if total := fp + ct; total > 5 {
		accuracy := float64(ct) / float64(total)
		if accuracy < 0.7 && fp > 3 {
			// Too many false positives reported, back off.
			base *= 0.9
		} else if accuracy > 0.9 {
			// User reliably confirms threats, escalate harder.
			base *= 1.1
		}
	}

	p.SensitivityLevel = clamp(base, 0.3, 1.0)
	m.Save(ctx, p)
}

// RecordFeedback registers a user verdict on a previously reported
// threat, trims the feedback history to the 50 most recent events and
// re-adapts sensitivity. Returns the updated sensitivity level.
func (m *Manager) RecordFeedback(ctx context.Context, p *Profile, threatID string, isActualThreat bool, userAction string) float64 {
	if isActualThreat {
		p.LearningData.ConfirmedThreats++
	} else {
		p.LearningData.FalsePositives++
	}

	p.LearningData.UserFeedback = append(p.LearningData.UserFeedback, FeedbackEvent{
		ThreatID:       threatID,
		IsActualThreat: isActualThreat,
		UserAction:     userAction,
		Timestamp:      time.Now().UnixMilli(),
	})
	if n := len(p.LearningData.UserFeedback); n > 50 {
		p.LearningData.UserFeedback = p.LearningData.UserFeedback[n-50:]
	}
	p.LearningData.LastUpdated = time.Now().UnixMilli()

	m.AdaptSensitivity(ctx, p)

	m.logger.Debug("Recorded user feedback",
		zap.String("threat_id", threatID),
		zap.Bool("actual_threat", isActualThreat),
		zap.Float64("sensitivity", p.SensitivityLevel))

	return p.SensitivityLevel
}

// PersonalizedScore scales a base 0-100 score by the user's learned
// sensitivity and risk level, clamped back to [0, 100].
func (p *Profile) PersonalizedScore(baseScore float64) float64 {
	adjusted := baseScore * p.SensitivityLevel

	if p.RiskLevel == RiskHigh {
		adjusted *= 1.2
	} else if p.RiskLevel == RiskLow {
		adjusted *= 0.8
	}

	return clamp(adjusted, 0, 100)
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
