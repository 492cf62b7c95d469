// Package profile implements the per-user adaptive sensitivity model.
package profile

import (
	"time"
)

// RiskLevel is derived from department/job role membership, never set
// directly by the user.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AlertStyle selects how much detail result panels should carry.
type AlertStyle string

const (
	AlertStandard AlertStyle = "standard"
	AlertMinimal  AlertStyle = "minimal"
	AlertDetailed AlertStyle = "detailed"
)

// FeedbackEvent is one immutable user verdict on a reported threat.
type FeedbackEvent struct {
	ThreatID       string `json:"threatId"`
	IsActualThreat bool   `json:"isActualThreat"`
	UserAction     string `json:"userAction"`
	Timestamp      int64  `json:"timestamp"`
}

// LearningData accumulates the feedback history driving adaptation.
// UserFeedback keeps at most the 50 most recent events.
type LearningData struct {
	FalsePositives   int             `json:"falsePositives"`
	ConfirmedThreats int             `json:"confirmedThreats"`
	UserFeedback     []FeedbackEvent `json:"userFeedback"`
	LastUpdated      int64           `json:"lastUpdated"`
}

// Preferences holds per-user presentation settings.
type Preferences struct {
	AlertStyle            AlertStyle `json:"alertStyle"`
	Language              string     `json:"language"`
	NotificationFrequency string     `json:"notificationFrequency"`
}

// Profile is one user's stored security profile. Timestamps are Unix
// milliseconds for compatibility with previously stored profiles.
type Profile struct {
	UserID           string       `json:"userId"`
	Department       string       `json:"department"`
	JobRole          string       `json:"jobRole"`
	RiskLevel        RiskLevel    `json:"riskLevel"`
	SensitivityLevel float64      `json:"sensitivityLevel"`
	LearningData     LearningData `json:"learningData"`
	Preferences      Preferences  `json:"preferences"`
	OrganizationID   string       `json:"organizationId,omitempty"`
}

// OrganizationContext is the slice of a profile relevant to ledger
// operations.
type OrganizationContext struct {
	OrgID      string
	Department string
	RiskLevel  RiskLevel
}

// AlertConfiguration is the derived presentation policy for one user.
type AlertConfiguration struct {
	ShowDetailedReasons bool
	AlertPersistence    string
	WarningLevel        string
	EducationalTips     bool
}

// Default returns a fresh profile with the documented defaults.
func Default(userID string) *Profile {
	return &Profile{
		UserID:           userID,
		Department:       "general",
		JobRole:          "employee",
		RiskLevel:        RiskMedium,
		SensitivityLevel: 0.6,
		LearningData: LearningData{
			UserFeedback: []FeedbackEvent{},
			LastUpdated:  time.Now().UnixMilli(),
		},
		Preferences: Preferences{
			AlertStyle:            AlertStandard,
			Language:              "en",
			NotificationFrequency: "immediate",
		},
	}
}

// OrganizationContext returns the organization-scoped view of the profile.
func (p *Profile) OrganizationContext() OrganizationContext {
	return OrganizationContext{
		OrgID:      p.OrganizationID,
		Department: p.Department,
		RiskLevel:  p.RiskLevel,
	}
}

// AlertConfiguration derives the alert presentation policy from the
// user's style preference and risk level.
func (p *Profile) AlertConfiguration() AlertConfiguration {
	cfg := AlertConfiguration{
		ShowDetailedReasons: p.Preferences.AlertStyle == AlertDetailed || p.RiskLevel == RiskHigh,
		AlertPersistence:    "auto-dismiss",
		WarningLevel:        "standard",
		EducationalTips:     p.Preferences.AlertStyle != AlertMinimal,
	}
	if p.RiskLevel == RiskHigh {
		cfg.AlertPersistence = "sticky"
		cfg.WarningLevel = "aggressive"
	}
	return cfg
}
