package profile

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/adapters/store"
)

func newTestManager() *Manager {
	return NewManager(store.NewMemoryStore(zap.NewNop()), zap.NewNop())
}

func TestManagerLoadDefaults(t *testing.T) {
	m := newTestManager()

	p := m.Load(context.Background(), "nobody@corp.example")
	require.NotNil(t, p)
	assert.Equal(t, "nobody@corp.example", p.UserID)
	assert.Equal(t, "general", p.Department)
	assert.Equal(t, "employee", p.JobRole)
	assert.Equal(t, RiskLow, p.RiskLevel)
	assert.InDelta(t, 0.6, p.SensitivityLevel, 0.001)
}

func TestManagerSetupDerivesRisk(t *testing.T) {
	tests := []struct {
		name                string
		jobRole             string
		department          string
		expectedRisk        RiskLevel
		expectedSensitivity float64
	}{
		{
			name:                "cfo in finance is high risk",
			jobRole:             "cfo",
			department:          "finance",
			expectedRisk:        RiskHigh,
			expectedSensitivity: 0.8,
		},
		{
			name:                "high risk department alone is enough",
			jobRole:             "assistant",
			department:          "hr",
			expectedRisk:        RiskHigh,
			expectedSensitivity: 0.8,
		},
		{
			name:                "manager is medium risk",
			jobRole:             "manager",
			department:          "sales",
			expectedRisk:        RiskMedium,
			expectedSensitivity: 0.7,
		},
		{
			name:                "everyone else is low risk",
			jobRole:             "engineer",
			department:          "product",
			expectedRisk:        RiskLow,
			expectedSensitivity: 0.6,
		},
		{
			name:                "role matching is case insensitive",
			jobRole:             "CEO",
			department:          "Product",
			expectedRisk:        RiskHigh,
			expectedSensitivity: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			p := m.Setup(context.Background(), "user@corp.example", tt.jobRole, tt.department, AlertStandard, "org-1")

			assert.Equal(t, tt.expectedRisk, p.RiskLevel)
			assert.InDelta(t, tt.expectedSensitivity, p.SensitivityLevel, 0.001)
			assert.Equal(t, "org-1", p.OrganizationID)
		})
	}
}

func TestManagerSetupPersists(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	m.Setup(ctx, "cfo@corp.example", "cfo", "finance", AlertDetailed, "org-1")

	loaded := m.Load(ctx, "cfo@corp.example")
	assert.Equal(t, "cfo", loaded.JobRole)
	assert.Equal(t, "finance", loaded.Department)
	assert.Equal(t, AlertDetailed, loaded.Preferences.AlertStyle)
	assert.Equal(t, RiskHigh, loaded.RiskLevel)
}

func TestRecordFeedbackAdjustsSensitivity(t *testing.T) {
	t.Run("too many false positives back off", func(t *testing.T) {
		m := newTestManager()
		ctx := context.Background()
		p := m.Setup(ctx, "cfo@corp.example", "cfo", "finance", AlertStandard, "")

		var sensitivity float64
		for i := 0; i < 4; i++ {
			sensitivity = m.RecordFeedback(ctx, p, fmt.Sprintf("threat-%d", i), false, "dismissed")
		}
		for i := 4; i < 6; i++ {
			sensitivity = m.RecordFeedback(ctx, p, fmt.Sprintf("threat-%d", i), true, "confirmed")
		}

		// 2 confirmed of 6 with 4 false positives: 0.8 * 0.9
		assert.InDelta(t, 0.72, sensitivity, 0.001)
	})

	t.Run("reliable confirmations escalate", func(t *testing.T) {
		m := newTestManager()
		ctx := context.Background()
		p := m.Setup(ctx, "user@corp.example", "engineer", "product", AlertStandard, "")

		var sensitivity float64
		for i := 0; i < 10; i++ {
			sensitivity = m.RecordFeedback(ctx, p, fmt.Sprintf("threat-%d", i), true, "confirmed")
		}

		// Perfect accuracy over 10 events: 0.6 * 1.1
		assert.InDelta(t, 0.66, sensitivity, 0.001)
	})

	t.Run("five or fewer events never adjust", func(t *testing.T) {
		m := newTestManager()
		ctx := context.Background()
		p := m.Setup(ctx, "user@corp.example", "engineer", "product", AlertStandard, "")

		var sensitivity float64
		for i := 0; i < 5; i++ {
			sensitivity = m.RecordFeedback(ctx, p, fmt.Sprintf("threat-%d", i), false, "dismissed")
		}

		assert.InDelta(t, 0.6, sensitivity, 0.001)
	})
}

func TestRecordFeedbackTrimsHistory(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()
	p := m.Setup(ctx, "user@corp.example", "", "", AlertStandard, "")

	for i := 0; i < 60; i++ {
		m.RecordFeedback(ctx, p, fmt.Sprintf("threat-%d", i), i%2 == 0, "confirmed")
	}

	require.Len(t, p.LearningData.UserFeedback, 50)
	// Oldest ten events dropped, counters keep the full history.
	assert.Equal(t, "threat-10", p.LearningData.UserFeedback[0].ThreatID)
	assert.Equal(t, 30, p.LearningData.ConfirmedThreats)
	assert.Equal(t, 30, p.LearningData.FalsePositives)
}

func TestPersonalizedScore(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		base     float64
		expected float64
	}{
		{
			name:     "high risk amplifies",
			profile:  Profile{RiskLevel: RiskHigh, SensitivityLevel: 0.8},
			base:     80,
			expected: 76.8,
		},
		{
			name:     "low risk dampens",
			profile:  Profile{RiskLevel: RiskLow, SensitivityLevel: 0.6},
			base:     50,
			expected: 24,
		},
		{
			name:     "medium risk is sensitivity only",
			profile:  Profile{RiskLevel: RiskMedium, SensitivityLevel: 0.7},
			base:     100,
			expected: 70,
		},
		{
			name:     "never exceeds one hundred",
			profile:  Profile{RiskLevel: RiskHigh, SensitivityLevel: 1.0},
			base:     100,
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.profile.PersonalizedScore(tt.base), 0.001)
		})
	}
}

func TestOrganizationContext(t *testing.T) {
	m := newTestManager()
	p := m.Setup(context.Background(), "cfo@corp.example", "cfo", "finance", AlertStandard, "org-1")

	orgCtx := p.OrganizationContext()
	assert.Equal(t, "org-1", orgCtx.OrgID)
	assert.Equal(t, "finance", orgCtx.Department)
	assert.Equal(t, RiskHigh, orgCtx.RiskLevel)
}

func TestAlertConfiguration(t *testing.T) {
	t.Run("high risk is sticky and aggressive", func(t *testing.T) {
		p := Profile{RiskLevel: RiskHigh, Preferences: Preferences{AlertStyle: AlertStandard}}
		cfg := p.AlertConfiguration()
		assert.True(t, cfg.ShowDetailedReasons)
		assert.Equal(t, "sticky", cfg.AlertPersistence)
		assert.Equal(t, "aggressive", cfg.WarningLevel)
	})

	t.Run("minimal style suppresses tips", func(t *testing.T) {
		p := Profile{RiskLevel: RiskLow, Preferences: Preferences{AlertStyle: AlertMinimal}}
		cfg := p.AlertConfiguration()
		assert.False(t, cfg.ShowDetailedReasons)
		assert.False(t, cfg.EducationalTips)
		assert.Equal(t, "auto-dismiss", cfg.AlertPersistence)
	})
}
