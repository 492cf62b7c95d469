package department

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name       string
		department string
		reasons    []string
		expected   float64
	}{
		{
			name:       "single finance keyword",
			department: "finance",
			reasons:    []string{"Suspicious invoice attached"},
			expected:   1.3,
		},
		{
			name:       "urgent payment matches two keywords and caps",
			department: "finance",
			reasons:    []string{"Urgent payment request detected"},
			expected:   2.0, // payment 1.4 x urgent payment 1.6 folds past the cap
		},
		{
			name:       "keyword counted once across phrases",
			department: "hr",
			reasons:    []string{"References payroll", "Mentions payroll again"},
			expected:   1.5,
		},
		{
			name:       "it department phrase",
			department: "it",
			reasons:    []string{"Fake password reset link"},
			expected:   1.5,
		},
		{
			name:       "department lookup is case insensitive",
			department: "Executive",
			reasons:    []string{"Marked confidential"},
			expected:   1.4,
		},
		{
			name:       "unknown department is neutral",
			department: "engineering",
			reasons:    []string{"Urgent payment request detected"},
			expected:   1.0,
		},
		{
			name:       "no matching keywords",
			department: "finance",
			reasons:    []string{"Generic urgency language"},
			expected:   1.0,
		},
		{
			name:       "empty reasons",
			department: "finance",
			reasons:    nil,
			expected:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Multiplier(tt.department, tt.reasons), 0.001)
		})
	}
}

func TestSuspiciousSenders(t *testing.T) {
	assert.Contains(t, SuspiciousSenders("finance"), "billing@")
	assert.Contains(t, SuspiciousSenders("IT"), "noreply@")
	assert.Nil(t, SuspiciousSenders("engineering"))
}
