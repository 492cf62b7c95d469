package core

import (
	"time"
)

// Headers carries the message metadata used for signature generation.
type Headers struct {
	From    string
	Subject string
}

// Message represents one extracted email or text selection to be scored.
type Message struct {
	Text      string
	HTML      string
	MessageID string
	Headers   Headers
}

// Classification is the normalized result of the remote classifier.
// Adapters translate whatever shape the backend returns into this type
// once, at the boundary; nothing downstream branches on response shape.
type Classification struct {
	Label      string
	Confidence float64
	Reasons    []string
}

// ThreatType buckets a signature by the dominant manipulation cue.
type ThreatType string

const (
	ThreatFinancial  ThreatType = "financial"
	ThreatCredential ThreatType = "credential"
	ThreatExecutive  ThreatType = "executive"
	ThreatTechnical  ThreatType = "technical"
	ThreatGeneral    ThreatType = "general"
)

// LedgerMatch reports that a message matched a signature previously
// shared inside the organization.
type LedgerMatch struct {
	IsKnownThreat bool
	Confidence    float64
	LastSeen      time.Time
	ThreatType    ThreatType
}

// Link is a URL found in the scanned text with its suspicion verdict.
type Link struct {
	URL        string
	Suspicious bool
}

// ScanResult is the outcome of one scoring pass, returned to callers
// and cached per session. Error is set instead of a Go error when the
// classifier is unreachable; the rest of the fields still carry usable
// fallback values.
type ScanResult struct {
	Label             string
	RawConfidence     float64
	RawScore          float64
	PersonalizedScore float64
	Reasons           []string
	Links             []Link
	LedgerMatch       *LedgerMatch
	Error             string
	AnalyzedAt        time.Time
	Source            string
}

// RiskLabel maps a 0-100 score onto the coarse presentation buckets.
func RiskLabel(score float64) string {
	switch {
	case score < 30:
		return "low"
	case score < 70:
		return "medium"
	default:
		return "high"
	}
}
