// Package intel implements privacy-preserving threat signatures and
// the bounded, organization-scoped ledger they are shared through.
package intel

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/baitblock/baitblock/internal/core"
	"github.com/baitblock/baitblock/internal/fingerprint"
)

// anonymousReporter is the only reporter identity a signature ever
// carries; user identity is never embedded.
const anonymousReporter = "anonymous"

// Features is the comparable payload of a signature. Field order is
// part of the identity contract: the dedup id is the hash of this
// struct's canonical JSON encoding.
type Features struct {
	SubjectHash        string          `json:"subjectHash"`
	SenderDomain       string          `json:"senderDomain"`
	ContentFingerprint string          `json:"contentFingerprint"`
	ThreatType         core.ThreatType `json:"threatType"`
	Confidence         float64         `json:"confidence"`
}

// Signature is one shareable observation of a threat. Two signatures
// with the same ID are the same observation regardless of timestamp.
type Signature struct {
	ID         string   `json:"id"`
	Signature  Features `json:"signature"`
	Timestamp  int64    `json:"timestamp"`
	ReportedBy string   `json:"reportedBy"`
}

// Analysis is the slice of a classification relevant to signature
// generation: the reason phrases and the 0-100 score.
type Analysis struct {
	Reasons []string
	Score   float64
}

// threat type keyword sets, checked in order; first match wins.
var threatTypeKeywords = []struct {
	threatType core.ThreatType
	keywords   []string
}{
	{core.ThreatFinancial, []string{"financial", "money", "payment", "invoice", "bank"}},
	{core.ThreatCredential, []string{"password", "login", "verify", "account", "security"}},
	{core.ThreatExecutive, []string{"ceo", "urgent", "confidential", "board"}},
	{core.ThreatTechnical, []string{"it", "system", "update", "maintenance", "server"}},
}

// Generate builds the signature of one observed message.
func Generate(msg *core.Message, analysis Analysis) *Signature {
	features := Features{
		SubjectHash:        fingerprint.Hash(msg.Headers.Subject),
		SenderDomain:       fingerprint.ExtractDomain(msg.Headers.From),
		ContentFingerprint: fingerprint.ContentFingerprint(msg.Text),
		ThreatType:         ClassifyThreatType(analysis.Reasons),
		Confidence:         analysis.Score,
	}

	// Struct field order makes this encoding canonical.
	serialized, _ := json.Marshal(features)

	return &Signature{
		ID:         fingerprint.Hash(string(serialized)),
		Signature:  features,
		Timestamp:  time.Now().UnixMilli(),
		ReportedBy: anonymousReporter,
	}
}

// ClassifyThreatType buckets analysis reasons into a threat type. The
// category order is fixed; on overlapping cues the earlier category
// wins.
func ClassifyThreatType(reasons []string) core.ThreatType {
	reasonText := strings.ToLower(strings.Join(reasons, " "))

	for _, entry := range threatTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(reasonText, keyword) {
				return entry.threatType
			}
		}
	}

	return core.ThreatGeneral
}

// Compare reports whether two signatures plausibly describe the same
// campaign. Deliberately loose: any one of sender domain (when both are
// present), content fingerprint or subject hash matching is enough.
// High recall is the point; unrelated messages sharing a domain are an
// accepted cost of catching obfuscated repeats.
func Compare(a, b Features) bool {
	if a.SenderDomain != "" && b.SenderDomain != "" && a.SenderDomain == b.SenderDomain {
		return true
	}

	if a.ContentFingerprint == b.ContentFingerprint {
		return true
	}

	return a.SubjectHash == b.SubjectHash
}
