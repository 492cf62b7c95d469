package intel

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/core"
	"github.com/baitblock/baitblock/internal/ports"
)

// ledgerCapacity bounds every organization's signature sequence.
const ledgerCapacity = 100

// matchConfidence is the fixed confidence attached to ledger matches;
// the original signal is a colleague's report, not a model output.
const matchConfidence = 0.95

// statsTypeOrder fixes the iteration order of the most-common-type
// reduction so ties resolve deterministically.
var statsTypeOrder = []core.ThreatType{
	core.ThreatFinancial,
	core.ThreatCredential,
	core.ThreatExecutive,
	core.ThreatTechnical,
	core.ThreatGeneral,
}

// OrgStats summarizes one organization's ledger.
type OrgStats struct {
	TotalThreats   int
	ThreatsLast24h int
	ThreatsLast7d  int
	ThreatTypes    map[core.ThreatType]int
	MostCommonType core.ThreatType
}

// Hub shares and matches threat signatures through the persistent
// store. Ledger updates are optimistic read-modify-write: the store has
// no transactions, so two sessions updating the same organization
// concurrently can lose one update. Accepted tradeoff, not a bug.
type Hub struct {
	store  ports.KVStore
	logger *zap.Logger
}

// NewHub creates a threat intelligence hub backed by the given store.
func NewHub(store ports.KVStore, logger *zap.Logger) *Hub {
	return &Hub{
		store:  store,
		logger: logger,
	}
}

func ledgerKey(orgID string) string {
	return "org_threats_" + orgID
}

func latestThreatKey(orgID string) string {
	return "latest_threat_" + orgID
}

// loadLedger reads the organization's signature sequence, degrading to
// an empty sequence on store failure.
func (h *Hub) loadLedger(ctx context.Context, orgID string) []Signature {
	raw, err := h.store.Get(ctx, ledgerKey(orgID))
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			h.logger.Error("Failed to load organization ledger",
				zap.Error(err),
				zap.String("org_id", orgID))
		}
		return nil
	}

	var ledger []Signature
	if err := json.Unmarshal(raw, &ledger); err != nil {
		h.logger.Error("Failed to decode organization ledger",
			zap.Error(err),
			zap.String("org_id", orgID))
		return nil
	}
	return ledger
}

// Share appends a signature to the organization's ledger unless an
// observation with the same id is already recorded, trims the ledger to
// the most recent 100 entries and writes a best-effort broadcast
// pointer. No-op without an organization id. Failures are logged and
// swallowed; sharing never fails a scan.
func (h *Hub) Share(ctx context.Context, sig *Signature, orgID string) {
	if orgID == "" {
		return
	}

	ledger := h.loadLedger(ctx, orgID)
	for _, existing := range ledger {
		if existing.ID == sig.ID {
			h.logger.Debug("Signature already reported",
				zap.String("signature_id", sig.ID),
				zap.String("org_id", orgID))
			return
		}
	}

	ledger = append(ledger, *sig)
	if excess := len(ledger) - ledgerCapacity; excess > 0 {
		ledger = ledger[excess:]
	}

	raw, err := json.Marshal(ledger)
	if err != nil {
		h.logger.Error("Failed to encode organization ledger", zap.Error(err))
		return
	}
	if err := h.store.Set(ctx, ledgerKey(orgID), raw); err != nil {
		h.logger.Error("Failed to save organization ledger",
			zap.Error(err),
			zap.String("org_id", orgID))
		return
	}

	h.broadcast(ctx, sig, orgID)
}

// broadcast writes the "latest threat" pointer for the organization.
// Pure fire-and-forget: no acknowledgement, no retry, and a later
// reader may or may not observe it.
func (h *Hub) broadcast(ctx context.Context, sig *Signature, orgID string) {
	alert := struct {
		Signature
		BroadcastTime int64 `json:"broadcastTime"`
	}{
		Signature:     *sig,
		BroadcastTime: time.Now().UnixMilli(),
	}

	raw, err := json.Marshal(alert)
	if err != nil {
		h.logger.Error("Failed to encode threat alert", zap.Error(err))
		return
	}
	if err := h.store.Set(ctx, latestThreatKey(orgID), raw); err != nil {
		h.logger.Warn("Failed to broadcast threat alert",
			zap.Error(err),
			zap.String("org_id", orgID))
	}
}

// Check tests a message against the organization's known threats.
// The probe signature is built with empty analysis so the current
// classification cannot bias the match key. Returns nil when there is
// no organization id or no match.
func (h *Hub) Check(ctx context.Context, msg *core.Message, orgID string) *core.LedgerMatch {
	if orgID == "" {
		return nil
	}

	probe := Generate(msg, Analysis{})

	for _, known := range h.loadLedger(ctx, orgID) {
		if Compare(known.Signature, probe.Signature) {
			return &core.LedgerMatch{
				IsKnownThreat: true,
				Confidence:    matchConfidence,
				LastSeen:      time.UnixMilli(known.Timestamp),
				ThreatType:    known.Signature.ThreatType,
			}
		}
	}

	return nil
}

// Stats computes windowed counts and the threat type histogram for the
// organization's ledger, or nil without an organization id or data.
func (h *Hub) Stats(ctx context.Context, orgID string) *OrgStats {
	if orgID == "" {
		return nil
	}

	ledger := h.loadLedger(ctx, orgID)
	if len(ledger) == 0 {
		return nil
	}

	now := time.Now().UnixMilli()
	stats := &OrgStats{
		TotalThreats: len(ledger),
		ThreatTypes:  make(map[core.ThreatType]int),
	}

	for _, sig := range ledger {
		age := now - sig.Timestamp
		if age < 24*time.Hour.Milliseconds() {
			stats.ThreatsLast24h++
		}
		if age < 7*24*time.Hour.Milliseconds() {
			stats.ThreatsLast7d++
		}
		stats.ThreatTypes[sig.Signature.ThreatType]++
	}

	stats.MostCommonType = "none"
	best := 0
	for _, t := range statsTypeOrder {
		if count := stats.ThreatTypes[t]; count > best {
			best = count
			stats.MostCommonType = t
		}
	}

	return stats
}
