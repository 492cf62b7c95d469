package ports

import (
	"context"

	"github.com/baitblock/baitblock/internal/core"
)

// Classifier defines the interface to the remote scoring model.
// Implementations are bounded-latency, fallible calls with no internal
// retry; retry and backoff belong to the transport layer, not here.
type Classifier interface {
	// Classify scores a piece of untrusted text.
	Classify(ctx context.Context, text string) (*core.Classification, error)
}
