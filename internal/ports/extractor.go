package ports

import (
	"io"

	"github.com/baitblock/baitblock/internal/core"
)

// Extractor defines the interface for pulling a scannable message out
// of some email-shaped input. Returns (nil, nil) when the input holds
// no message content.
type Extractor interface {
	Extract(r io.Reader) (*core.Message, error)
}
