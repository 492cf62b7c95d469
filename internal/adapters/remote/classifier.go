// Package remote implements the Classifier port against the hosted
// scoring API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/core"
)

// Classifier calls the remote scoring endpoint over HTTP. The call is
// a single bounded-latency request with no retry; retry policy belongs
// to the caller's transport layer if anywhere.
type Classifier struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClassifier creates a remote classifier for the given endpoint.
func NewClassifier(endpoint, apiKey string, timeout time.Duration, logger *zap.Logger) *Classifier {
	return &Classifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// response covers every shape the scoring backends are known to
// return. Normalization happens here, once; the rest of the engine
// only ever sees core.Classification.
type response struct {
	// {"label": "...", "confidence": 0.93}
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`

	// {"data": ["phishing", 0.93]} (hosted inference wrapper)
	Data []json.RawMessage `json:"data"`

	// {"score": 87, "risk_level": "High", "reasons": [...]}
	Score     *float64 `json:"score"`
	RiskLevel string   `json:"risk_level"`
	Reasons   []string `json:"reasons"`

	Error string `json:"error"`
}

// Classify posts the text to the scoring endpoint and normalizes the
// result.
func (c *Classifier) Classify(ctx context.Context, text string) (*core.Classification, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scoring request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoring service returned status %d", resp.StatusCode)
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode scoring response: %w", err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("scoring service error: %s", decoded.Error)
	}

	return normalize(decoded)
}

// normalize folds the three known response shapes into one result.
func normalize(r response) (*core.Classification, error) {
	switch {
	case len(r.Data) >= 2:
		var label string
		var confidence float64
		if err := json.Unmarshal(r.Data[0], &label); err != nil {
			return nil, fmt.Errorf("unexpected label shape: %w", err)
		}
		if err := json.Unmarshal(r.Data[1], &confidence); err != nil {
			return nil, fmt.Errorf("unexpected confidence shape: %w", err)
		}
		return &core.Classification{Label: label, Confidence: confidence}, nil

	case r.Label != "":
		return &core.Classification{
			Label:      r.Label,
			Confidence: r.Confidence,
			Reasons:    r.Reasons,
		}, nil

	case r.Score != nil:
		label := "safe"
		if r.RiskLevel != "" && r.RiskLevel != "Low" && r.RiskLevel != "low" {
			label = "phishing"
		}
		return &core.Classification{
			Label:      label,
			Confidence: *r.Score / 100,
			Reasons:    r.Reasons,
		}, nil

	default:
		return nil, fmt.Errorf("unrecognized scoring response shape")
	}
}
