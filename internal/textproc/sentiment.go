package textproc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// SentimentClient is a client for a sentiment HTTP service returning a
// polarity score in [-1, 1] (POST /polarity).
type SentimentClient struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
}

// NewSentimentClient creates a SentimentClient with a per-call timeout.
func NewSentimentClient(baseURL string, timeout time.Duration) *SentimentClient {
	return &SentimentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		timeout: timeout,
	}
}

// Detect returns the tone label for the text. Any failure yields
// ToneUnknown.
func (c *SentimentClient) Detect(ctx context.Context, text string) Tone {
	polarity, err := c.polarity(ctx, text)
	if err != nil {
		slog.Warn("tone detection failed", "error", err)
		return ToneUnknown
	}
	return ToneFromPolarity(polarity)
}

func (c *SentimentClient) polarity(ctx context.Context, text string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/polarity",
		bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("polarity request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("polarity request: status %d", resp.StatusCode)
	}

	var parsed struct {
		Polarity float64 `json:"polarity"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return parsed.Polarity, nil
}
