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

// TranslateClient is a client for a LibreTranslate-compatible HTTP API
// (POST /translate). The source language is always auto-detected.
type TranslateClient struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
}

// NewTranslateClient creates a TranslateClient with a per-call timeout.
func NewTranslateClient(baseURL string, timeout time.Duration) *TranslateClient {
	return &TranslateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		timeout: timeout,
	}
}

// Translate returns the text translated into targetLang. An empty
// translation counts as a failure; every failure falls back to the
// input unchanged.
func (c *TranslateClient) Translate(ctx context.Context, text, targetLang string) string {
	translated, err := c.translate(ctx, text, targetLang)
	if err != nil {
		slog.Warn("translation failed, returning input unchanged", "target", targetLang, "error", err)
		return text
	}
	return translated
}

func (c *TranslateClient) translate(ctx context.Context, text, targetLang string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "auto",
		"target": targetLang,
		"format": "text",
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate",
		bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate request: status %d", resp.StatusCode)
	}

	var parsed struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.TranslatedText == "" {
		return "", fmt.Errorf("translation returned empty result")
	}
	return parsed.TranslatedText, nil
}
