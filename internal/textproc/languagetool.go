package textproc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// LanguageTool is a client for a LanguageTool-compatible HTTP API
// (POST /v2/check). One long-lived instance serves all requests; it is
// safe for concurrent use.
type LanguageTool struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
}

// NewLanguageTool creates a LanguageTool client. Every check call is
// bounded by the given timeout.
func NewLanguageTool(baseURL string, timeout time.Duration) *LanguageTool {
	return &LanguageTool{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		timeout: timeout,
	}
}

// Correct runs a full grammar check and applies the first suggested
// replacement for each match. On any failure the input is returned
// unchanged.
func (lt *LanguageTool) Correct(ctx context.Context, text, lang string) string {
	matches, err := lt.check(ctx, text, lang, false)
	if err != nil {
		slog.Warn("grammar check failed, returning input unchanged", "error", err)
		return text
	}
	return applyMatches(text, matches)
}

// Speller adapts a LanguageTool client to the SpellCorrector contract:
// only spelling (TYPOS) rules are applied, and the corrected text is
// re-joined word by word with single spaces.
type Speller struct {
	lt   *LanguageTool
	lang string
}

// NewSpeller creates a Speller checking against the given language.
func NewSpeller(lt *LanguageTool, lang string) *Speller {
	return &Speller{lt: lt, lang: lang}
}

func (s *Speller) Correct(ctx context.Context, text string) string {
	matches, err := s.lt.check(ctx, text, s.lang, true)
	if err != nil {
		slog.Warn("spell check failed, returning input unchanged", "error", err)
		return text
	}
	corrected := applyMatches(text, matches)
	return strings.Join(strings.Fields(corrected), " ")
}

type ltMatch struct {
	Offset       int `json:"offset"`
	Length       int `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
}

type ltResponse struct {
	Matches []ltMatch `json:"matches"`
}

func (lt *LanguageTool) check(ctx context.Context, text, lang string, spellingOnly bool) ([]ltMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, lt.timeout)
	defer cancel()

	form := url.Values{
		"text":     {text},
		"language": {lang},
	}
	if spellingOnly {
		form.Set("enabledCategories", "TYPOS")
		form.Set("enabledOnly", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lt.baseURL+"/v2/check",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := lt.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("check request: status %d", resp.StatusCode)
	}

	var parsed ltResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return parsed.Matches, nil
}

// applyMatches applies the first replacement of each match, working
// from the end of the text so earlier offsets stay valid.
func applyMatches(text string, matches []ltMatch) string {
	runes := []rune(text)
	sorted := make([]ltMatch, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset > sorted[j].Offset })

	for _, m := range sorted {
		if len(m.Replacements) == 0 {
			continue
		}
		if m.Offset < 0 || m.Length < 0 || m.Offset+m.Length > len(runes) {
			continue
		}
		replacement := []rune(m.Replacements[0].Value)
		patched := make([]rune, 0, len(runes)-m.Length+len(replacement))
		patched = append(patched, runes[:m.Offset]...)
		patched = append(patched, replacement...)
		patched = append(patched, runes[m.Offset+m.Length:]...)
		runes = patched
	}
	return string(runes)
}
