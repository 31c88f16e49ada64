// Package classify decides whether newly created files belong in a task's
// change set or in its ignore list.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com/v1/messages"
	anthropicVersion    = "2023-06-01"
	anthropicMaxRetries = 5
	anthropicInitDelay  = 2 * time.Second
	maxContentLen       = 8192
)

const systemPrompt = `You review newly created files in a software repository
and decide whether each file is a deliberate part of the developer's change
(INCLUDE) or a build artifact, cache, log, editor leftover or other
generated noise that should stay out of version control (IGNORE).
Respond with ONLY valid JSON: {"decision": "include"} or {"decision": "ignore"}.`

// AnthropicClassifier calls the Anthropic Messages API to classify files.
type AnthropicClassifier struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type verdict struct {
	Decision string `json:"decision"`
}

// NewAnthropic creates a classifier backed by the Anthropic Messages API.
func NewAnthropic(apiKey, model string) *AnthropicClassifier {
	return &AnthropicClassifier{
		apiKey:  apiKey,
		model:   model,
		baseURL: anthropicBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Classify decides whether a new file belongs in the change set. Any
// failure to obtain a verdict is reported as ErrClassificationUnavailable
// so callers can abort the whole commit rather than guess.
func (c *AnthropicClassifier) Classify(ctx context.Context, path string, content []byte) (domain.Decision, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: API key not set", domain.ErrClassificationUnavailable)
	}

	req := anthropicRequest{
		Model:     c.model,
		MaxTokens: 64,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildPrompt(path, content)},
		},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < anthropicMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt))) * anthropicInitDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", domain.ErrClassificationUnavailable, ctx.Err())
			}
		}

		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if reqErr != nil {
			return "", fmt.Errorf("create request: %w", reqErr)
		}
		httpReq.Header.Set("x-api-key", c.apiKey)
		httpReq.Header.Set("anthropic-version", anthropicVersion)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, doErr := c.client.Do(httpReq)
		if doErr != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", doErr)
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("read response: %w", readErr)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return "", fmt.Errorf("%w: %v", domain.ErrClassificationUnavailable, lastErr)
		}

		var apiResp anthropicResponse
		if err := json.Unmarshal(respBody, &apiResp); err != nil {
			return "", fmt.Errorf("%w: decode response: %v", domain.ErrClassificationUnavailable, err)
		}
		if len(apiResp.Content) == 0 {
			return "", fmt.Errorf("%w: empty response content", domain.ErrClassificationUnavailable)
		}

		return parseVerdict(apiResp.Content[0].Text)
	}

	return "", fmt.Errorf("%w: max retries (%d) exceeded: %v",
		domain.ErrClassificationUnavailable, anthropicMaxRetries, lastErr)
}

// buildPrompt renders the file for the model. Binary content is described
// rather than embedded, and long files are truncated.
func buildPrompt(path string, content []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New file: %s\n\n", path)

	if !utf8.Valid(content) {
		fmt.Fprintf(&b, "(binary content, %d bytes)\n", len(content))
		return b.String()
	}

	text := string(content)
	if len(text) > maxContentLen {
		// Back up to a rune boundary so the cut never produces invalid UTF-8.
		cut := maxContentLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "\n... (truncated)"
	}
	b.WriteString("Content:\n")
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}

// parseVerdict extracts the decision JSON, handling markdown code fences.
func parseVerdict(text string) (domain.Decision, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	var v verdict
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return "", fmt.Errorf("%w: parse verdict JSON: %v (raw: %s)",
			domain.ErrClassificationUnavailable, err, text)
	}

	switch strings.ToLower(v.Decision) {
	case "include":
		return domain.DecisionInclude, nil
	case "ignore":
		return domain.DecisionIgnore, nil
	default:
		return "", fmt.Errorf("%w: unexpected verdict %q", domain.ErrClassificationUnavailable, v.Decision)
	}
}

var _ domain.Classifier = (*AnthropicClassifier)(nil)
