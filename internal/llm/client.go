package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"roadsense/internal/config"
)

// Client talks to an OpenAI-compatible chat-completions endpoint. Calls are
// single-shot: a failed call is reported to the caller, which degrades the
// affected record to its sentinel instead of retrying or aborting the batch.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(cfg config.LLM) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Complete sends one system+user exchange and returns the assistant content.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	if c.apiKey == "" || c.endpoint == "" {
		return "", fmt.Errorf("llm client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal llm payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("llm error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	content, err := contentFromChoices(raw)
	if err != nil {
		return "", err
	}
	return content, nil
}

func contentFromChoices(body []byte) (string, error) {
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode llm response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm response has no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// ExtractJSON finds the first balanced JSON object in a string, stripping
// common markdown fences first. Returns "" when no object is present.
// The result still goes through encoding/json; this only locates the
// object inside whatever prose the model wrapped around it.
func ExtractJSON(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```yaml", "```text", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}

	return ""
}
