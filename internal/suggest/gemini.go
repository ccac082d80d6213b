// Package suggest asks the Google Generative Language API (Gemini) which
// category fits a transaction description. The call is best effort:
// callers treat any failure as "no suggestion".
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig *geminiConfig   `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Suggest returns the category name that best fits the description, or ""
// when the model's answer does not match any known category. The returned
// name always comes from the categories slice, never from the model
// verbatim.
func (c *Client) Suggest(ctx context.Context, description string, categories []string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", errors.New("gemini api key is missing")
	}
	if strings.TrimSpace(description) == "" || len(categories) == 0 {
		return "", nil
	}

	prompt := fmt.Sprintf(
		"Given the farm bookkeeping transaction description %q, pick the single best matching category from this list: %s. Respond with only the category name, nothing else.",
		description, strings.Join(categories, ", "))

	request := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiConfig{
			Temperature:     0.1,
			MaxOutputTokens: 32,
		},
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var apiErr geminiResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
			return "", fmt.Errorf("gemini api error: %s", apiErr.Error.Message)
		}
		return "", fmt.Errorf("gemini api error: %s", strings.TrimSpace(string(body)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini response missing content")
	}

	var builder strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}
	answer := strings.TrimSpace(builder.String())

	for _, name := range categories {
		if strings.EqualFold(name, answer) {
			return name, nil
		}
	}
	slog.InfoContext(ctx, "Suggestion did not match a known category",
		"answer", answer,
		"description", description)
	return "", nil
}
