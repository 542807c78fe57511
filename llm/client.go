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

	"github.com/followup-app/followup/apperr"
	"github.com/followup-app/followup/config"
)

const (
	draftTemperature  = 0.2
	polishTemperature = 0.1
)

// Client turns meeting notes into an action plan by calling the provider's
// Responses API. One instance is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	httpc   *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		apiKey:  cfg.OpenAIAPIKey,
		baseURL: strings.TrimRight(cfg.OpenAIBaseURL, "/"),
		model:   cfg.TextModel,
		httpc:   &http.Client{Timeout: 120 * time.Second},
	}
}

// GenerateDraft produces a first-pass action plan from raw notes.
func (c *Client) GenerateDraft(ctx context.Context, notes string) (string, error) {
	return c.respond(ctx, draftSystem, draftUserMessage(notes), draftTemperature)
}

// PolishFinal reformats a user-edited plan without changing its meaning.
func (c *Client) PolishFinal(ctx context.Context, finalText string) (string, error) {
	return c.respond(ctx, polishSystem, polishUserMessage(finalText), polishTemperature)
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model       string         `json:"model"`
	Input       []inputMessage `json:"input"`
	Temperature float64        `json:"temperature"`
}

// The provider's response is a sequence of typed output items. Only
// message items carry text; everything else (tool calls, reasoning
// traces) is skipped during extraction.
type responsesPayload struct {
	Output []outputItem `json:"output"`
}

type outputItem struct {
	Type    string        `json:"type"`
	Content []contentItem `json:"content"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (c *Client) respond(ctx context.Context, system, user string, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", apperr.Config("OPENAI_API_KEY is not set")
	}

	payload := responsesRequest{
		Model: c.model,
		Input: []inputMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal responses payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build responses request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", apperr.Upstream("responses request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperr.Upstream(
			fmt.Sprintf("responses API returned %s", resp.Status),
			fmt.Errorf("%s", strings.TrimSpace(string(detail))),
		)
	}

	var parsed responsesPayload
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperr.Upstream("malformed responses payload", err)
	}
	return extractText(parsed), nil
}

// extractText concatenates every text fragment of every message item, in
// order, ignoring item and content types it does not recognize.
func extractText(p responsesPayload) string {
	var out strings.Builder
	for _, item := range p.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			switch c.Type {
			case "output_text", "text":
				out.WriteString(c.Text)
			}
		}
	}
	return strings.TrimSpace(out.String())
}
