package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/followup-app/followup/apperr"
)

var sentenceRe = regexp.MustCompile(`[^\.!\?]*[\.!\?]`)

// StreamDraft generates a draft action plan from notes over a streaming
// chat completion, calling emit with each complete sentence as it forms.
// It returns the full trimmed draft once the stream ends.
func (c *Client) StreamDraft(ctx context.Context, notes string, emit func(string)) (string, error) {
	if c.apiKey == "" {
		return "", apperr.Config("OPENAI_API_KEY is not set")
	}

	occ := openai.DefaultConfig(c.apiKey)
	occ.BaseURL = c.baseURL
	occ.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	chat := openai.NewClientWithConfig(occ)

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: draftSystem},
			{Role: openai.ChatMessageRoleUser, Content: draftUserMessage(notes)},
		},
		Temperature: draftTemperature,
		Stream:      true,
	}

	stream, err := chat.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return "", apperr.Upstream("chat completion stream failed", err)
	}
	defer stream.Close()

	buffer := &strings.Builder{}
	full := &strings.Builder{}

	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", apperr.Upstream("receiving chat completion chunk failed", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		chunk := resp.Choices[0].Delta.Content
		if chunk == "" {
			continue
		}
		full.WriteString(chunk)
		for _, s := range splitSentences(buffer, chunk) {
			emit(s)
		}
	}

	// trailing text without sentence punctuation
	if leftover := strings.TrimSpace(buffer.String()); leftover != "" {
		emit(leftover)
	}
	return strings.TrimSpace(full.String()), nil
}

// splitSentences appends chunk to buffer, extracts every complete sentence
// and leaves the remainder buffered for the next chunk.
func splitSentences(buffer *strings.Builder, chunk string) []string {
	buffer.WriteString(chunk)
	text := buffer.String()

	var sentences []string
	for {
		loc := sentenceRe.FindStringIndex(text)
		if loc == nil {
			break
		}
		sentence := strings.TrimSpace(text[:loc[1]])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		text = text[loc[1]:]
	}

	buffer.Reset()
	buffer.WriteString(text)
	return sentences
}
