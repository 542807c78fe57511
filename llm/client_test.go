package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/followup-app/followup/apperr"
	"github.com/followup-app/followup/config"
)

func textResponse(text string) string {
	return `{"output":[{"type":"message","content":[{"type":"output_text","text":` + jsonString(text) + `}]}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.Config{
		OpenAIAPIKey:  "sk-test",
		OpenAIBaseURL: srv.URL,
		TextModel:     "gpt-4o-mini",
	})
}

func TestGenerateDraftRequestShape(t *testing.T) {
	var got responsesRequest
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(textResponse("1. Alice - send numbers - Friday")))
	})

	notes := "Discuss Q3 budget. Alice to send numbers."
	draft, err := c.GenerateDraft(context.Background(), notes)
	require.NoError(t, err)
	assert.Equal(t, "1. Alice - send numbers - Friday", draft)

	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, draftTemperature, got.Temperature)
	require.Len(t, got.Input, 2)
	assert.Equal(t, "system", got.Input[0].Role)
	assert.Equal(t, draftSystem, got.Input[0].Content)
	assert.Equal(t, "user", got.Input[1].Role)
	assert.True(t, strings.HasPrefix(got.Input[1].Content, draftPrompt))
	assert.True(t, strings.HasSuffix(got.Input[1].Content, "\n\nMEETING NOTES:\n"+notes))
}

func TestPolishFinalRequestShape(t *testing.T) {
	var got responsesRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(textResponse("## Plan\n\n1. Alice - budget - Friday")))
	})

	polished, err := c.PolishFinal(context.Background(), "1. Alice - budget - Friday")
	require.NoError(t, err)
	assert.Equal(t, "## Plan\n\n1. Alice - budget - Friday", polished)

	assert.Equal(t, polishTemperature, got.Temperature)
	require.Len(t, got.Input, 2)
	assert.Equal(t, polishSystem, got.Input[0].Content)
	assert.True(t, strings.HasPrefix(got.Input[1].Content, polishPrompt))
	assert.True(t, strings.HasSuffix(got.Input[1].Content, "\n\nACTION PLAN (USER-EDITED):\n1. Alice - budget - Friday"))
}

func TestExtractTextTolerance(t *testing.T) {
	// unknown item and content types are skipped, text fragments concatenate
	// in order, and the result is trimmed
	raw := `{"output":[
		{"type":"reasoning","content":[{"type":"reasoning_text","text":"thinking"}]},
		{"type":"message","content":[
			{"type":"output_text","text":"  Action "},
			{"type":"refusal","text":"nope"},
			{"type":"text","text":"items"}
		]},
		{"type":"tool_call"},
		{"type":"message","content":[{"type":"output_text","text":" follow.  "}]}
	]}`
	var p responsesPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "Action items follow.", extractText(p))
}

func TestExtractTextEmptyWhenNoTextEntries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":[{"type":"reasoning"},{"type":"message","content":[{"type":"refusal","text":"no"}]}]}`))
	})
	out, err := c.GenerateDraft(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestMissingAPIKeyFailsBeforeNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := NewClient(config.Config{OpenAIBaseURL: srv.URL, TextModel: "gpt-4o-mini"})
	_, err := c.GenerateDraft(context.Background(), "notes")
	assert.True(t, apperr.IsConfig(err))
	_, err = c.PolishFinal(context.Background(), "plan")
	assert.True(t, apperr.IsConfig(err))
	assert.Equal(t, 0, hits)
}

func TestNonSuccessStatusIsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	})
	_, err := c.GenerateDraft(context.Background(), "notes")
	assert.True(t, apperr.IsUpstream(err))
	assert.Contains(t, err.Error(), "429")
}

func TestMalformedPayloadIsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	_, err := c.PolishFinal(context.Background(), "plan")
	assert.True(t, apperr.IsUpstream(err))
}
