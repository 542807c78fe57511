package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "TRANSCRIBE_MODEL", "TEXT_MODEL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "FROM_EMAIL",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_FROM_NUMBER",
		"APP_NAME", "PORT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-4o-mini-transcribe", cfg.TranscribeModel)
	assert.Equal(t, "gpt-4o-mini", cfg.TextModel)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "FollowUp", cfg.AppName)
	assert.Equal(t, "8000", cfg.Port)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.FromEmail)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "bot@example.com")
	t.Setenv("FROM_EMAIL", "")
	t.Setenv("APP_NAME", "PlanBot")

	cfg := Load()
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "http://localhost:9999/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, "PlanBot", cfg.AppName)
	// sender falls back to the SMTP user
	assert.Equal(t, "bot@example.com", cfg.FromEmail)
}

func TestLoadBadPortFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	cfg := Load()
	assert.Equal(t, 587, cfg.SMTPPort)
}
